// ABOUTME: Connector reading a partner's RSS/Atom offers feed
// ABOUTME: Offer fields come from market: namespaced extensions with plain feed fields as fallback

package partnerfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
	"listings-aggregator-api/pkg/utils/html"
	"listings-aggregator-api/pkg/utils/parse"
	utime "listings-aggregator-api/pkg/utils/time"
)

// Namespace is the extension prefix partners declare for offer fields
const Namespace = "market"

const maxQualityLength = 280

// Connector implements connector.Connector for one partner feed
type Connector struct {
	name    string
	feedURL string
	http    interfaces.HTTPClient
}

var _ connector.Connector = (*Connector)(nil)

// New creates a connector registered under name that reads feedURL
func New(name, feedURL string, client interfaces.HTTPClient) *Connector {
	return &Connector{name: name, feedURL: feedURL, http: client}
}

func (c *Connector) Name() string {
	return c.name
}

// FetchAndNormalize downloads and parses the feed. A non-empty credential is
// sent as the token query parameter. Items for another commodity than the
// requested one are skipped; the remaining criteria are left to ranking.
func (c *Connector) FetchAndNormalize(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
	feedURL, err := withToken(c.feedURL, credential)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Get(ctx, feedURL)
	if err != nil {
		return nil, errors.WrapError(err, "fetch partner feed")
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(body, 512))
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(msg)),
			API:        c.name,
		}
	}

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse partner feed: %w", err)
	}

	commodity := strings.ToLower(strings.TrimSpace(criteria.Commodity))
	listings := make([]domain.NormalizedListing, 0, len(feed.Items))
	for _, item := range feed.Items {
		listing, ok := c.toListing(item)
		if !ok {
			continue
		}
		if commodity != "" && strings.ToLower(listing.Commodity) != commodity {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func withToken(raw, token string) (string, error) {
	if token == "" {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid feed url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Connector) toListing(item *gofeed.Item) (domain.NormalizedListing, bool) {
	field := func(name string) string {
		return marketValue(item, name)
	}

	id := firstNonEmpty(field("id"), item.GUID, item.Link)
	if id == "" {
		return domain.NormalizedListing{}, false
	}

	listing := domain.NormalizedListing{
		ID:                   c.name + ":" + id,
		Source:               c.name,
		Counterparty:         field("counterparty"),
		Commodity:            field("commodity"),
		Quantity:             parse.Float(field("quantity")),
		Unit:                 field("unit"),
		PricePerUnit:         parse.Float(field("price")),
		Currency:             strings.ToUpper(field("currency")),
		Region:               field("region"),
		QualitySpecs:         field("quality"),
		SocialImpactScore:    impactScore(parse.Float(field("impactScore"))),
		SocialImpactCategory: field("impactCategory"),
		Metadata: map[string]interface{}{
			"title": item.Title,
			"link":  item.Link,
		},
	}

	if listing.Commodity == "" && len(item.Categories) > 0 {
		listing.Commodity = strings.TrimSpace(item.Categories[0])
	}
	if listing.Counterparty == "" && item.Author != nil {
		listing.Counterparty = item.Author.Name
	}
	if listing.QualitySpecs == "" {
		listing.QualitySpecs = html.Truncate(html.StripHTML(firstNonEmpty(item.Description, item.Content)), maxQualityLength)
	}

	switch {
	case item.PublishedParsed != nil:
		listing.ListedAt = item.PublishedParsed
	case item.UpdatedParsed != nil:
		listing.ListedAt = item.UpdatedParsed
	default:
		listing.ListedAt = utime.ParsePtr(field("listedAt"))
	}

	return listing, true
}

func marketValue(item *gofeed.Item, name string) string {
	if item.Extensions == nil {
		return ""
	}
	values := item.Extensions[Namespace][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// impactScore drops scores outside 0..100 rather than guessing a scale
func impactScore(v *float64) *float64 {
	if v == nil || *v < 0 || *v > 100 {
		return nil
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
