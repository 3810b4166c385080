// ABOUTME: HTTP client for the optional interference/conflict advisory service
// ABOUTME: Looks up a per-listing score adjustment; unknown listings report ok=false

package advisory

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

const maxBodyBytes = 64 << 10

type adjustmentResponse struct {
	ListingID  string   `json:"listingId"`
	Adjustment *float64 `json:"adjustment"`
}

// Client implements interfaces.AdvisoryClient
type Client struct {
	baseURL string
	http    interfaces.HTTPClient
}

var _ interfaces.AdvisoryClient = (*Client)(nil)

// NewClient creates a client rooted at baseURL
func NewClient(baseURL string, httpClient interfaces.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Adjustment fetches GET {base}/adjustments/{listingID}. A 404 or a null
// adjustment means the service has nothing to say about the listing.
func (c *Client) Adjustment(ctx context.Context, listingID string) (float64, bool, error) {
	endpoint := fmt.Sprintf("%s/adjustments/%s", c.baseURL, url.PathEscape(listingID))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return 0, false, errors.WrapError(err, "advisory request failed")
	}
	body := resp.Body()
	defer body.Close()

	switch status := resp.StatusCode(); {
	case status == http.StatusNotFound:
		return 0, false, nil
	case status < 200 || status >= 300:
		msg, _ := io.ReadAll(io.LimitReader(body, 512))
		return 0, false, &errors.ExternalAPIError{
			StatusCode: status,
			Message:    strings.TrimSpace(string(msg)),
			API:        "advisory",
		}
	}

	var payload adjustmentResponse
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&payload); err != nil {
		return 0, false, fmt.Errorf("decode advisory response: %w", err)
	}
	if payload.Adjustment == nil {
		return 0, false, nil
	}
	if math.IsNaN(*payload.Adjustment) || math.IsInf(*payload.Adjustment, 0) {
		return 0, false, fmt.Errorf("advisory returned non-finite adjustment for %s", listingID)
	}
	return *payload.Adjustment, true, nil
}
