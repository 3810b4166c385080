package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"listings-aggregator-api/api/dto/mappers"
	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/search"
	logruslogger "listings-aggregator-api/infrastructure/logger/logrus"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one aggregation and print the ranked results as JSON",
	Long: `search runs a single aggregation against the configured connectors,
ranks the merged listings and prints the response body the API would return.
Logs go to stderr so stdout stays valid JSON.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("commodity", "", "commodity to search for")
	searchCmd.Flags().String("region", "", "preferred region")
	searchCmd.Flags().Float64("price-min", 0, "minimum price per unit")
	searchCmd.Flags().Float64("price-max", 0, "maximum price per unit (budget)")
	searchCmd.Flags().Float64("min-quantity", 0, "quantity needed")
	searchCmd.Flags().String("quality", "", "quality requirements, free text")
	searchCmd.Flags().Float64("social-impact-priority", 0, "weight given to social impact, 0 to 1")
	searchCmd.Flags().String("query", "", "free-text query")
	searchCmd.Flags().StringSlice("connector", nil, "connector to query as name or name=token (repeatable, default all)")
	searchCmd.Flags().Duration("timeout", 0, "per-connector timeout, 0 disables it (default from config)")
	searchCmd.Flags().Int("limit", 0, "maximum ranked results, 0 for all")
	searchCmd.Flags().Bool("no-cache", false, "bypass the result cache")

	rootCmd.AddCommand(searchCmd)
}

// criteriaFromFlags builds criteria from search flags. Numeric flags count
// only when set explicitly.
func criteriaFromFlags(cmd *cobra.Command) domain.Criteria {
	f := cmd.Flags()
	c := domain.Criteria{}
	c.Commodity, _ = f.GetString("commodity")
	c.Region, _ = f.GetString("region")
	c.QualityRequirements, _ = f.GetString("quality")
	c.Query, _ = f.GetString("query")

	optional := func(name string) *float64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetFloat64(name)
		return &v
	}
	c.PriceMin = optional("price-min")
	c.PriceMax = optional("price-max")
	c.MinQuantity = optional("min-quantity")
	c.SocialImpactPriority = optional("social-impact-priority")
	return c
}

// parseConnectors turns name or name=token entries into a credential map
func parseConnectors(entries []string) (map[string]string, error) {
	requested := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, token, _ := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid connector %q: name is empty", entry)
		}
		requested[name] = token
	}
	return requested, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logruslogger.NewWithWriter(os.Stderr, cfg.Logging.Level)

	entries, _ := cmd.Flags().GetStringSlice("connector")
	requested, err := parseConnectors(entries)
	if err != nil {
		return err
	}

	opts := aggregate.Options{}
	opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		opts.Timeout = &timeout
	}
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, logger, newFlags())
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	resp, err := a.search.Search(ctx, search.SearchRequest{
		Criteria:   criteriaFromFlags(cmd),
		Connectors: requested,
		Options:    opts,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	logger.Debug("Search finished", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})

	out, err := json.MarshalIndent(mappers.ToSearchResponse(resp), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
