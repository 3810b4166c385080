package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/infrastructure/listingstore"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load listings from a YAML file into the listing store",
	Long: `import reads a YAML document with a top-level "listings" sequence and
upserts every entry into the listing store served by the internal connector.
Entries are replaced by id. The whole file is rejected if any entry is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// importFile is the YAML layout accepted by the import command
type importFile struct {
	Listings []importRecord `yaml:"listings"`
}

type importRecord struct {
	ID                   string                 `yaml:"id"`
	Counterparty         string                 `yaml:"counterparty"`
	Commodity            string                 `yaml:"commodity"`
	Quantity             *float64               `yaml:"quantity"`
	Unit                 string                 `yaml:"unit"`
	PricePerUnit         *float64               `yaml:"pricePerUnit"`
	Currency             string                 `yaml:"currency"`
	Region               string                 `yaml:"region"`
	QualitySpecs         string                 `yaml:"qualitySpecs"`
	SocialImpactScore    *float64               `yaml:"socialImpactScore"`
	SocialImpactCategory string                 `yaml:"socialImpactCategory"`
	Metadata             map[string]interface{} `yaml:"metadata"`
	ListedAt             *time.Time             `yaml:"listedAt"`
}

// parseListings decodes and validates an import document
func parseListings(r io.Reader) ([]domain.NormalizedListing, error) {
	var doc importFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []domain.NormalizedListing{}, nil
		}
		return nil, fmt.Errorf("failed to parse listings: %w", err)
	}

	seen := make(map[string]bool, len(doc.Listings))
	listings := make([]domain.NormalizedListing, 0, len(doc.Listings))
	for i, rec := range doc.Listings {
		field := fmt.Sprintf("listings[%d]", i)
		switch {
		case rec.ID == "":
			return nil, &errors.ValidationError{Field: field + ".id", Message: "is required"}
		case seen[rec.ID]:
			return nil, &errors.ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate id %q", rec.ID)}
		case rec.Commodity == "":
			return nil, &errors.ValidationError{Field: field + ".commodity", Message: "is required"}
		case rec.PricePerUnit != nil && *rec.PricePerUnit < 0:
			return nil, &errors.ValidationError{Field: field + ".pricePerUnit", Message: "cannot be negative"}
		case rec.Quantity != nil && *rec.Quantity < 0:
			return nil, &errors.ValidationError{Field: field + ".quantity", Message: "cannot be negative"}
		case rec.SocialImpactScore != nil && (*rec.SocialImpactScore < 0 || *rec.SocialImpactScore > 100):
			return nil, &errors.ValidationError{Field: field + ".socialImpactScore", Message: "must be between 0 and 100"}
		}
		seen[rec.ID] = true

		listings = append(listings, domain.NormalizedListing{
			ID:                   rec.ID,
			Counterparty:         rec.Counterparty,
			Commodity:            rec.Commodity,
			Quantity:             rec.Quantity,
			Unit:                 rec.Unit,
			PricePerUnit:         rec.PricePerUnit,
			Currency:             rec.Currency,
			Region:               rec.Region,
			QualitySpecs:         rec.QualitySpecs,
			SocialImpactScore:    rec.SocialImpactScore,
			SocialImpactCategory: rec.SocialImpactCategory,
			Metadata:             rec.Metadata,
			ListedAt:             rec.ListedAt,
		})
	}
	return listings, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	listings, err := parseListings(f)
	if err != nil {
		return err
	}

	store, err := listingstore.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Upsert(cmd.Context(), listings); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d listings into %s\n", len(listings), cfg.Store.Path)
	return nil
}
