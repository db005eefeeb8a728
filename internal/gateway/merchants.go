package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"splitledger/internal/domain"
)

// YAMLMerchantRepository loads the merchant-name lookup table used to clean
// raw description text before pattern classification.
type YAMLMerchantRepository struct{}

// NewYAMLMerchantRepository creates a new repository instance.
func NewYAMLMerchantRepository() *YAMLMerchantRepository {
	return &YAMLMerchantRepository{}
}

// merchantDocument maps raw substrings to cleaned merchant names, e.g.
// "sq *blue bottle" -> "Blue Bottle Coffee".
type merchantDocument struct {
	Merchants map[string]string `yaml:"merchants"`
}

// LoadMerchantLookup reads the lookup table. Keys are matched
// case-insensitively as substrings of the raw description.
func (r *YAMLMerchantRepository) LoadMerchantLookup(ctx context.Context, path string) (domain.MerchantLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading merchant lookup %s: %w", path, err)
	}
	var doc merchantDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing merchant lookup %s: %w", path, err)
	}

	lookup := make(domain.MerchantLookup, len(doc.Merchants))
	for raw, clean := range doc.Merchants {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		lookup[key] = clean
	}
	return lookup, nil
}
