package gateway

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"splitledger/internal/domain"
)

// runConfigDocument is the on-disk shape of the run config. Decimal-valued
// policy points are carried as strings so "43" and "0.02" survive exactly.
type runConfigDocument struct {
	PartyA                  string   `yaml:"party_a"`
	PartyB                  string   `yaml:"party_b"`
	RentShareA              string   `yaml:"rent_share_a"`
	SourcePriority          []string `yaml:"source_priority"`
	Tolerance               string   `yaml:"tolerance"`
	Strict                  bool     `yaml:"strict"`
	SmartInferAssumeOutflow *bool    `yaml:"smart_infer_assume_outflow"`
}

// LoadRunConfig reads and validates the YAML run configuration, applying
// defaults for the policy points the document leaves unset.
func LoadRunConfig(path string) (domain.RunConfig, error) {
	var cfg domain.RunConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config %s: %w", path, err)
	}
	var doc runConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
	}

	cfg.PartyA = strings.ToLower(strings.TrimSpace(doc.PartyA))
	cfg.PartyB = strings.ToLower(strings.TrimSpace(doc.PartyB))
	cfg.SourcePriority = doc.SourcePriority
	cfg.Strict = doc.Strict

	cfg.RentShareA = domain.DefaultRentShareA
	if doc.RentShareA != "" {
		cfg.RentShareA, err = decimal.NewFromString(doc.RentShareA)
		if err != nil {
			return cfg, fmt.Errorf("run config %s: invalid rent_share_a %q: %w", path, doc.RentShareA, err)
		}
	}

	cfg.Tolerance = domain.DefaultTolerance
	if doc.Tolerance != "" {
		cfg.Tolerance, err = decimal.NewFromString(doc.Tolerance)
		if err != nil {
			return cfg, fmt.Errorf("run config %s: invalid tolerance %q: %w", path, doc.Tolerance, err)
		}
	}

	cfg.SmartInferAssumeOutflow = true
	if doc.SmartInferAssumeOutflow != nil {
		cfg.SmartInferAssumeOutflow = *doc.SmartInferAssumeOutflow
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("run config %s: %w", path, err)
	}
	return cfg, nil
}
