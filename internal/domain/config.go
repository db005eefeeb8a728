package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RunConfig carries the externally configurable policy points of a run:
// the two tracked parties, the rent split ratio, dedup source priority,
// the zero-sum tolerance, and the smart_infer sign heuristic's default
// direction.
type RunConfig struct {
	PartyA string `yaml:"party_a"`
	PartyB string `yaml:"party_b"`

	// RentShareA is party A's percentage of rent, e.g. 43 for a 43/57 split.
	RentShareA decimal.Decimal `yaml:"rent_share_a"`

	// SourcePriority orders data sources for dedup survivor selection,
	// highest priority first. Sources not listed rank after all listed ones.
	SourcePriority []string `yaml:"source_priority"`

	// Tolerance bounds the acceptable residual of the global zero-sum check.
	Tolerance decimal.Decimal `yaml:"tolerance"`

	// Strict promotes missing required columns after transformation from a
	// skipped file to a fatal schema error.
	Strict bool `yaml:"strict"`

	// SmartInferAssumeOutflow: when the smart_infer sign rule meets an
	// unsigned amount, treat it as an outflow. Heuristic, not guaranteed.
	SmartInferAssumeOutflow bool `yaml:"smart_infer_assume_outflow"`
}

// DefaultTolerance bounds the rounding drift the zero-sum check accepts.
var DefaultTolerance = decimal.RequireFromString("0.02")

// DefaultRentShareA is used when the run config does not set a rent ratio.
var DefaultRentShareA = decimal.NewFromInt(50)

// Validate checks the config for values that would make a run meaningless.
func (c *RunConfig) Validate() error {
	if c.PartyA == "" || c.PartyB == "" {
		return fmt.Errorf("both party_a and party_b must be set")
	}
	if c.PartyA == c.PartyB {
		return fmt.Errorf("party_a and party_b must differ")
	}
	if c.RentShareA.IsNegative() || c.RentShareA.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("rent_share_a must be between 0 and 100, got %s", c.RentShareA)
	}
	if c.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance must not be negative, got %s", c.Tolerance)
	}
	return nil
}

// PartyFor maps a transaction owner to one of the two tracked parties.
// Matching is case-insensitive; owner values come from directory names.
func (c *RunConfig) PartyFor(owner string) (string, bool) {
	switch {
	case strings.EqualFold(owner, c.PartyA):
		return c.PartyA, true
	case strings.EqualFold(owner, c.PartyB):
		return c.PartyB, true
	}
	return "", false
}

// OtherParty returns the counterpart of the given party.
func (c *RunConfig) OtherParty(party string) string {
	if party == c.PartyA {
		return c.PartyB
	}
	return c.PartyA
}
