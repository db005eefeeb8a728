package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RecoverableFileError means a single input file could not be resolved or
// parsed. The batch continues; the file is recorded with a reason.
type RecoverableFileError struct {
	Path   string
	Reason string
	Err    error

	// Failed distinguishes a resolved schema choking on the file's rows from
	// a file that never matched a schema or could not be read.
	Failed bool
}

func (e *RecoverableFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("skipping %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("skipping %s: %s", e.Path, e.Reason)
}

func (e *RecoverableFileError) Unwrap() error { return e.Err }

// FatalSchemaError means a resolved schema left required canonical columns
// empty after transformation. In strict mode this aborts the run: continuing
// would produce silently incomplete rows.
type FatalSchemaError struct {
	SchemaID string
	File     string
	Missing  []string
}

func (e *FatalSchemaError) Error() string {
	return fmt.Sprintf("schema %s produced no value for required columns [%s] in %s",
		e.SchemaID, strings.Join(e.Missing, ", "), e.File)
}

// IntegrityViolation means the global zero-sum invariant failed beyond
// tolerance after reconciliation. It is surfaced as a hard failure and never
// auto-corrected.
type IntegrityViolation struct {
	Residual  decimal.Decimal
	Tolerance decimal.Decimal
}

func (e *IntegrityViolation) Error() string {
	return fmt.Sprintf("audit trail net effect sums to %s, exceeds tolerance %s",
		e.Residual.StringFixed(2), e.Tolerance.StringFixed(2))
}
