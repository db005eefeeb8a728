package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnID is the deterministic identity hash of a transaction, computed over
// {date, amount, description, account, owner}. The data-source name is
// deliberately excluded so the same real-world transaction reported by two
// aggregators hashes identically.
type TxnID string

// RawRow is one CSV record keyed by its source header, before any schema is applied.
type RawRow map[string]string

// SourceFile describes one input CSV discovered under the ingest root.
type SourceFile struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Owner string `json:"owner"` // first-level subdirectory under the ingest root
}

// CanonicalTransaction is one row of the unified ledger. Amount sign is
// normalized during transformation so outflows are always negative,
// regardless of the source's own convention.
type CanonicalTransaction struct {
	ID TxnID `json:"txn_id"`

	// Required fields
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Account     string          `json:"account"`

	// Optional banking fields
	PostDate        *time.Time `json:"post_date,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	Institution     string     `json:"institution,omitempty"`
	StatementPeriod string     `json:"statement_period,omitempty"`

	// System fields
	Owner      string    `json:"owner"`
	DataSource string    `json:"data_source"`
	IngestedAt time.Time `json:"ingested_at"`

	// Enrichment fields
	Shared       *bool            `json:"shared,omitempty"`
	SplitPercent *decimal.Decimal `json:"split_percent,omitempty"`

	// Columns the schema neither mapped nor ignored.
	Extras map[string]string `json:"extras,omitempty"`
}

// CanonicalLedger is the unified, deduplicated transaction table.
type CanonicalLedger []CanonicalTransaction

// MerchantLookup maps lowercased raw description substrings to cleaned
// merchant names. Cleaned text is what the pattern classifier sees.
type MerchantLookup map[string]string

// Canonical column names, used by schema column maps and the CSV writers.
const (
	ColDate            = "date"
	ColAmount          = "amount"
	ColCategory        = "category"
	ColDescription     = "description"
	ColAccount         = "account"
	ColPostDate        = "post_date"
	ColReferenceNumber = "reference_number"
	ColInstitution     = "institution"
	ColStatementPeriod = "statement_period"
	ColOwner           = "owner"
	ColDataSource      = "data_source"
	ColShared          = "shared"
	ColSplitPercent    = "split_percent"
)

// CanonicalColumns lists every canonical column in output order.
func CanonicalColumns() []string {
	return []string{
		ColDate, ColAmount, ColCategory, ColDescription, ColAccount,
		ColPostDate, ColReferenceNumber, ColInstitution, ColStatementPeriod,
		ColOwner, ColDataSource, ColShared, ColSplitPercent,
	}
}

// RequiredColumns are the canonical fields every resolved schema must produce.
func RequiredColumns() []string {
	return []string{ColDate, ColAmount, ColDescription, ColAccount}
}
