package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatternTag is a semantic label attached to a transaction after regex
// classification of its cleaned description text.
type PatternTag string

const (
	TagFullAllocation     PatternTag = "full_allocation_100_percent"
	TagMultiplier2x       PatternTag = "multiplier_2x"
	TagGiftOrPresent      PatternTag = "gift_or_present"
	TagFreeForPerson      PatternTag = "free_for_person"
	TagSettlementTransfer PatternTag = "settlement_transfer"
	TagCashback           PatternTag = "cashback"
	TagRent               PatternTag = "rent"
)

// tagPriority makes conflict precedence explicit rather than an artifact of
// rule declaration order. Lower value wins.
var tagPriority = map[PatternTag]int{
	TagFullAllocation:     1,
	TagMultiplier2x:       2,
	TagGiftOrPresent:      3,
	TagFreeForPerson:      3,
	TagSettlementTransfer: 4,
	TagCashback:           5,
	TagRent:               6,
}

// Priority returns the tag's conflict precedence; lower wins.
func (t PatternTag) Priority() int {
	p, ok := tagPriority[t]
	if !ok {
		return int(^uint(0) >> 1)
	}
	return p
}

// TagSet is the (possibly empty) set of tags fired for one transaction.
// An empty set signals "apply the default allocation rule".
type TagSet map[PatternTag]bool

// Has reports whether the set contains the tag.
func (s TagSet) Has(t PatternTag) bool { return s[t] }

// AllocationResult is the two-party liability split for one transaction.
// For ordinary expenses AllowedA + AllowedB equals the transaction's cost;
// for settlement transfers the pair of transactions nets to zero instead.
type AllocationResult struct {
	AllowedA decimal.Decimal `json:"allowed_a"`
	AllowedB decimal.Decimal `json:"allowed_b"`

	// Rule names the branch of the priority table that fired.
	Rule  string `json:"rule"`
	Notes string `json:"notes,omitempty"`

	// Excluded marks transactions (cashback rewards) that are kept out of
	// the shared pool entirely: allowed and actual are both forced to zero
	// so the row cannot disturb the zero-sum invariant.
	Excluded bool `json:"excluded,omitempty"`
}

// AllocatedTransaction pairs a ledger row with its tags and allocation,
// ready for audit-row expansion.
type AllocatedTransaction struct {
	Transaction CanonicalTransaction `json:"transaction"`
	Tags        TagSet               `json:"tags,omitempty"`
	Allocation  AllocationResult     `json:"allocation"`
}

// AuditRow is one party's side of one transaction in the final audit trail.
// NetEffect is AllowedAmount - ActualAmount; the audit trail as a whole must
// sum to zero within the configured tolerance.
type AuditRow struct {
	Seq   int64  `json:"seq"`
	TxnID TxnID  `json:"txn_id"`
	Party string `json:"party"`

	Date        time.Time `json:"date"`
	Description string    `json:"description"`

	ActualAmount   decimal.Decimal `json:"actual_amount"`
	AllowedAmount  decimal.Decimal `json:"allowed_amount"`
	NetEffect      decimal.Decimal `json:"net_effect"`
	RunningBalance decimal.Decimal `json:"running_balance"`

	CalculationNotes string `json:"calculation_notes,omitempty"`
}
