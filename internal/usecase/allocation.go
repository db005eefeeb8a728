package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// AllocationEngine maps a transaction's tags and category to the two-party
// liability split through a fixed rule-priority table. Rule order is part of
// the contract: rent overrides tags, full allocation beats the multiplier,
// and so on down to the 50/50 default.
type AllocationEngine struct {
	cfg domain.RunConfig
}

// NewAllocationEngine creates an engine bound to the run's split policy.
func NewAllocationEngine(cfg domain.RunConfig) *AllocationEngine {
	return &AllocationEngine{cfg: cfg}
}

// Allocate computes (allowed_A, allowed_B) for one transaction. Cost is the
// negated amount, so an outflow of -135.64 costs 135.64. Cent rounding always
// lands on party A, with B taking the exact remainder, so the pair sums
// precisely: for every rule except settlement and cashback,
// allowed_A + allowed_B equals the transaction's cost.
func (e *AllocationEngine) Allocate(tx domain.CanonicalTransaction, tags domain.TagSet) (domain.AllocationResult, error) {
	payer, ok := e.cfg.PartyFor(tx.Owner)
	if !ok {
		return domain.AllocationResult{}, fmt.Errorf("transaction %s: owner %q is neither %s nor %s",
			tx.ID, tx.Owner, e.cfg.PartyA, e.cfg.PartyB)
	}
	other := e.cfg.OtherParty(payer)
	cost := tx.Amount.Neg()

	// When several tags fire, the one with the highest explicit priority
	// decides; rent category overrides tags entirely.
	dominant := dominantTag(tags)

	switch {
	case strings.EqualFold(tx.Category, "rent") || dominant == domain.TagRent:
		shareA := cost.Mul(e.cfg.RentShareA).Div(hundred).Round(2)
		return domain.AllocationResult{
			AllowedA: shareA,
			AllowedB: cost.Sub(shareA),
			Rule:     "rent_fixed_ratio",
			Notes: fmt.Sprintf("rent split %s/%s", e.cfg.RentShareA.StringFixed(0),
				hundred.Sub(e.cfg.RentShareA).StringFixed(0)),
		}, nil

	case dominant == domain.TagFullAllocation:
		return e.split(payer, cost, decimal.Zero, "full_allocation",
			fmt.Sprintf("100%% allocated to %s", payer)), nil

	case dominant == domain.TagMultiplier2x:
		// Pre-reimbursement accounting: the payer's allowed share doubles
		// relative to what was actually paid, the other party absorbs the
		// negative remainder.
		doubled := cost.Mul(two)
		return e.split(payer, doubled, cost.Sub(doubled), "multiplier_2x",
			fmt.Sprintf("2x multiplier for %s", payer)), nil

	case dominant == domain.TagGiftOrPresent || dominant == domain.TagFreeForPerson:
		return e.split(payer, decimal.Zero, cost, "gift_or_free",
			fmt.Sprintf("100%% allocated to %s", other)), nil

	case dominant == domain.TagSettlementTransfer:
		// Signed pass-through: the pair nets to zero, not to the transaction
		// amount. The receiving side's mirrored transaction cancels this one.
		return e.split(payer, cost, cost.Neg(), "settlement_transfer",
			fmt.Sprintf("settlement between %s and %s", payer, other)), nil

	case dominant == domain.TagCashback:
		return domain.AllocationResult{
			AllowedA: decimal.Zero,
			AllowedB: decimal.Zero,
			Rule:     "cashback",
			Notes:    "cashback reward excluded from shared pool",
			Excluded: true,
		}, nil
	}

	half := cost.Div(two).Round(2)
	return domain.AllocationResult{
		AllowedA: half,
		AllowedB: cost.Sub(half),
		Rule:     "default_even_split",
		Notes:    "default 50/50",
	}, nil
}

// dominantTag picks the highest-precedence tag of the set, or "" when empty.
func dominantTag(tags domain.TagSet) domain.PatternTag {
	var best domain.PatternTag
	bestPriority := 0
	for tag := range tags {
		if best == "" || tag.Priority() < bestPriority {
			best = tag
			bestPriority = tag.Priority()
		}
	}
	return best
}

// split assigns payerShare and otherShare to the A/B slots by who paid.
func (e *AllocationEngine) split(payer string, payerShare, otherShare decimal.Decimal, rule, notes string) domain.AllocationResult {
	res := domain.AllocationResult{Rule: rule, Notes: notes}
	if payer == e.cfg.PartyA {
		res.AllowedA = payerShare
		res.AllowedB = otherShare
	} else {
		res.AllowedA = otherShare
		res.AllowedB = payerShare
	}
	return res
}

// AllocateLedger classifies and allocates every ledger row.
func AllocateLedger(ledger domain.CanonicalLedger, classifier *PatternClassifier, engine *AllocationEngine) ([]domain.AllocatedTransaction, error) {
	allocated := make([]domain.AllocatedTransaction, 0, len(ledger))
	for _, tx := range ledger {
		tags := classifier.Classify(tx.Description)
		alloc, err := engine.Allocate(tx, tags)
		if err != nil {
			return nil, err
		}
		allocated = append(allocated, domain.AllocatedTransaction{
			Transaction: tx,
			Tags:        tags,
			Allocation:  alloc,
		})
	}
	return allocated, nil
}
