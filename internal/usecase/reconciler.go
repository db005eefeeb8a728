package usecase

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
)

// LedgerReconciler expands allocated transactions into balanced per-party
// audit rows. The running balance is the one genuinely stateful computation
// in the pipeline: it is a sequential fold over the date-sorted stream and
// must stay single-threaded.
type LedgerReconciler struct {
	cfg domain.RunConfig
	log zerolog.Logger
}

// NewLedgerReconciler creates a reconciler bound to the run's parties and
// zero-sum tolerance.
func NewLedgerReconciler(cfg domain.RunConfig, log zerolog.Logger) *LedgerReconciler {
	return &LedgerReconciler{cfg: cfg, log: log}
}

// Reconcile emits one audit row per party per transaction, chronologically
// ordered with monotonically increasing sequence ids, then verifies the
// global zero-sum invariant: the net effects of the full trail must cancel
// within tolerance. A larger residual is an integrity violation and is never
// silently absorbed.
func (r *LedgerReconciler) Reconcile(allocated []domain.AllocatedTransaction) ([]domain.AuditRow, error) {
	ordered := make([]domain.AllocatedTransaction, len(allocated))
	copy(ordered, allocated)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := ordered[i].Transaction, ordered[j].Transaction
		if !ti.Date.Equal(tj.Date) {
			return ti.Date.Before(tj.Date)
		}
		return ti.ID < tj.ID
	})

	balances := map[string]decimal.Decimal{
		r.cfg.PartyA: decimal.Zero,
		r.cfg.PartyB: decimal.Zero,
	}
	total := decimal.Zero
	rows := make([]domain.AuditRow, 0, 2*len(ordered))
	var seq int64

	for _, at := range ordered {
		tx := at.Transaction
		payer, ok := r.cfg.PartyFor(tx.Owner)
		if !ok {
			return nil, fmt.Errorf("transaction %s: owner %q is not a tracked party", tx.ID, tx.Owner)
		}
		cost := tx.Amount.Neg()

		for _, party := range []string{r.cfg.PartyA, r.cfg.PartyB} {
			actual := decimal.Zero
			if party == payer && !at.Allocation.Excluded {
				actual = cost
			}
			allowed := at.Allocation.AllowedA
			if party == r.cfg.PartyB {
				allowed = at.Allocation.AllowedB
			}
			net := allowed.Sub(actual)
			balances[party] = balances[party].Add(net)
			total = total.Add(net)

			seq++
			rows = append(rows, domain.AuditRow{
				Seq:              seq,
				TxnID:            tx.ID,
				Party:            party,
				Date:             tx.Date,
				Description:      tx.Description,
				ActualAmount:     actual,
				AllowedAmount:    allowed,
				NetEffect:        net,
				RunningBalance:   balances[party],
				CalculationNotes: at.Allocation.Notes,
			})
		}
	}

	if total.Abs().GreaterThan(r.cfg.Tolerance) {
		// Rows are returned alongside the error so the caller can dump the
		// trail for investigation.
		return rows, &domain.IntegrityViolation{Residual: total, Tolerance: r.cfg.Tolerance}
	}
	r.log.Info().
		Int("rows", len(rows)).
		Str("residual", total.StringFixed(2)).
		Msg("audit trail balanced")
	return rows, nil
}

// NetResidual sums the net effects of an audit trail. Exposed so callers can
// report the residual alongside the pass/fail of the integrity check.
func NetResidual(rows []domain.AuditRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.NetEffect)
	}
	return total
}
