package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
)

// CSVLedgerWriter writes the canonical ledger and the audit trail as CSV
// files for downstream consumers.
type CSVLedgerWriter struct{}

// NewCSVLedgerWriter creates a new writer instance.
func NewCSVLedgerWriter() *CSVLedgerWriter {
	return &CSVLedgerWriter{}
}

// WriteLedger writes one row per deduplicated transaction with the fixed
// canonical column set.
func (w *CSVLedgerWriter) WriteLedger(ctx context.Context, path string, ledger domain.CanonicalLedger) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger output %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := append([]string{"txn_id"}, domain.CanonicalColumns()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}

	for _, tx := range ledger {
		record := []string{
			string(tx.ID),
			tx.Date.Format(time.DateOnly),
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Description,
			tx.Account,
			formatDatePtr(tx.PostDate),
			tx.ReferenceNumber,
			tx.Institution,
			tx.StatementPeriod,
			tx.Owner,
			tx.DataSource,
			formatBoolPtr(tx.Shared),
			formatDecimalPtr(tx.SplitPercent),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing ledger row %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing ledger output %s: %w", path, err)
	}
	return nil
}

// WriteAuditTrail writes the reconciled audit rows in sequence order.
func (w *CSVLedgerWriter) WriteAuditTrail(ctx context.Context, path string, rows []domain.AuditRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating audit output %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := []string{
		"seq", "txn_id", "party", "date", "description",
		"actual_amount", "allowed_amount", "net_effect", "running_balance",
		"calculation_notes",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing audit header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.Seq, 10),
			string(row.TxnID),
			row.Party,
			row.Date.Format(time.DateOnly),
			row.Description,
			row.ActualAmount.StringFixed(2),
			row.AllowedAmount.StringFixed(2),
			row.NetEffect.StringFixed(2),
			row.RunningBalance.StringFixed(2),
			row.CalculationNotes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing audit row %d: %w", row.Seq, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing audit output %s: %w", path, err)
	}
	return nil
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatBoolPtr(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatDecimalPtr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
