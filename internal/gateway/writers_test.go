package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/domain"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVLedgerWriter_WriteLedger(t *testing.T) {
	ledger := domain.CanonicalLedger{
		{
			ID:          "abc123",
			Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-2000"),
			Category:    "Rent",
			Description: "June Rent",
			Account:     "Joint Checking",
			Owner:       "avery",
			DataSource:  "rocket",
		},
	}

	path := filepath.Join(t.TempDir(), "ledger.csv")
	writer := NewCSVLedgerWriter()
	require.NoError(t, writer.WriteLedger(context.Background(), path, ledger))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, append([]string{"txn_id"}, domain.CanonicalColumns()...), records[0])
	assert.Equal(t, "abc123", records[1][0])
	assert.Equal(t, "2025-06-01", records[1][1])
	assert.Equal(t, "-2000.00", records[1][2])
	// Schema-absent optional fields stay empty, keeping the column set stable.
	assert.Equal(t, "", records[1][6])
}

func TestCSVLedgerWriter_WriteAuditTrail(t *testing.T) {
	rows := []domain.AuditRow{
		{
			Seq:            1,
			TxnID:          "abc123",
			Party:          "avery",
			Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Description:    "June Rent",
			ActualAmount:   decimal.RequireFromString("2000"),
			AllowedAmount:  decimal.RequireFromString("860"),
			NetEffect:      decimal.RequireFromString("-1140"),
			RunningBalance: decimal.RequireFromString("-1140"),
		},
	}

	path := filepath.Join(t.TempDir(), "audit.csv")
	writer := NewCSVLedgerWriter()
	require.NoError(t, writer.WriteAuditTrail(context.Background(), path, rows))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "abc123", "avery", "2025-06-01", "June Rent",
		"2000.00", "860.00", "-1140.00", "-1140.00", ""}, records[1])
}

func TestYAMLMerchantRepository_LoadMerchantLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merchants.yaml")
	writeFile(t, path, `merchants:
  "SQ *Blue Bottle": Blue Bottle Coffee
  "AMZN Mktp": Amazon
  "": Dropped
`)

	repo := NewYAMLMerchantRepository()
	lookup, err := repo.LoadMerchantLookup(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.MerchantLookup{
		"sq *blue bottle": "Blue Bottle Coffee",
		"amzn mktp":       "Amazon",
	}, lookup)
}
