package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/domain"
)

func defaultConfig() domain.RunConfig {
	return domain.RunConfig{
		PartyA:                  "avery",
		PartyB:                  "blake",
		RentShareA:              decimal.NewFromInt(43),
		SourcePriority:          []string{"rocket", "monarch"},
		Tolerance:               domain.DefaultTolerance,
		SmartInferAssumeOutflow: true,
	}
}

func amountSchema(rule domain.SignRule) domain.SchemaDefinition {
	return domain.SchemaDefinition{
		ID:              "amounts",
		DataSource:      "testsource",
		FilePattern:     "*.csv",
		HeaderSignature: []string{"Date", "Amount", "Description", "Account"},
		ColumnMap: map[string]string{
			"Date":        domain.ColDate,
			"Amount":      domain.ColAmount,
			"Description": domain.ColDescription,
			"Account":     domain.ColAccount,
		},
		DateFormat:       "2006-01-02",
		SignRule:         rule,
		SignFlagColumn:   "Type",
		WithdrawalValues: []string{"withdrawal", "debit"},
	}
}

func rawAmountRow(amount string) domain.RawRow {
	return domain.RawRow{
		"Date":        "2025-06-15",
		"Amount":      amount,
		"Description": "Grocery Store",
		"Account":     "Joint Checking",
	}
}

func TestRowTransformer_SignRules(t *testing.T) {
	tests := []struct {
		name string
		rule domain.SignRule
		row  domain.RawRow
		want string
	}{
		{
			name: "as_is trusts the source",
			rule: domain.SignAsIs,
			row:  rawAmountRow("-135.64"),
			want: "-135.64",
		},
		{
			name: "flip_if_positive negates unsigned charges",
			rule: domain.SignFlipIfPositive,
			row:  rawAmountRow("135.64"),
			want: "-135.64",
		},
		{
			name: "flip_if_positive leaves negatives alone",
			rule: domain.SignFlipIfPositive,
			row:  rawAmountRow("-42.00"),
			want: "-42.00",
		},
		{
			name: "flip_if_withdrawal negates flagged rows",
			rule: domain.SignFlipIfWithdrawal,
			row: domain.RawRow{
				"Date": "2025-06-15", "Amount": "88.10", "Type": "Withdrawal",
				"Description": "ATM", "Account": "Joint Checking",
			},
			want: "-88.10",
		},
		{
			name: "flip_if_withdrawal leaves deposits alone",
			rule: domain.SignFlipIfWithdrawal,
			row: domain.RawRow{
				"Date": "2025-06-15", "Amount": "88.10", "Type": "Deposit",
				"Description": "Payroll", "Account": "Joint Checking",
			},
			want: "88.10",
		},
		{
			name: "smart_infer trusts explicit minus",
			rule: domain.SignSmartInfer,
			row:  rawAmountRow("-12.34"),
			want: "-12.34",
		},
		{
			name: "smart_infer trusts accounting parentheses",
			rule: domain.SignSmartInfer,
			row:  rawAmountRow("($12.34)"),
			want: "-12.34",
		},
		{
			name: "smart_infer assumes unsigned values are outflows",
			rule: domain.SignSmartInfer,
			row:  rawAmountRow("12.34"),
			want: "-12.34",
		},
		{
			name: "currency symbols and thousands separators are stripped",
			rule: domain.SignAsIs,
			row:  rawAmountRow("$1,234.56"),
			want: "1234.56",
		},
	}

	transformer := NewRowTransformer(defaultConfig())
	src := domain.SourceFile{Name: "amounts.csv", Owner: "avery"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := amountSchema(tt.rule)
			tx, err := transformer.Transform(tt.row, &schema, src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tx.Amount.StringFixed(2))
		})
	}
}

func TestRowTransformer_DerivedColumns(t *testing.T) {
	schema := amountSchema(domain.SignAsIs)
	schema.DerivedColumns = []domain.DerivedColumn{
		{Target: domain.ColInstitution, Kind: domain.DeriveStatic, Value: "First National"},
		{Target: domain.ColStatementPeriod, Kind: domain.DeriveFilenameExtract, Pattern: `statement_(\d{4}-\d{2})\.csv`},
		{Target: domain.ColReferenceNumber, Kind: domain.DeriveRegexExtract, SourceColumn: "Description", Pattern: `ref:(\w+)`},
		// Later recipes may reference earlier outputs.
		{Target: domain.ColCategory, Kind: domain.DeriveConcat, Columns: []string{domain.ColInstitution, domain.ColStatementPeriod}, Separator: " / "},
	}

	row := rawAmountRow("-10.00")
	row["Description"] = "transfer ref:AB123"
	src := domain.SourceFile{Name: "statement_2025-06.csv", Owner: "avery"}

	transformer := NewRowTransformer(defaultConfig())
	tx, err := transformer.Transform(row, &schema, src)
	require.NoError(t, err)

	assert.Equal(t, "First National", tx.Institution)
	assert.Equal(t, "2025-06", tx.StatementPeriod)
	assert.Equal(t, "AB123", tx.ReferenceNumber)
	assert.Equal(t, "First National / 2025-06", tx.Category)
}

func TestRowTransformer_ExtrasAndDefaults(t *testing.T) {
	schema := amountSchema(domain.SignAsIs)
	schema.IgnoreColumns = []string{"Tags"}

	row := rawAmountRow("-20.00")
	row["Tags"] = "ignored"
	row["Original Statement"] = "GROCERY STORE #1234"
	src := domain.SourceFile{Name: "amounts.csv", Owner: "blake"}

	transformer := NewRowTransformer(defaultConfig())
	tx, err := transformer.Transform(row, &schema, src)
	require.NoError(t, err)

	// Unmapped columns survive into extras unless explicitly ignored.
	assert.Equal(t, map[string]string{"Original Statement": "GROCERY STORE #1234"}, tx.Extras)

	// Owner defaults from the source directory, data source from the schema.
	assert.Equal(t, "blake", tx.Owner)
	assert.Equal(t, "testsource", tx.DataSource)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), tx.Date)

	// Schema-absent canonical fields stay zero-valued.
	assert.Nil(t, tx.PostDate)
	assert.Empty(t, tx.Institution)
	assert.Nil(t, tx.Shared)
}

func TestRowTransformer_CaseMismatchedHeaderNotDuplicatedIntoExtras(t *testing.T) {
	// The generic schema maps lowercase column names; title-cased exports
	// must still consume those columns rather than echo them into extras.
	schema := domain.GenericSchema()
	row := domain.RawRow{
		"Date":        "2025-06-01",
		"Amount":      "-5.00",
		"Description": "Coffee",
		"Account":     "Checking",
	}
	src := domain.SourceFile{Name: "plain.csv", Owner: "avery"}

	transformer := NewRowTransformer(defaultConfig())
	tx, err := transformer.Transform(row, &schema, src)
	require.NoError(t, err)

	assert.Equal(t, "Coffee", tx.Description)
	assert.Equal(t, "Checking", tx.Account)
	assert.Equal(t, "-5.00", tx.Amount.StringFixed(2))
	assert.Empty(t, tx.Extras)
}

func TestRowTransformer_Errors(t *testing.T) {
	transformer := NewRowTransformer(defaultConfig())
	schema := amountSchema(domain.SignAsIs)
	src := domain.SourceFile{Name: "amounts.csv", Owner: "avery"}

	t.Run("unparseable date fails with the schema layout in the error", func(t *testing.T) {
		row := rawAmountRow("-10.00")
		row["Date"] = "15/06/2025"
		_, err := transformer.Transform(row, &schema, src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2006-01-02")
	})

	t.Run("missing amount fails", func(t *testing.T) {
		row := rawAmountRow("")
		_, err := transformer.Transform(row, &schema, src)
		assert.Error(t, err)
	})

	t.Run("unparseable amount fails", func(t *testing.T) {
		row := rawAmountRow("12.3.4")
		_, err := transformer.Transform(row, &schema, src)
		assert.Error(t, err)
	})
}
