package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/domain"
)

func testCatalog() *domain.SchemaCatalog {
	return &domain.SchemaCatalog{Schemas: []domain.SchemaDefinition{
		{
			ID:              "rocket_export",
			DataSource:      "rocket",
			FilePattern:     "rocket*.csv",
			HeaderSignature: []string{"Date", "Amount", "Name", "Account Name", "Category"},
			ColumnMap: map[string]string{
				"Date":         domain.ColDate,
				"Amount":       domain.ColAmount,
				"Name":         domain.ColDescription,
				"Account Name": domain.ColAccount,
				"Category":     domain.ColCategory,
			},
			DateFormat: "2006-01-02",
			SignRule:   domain.SignAsIs,
		},
		{
			ID:              "monarch_export",
			DataSource:      "monarch",
			FilePattern:     "*.csv",
			HeaderSignature: []string{"Date", "Merchant", "Amount", "Account", "Category"},
			ColumnMap: map[string]string{
				"Date":     domain.ColDate,
				"Merchant": domain.ColDescription,
				"Amount":   domain.ColAmount,
				"Account":  domain.ColAccount,
				"Category": domain.ColCategory,
			},
			DateFormat: "01/02/2006",
			SignRule:   domain.SignFlipIfPositive,
		},
		domain.GenericSchema(),
	}}
}

func TestSchemaResolver_Resolve(t *testing.T) {
	resolver := NewSchemaResolver(testCatalog())

	tests := []struct {
		name     string
		filename string
		header   []string
		wantID   string
		wantErr  bool
	}{
		{
			name:     "exact signature resolves to its schema, not the generic fallback",
			filename: "monarch-2025-06.csv",
			header:   []string{"Date", "Merchant", "Amount", "Account", "Category"},
			wantID:   "monarch_export",
		},
		{
			name:     "filename pattern filters candidates before scoring",
			filename: "rocket_june.csv",
			header:   []string{"Date", "Amount", "Name", "Account Name", "Category"},
			wantID:   "rocket_export",
		},
		{
			name:     "partial overlap still wins over generic",
			filename: "monarch-2025-07.csv",
			header:   []string{"Date", "Merchant", "Amount", "Account", "Tags", "Notes"},
			wantID:   "monarch_export",
		},
		{
			name:     "unrecognized but plausible header falls back to generic",
			filename: "mystery.csv",
			header:   []string{"date", "amount", "description", "account"},
			wantID:   domain.GenericSchemaID,
		},
		{
			name:     "zero overlap with every candidate is recoverable",
			filename: "noise.csv",
			header:   []string{"foo", "bar", "baz"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := resolver.Resolve(tt.filename, tt.header)
			if tt.wantErr {
				require.Error(t, err)
				var recoverable *domain.RecoverableFileError
				assert.True(t, errors.As(err, &recoverable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, schema.ID)
		})
	}
}

func TestSchemaResolver_TieBreaksFirstRegistered(t *testing.T) {
	catalog := &domain.SchemaCatalog{Schemas: []domain.SchemaDefinition{
		{
			ID:              "first",
			FilePattern:     "*.csv",
			HeaderSignature: []string{"Date", "Amount"},
			DateFormat:      "2006-01-02",
		},
		{
			ID:              "second",
			FilePattern:     "*.csv",
			HeaderSignature: []string{"Date", "Amount"},
			DateFormat:      "2006-01-02",
		},
	}}
	resolver := NewSchemaResolver(catalog)

	schema, err := resolver.Resolve("any.csv", []string{"Date", "Amount"})
	require.NoError(t, err)
	assert.Equal(t, "first", schema.ID)
}

func TestSchemaResolver_GenericNeverWinsOverPartialMatch(t *testing.T) {
	resolver := NewSchemaResolver(testCatalog())

	// Generic's signature overlaps on "date" and "amount" only; monarch
	// overlaps on three columns and must win.
	schema, err := resolver.Resolve("export.csv", []string{"date", "amount", "Merchant", "Account"})
	require.NoError(t, err)
	assert.Equal(t, "monarch_export", schema.ID)
}
