package domain

// SignRule controls how a source's amount convention is normalized to
// "outflows are negative".
type SignRule string

const (
	// SignAsIs trusts the source's signs.
	SignAsIs SignRule = "as_is"
	// SignFlipIfPositive negates positive amounts (sources that report
	// unsigned charges).
	SignFlipIfPositive SignRule = "flip_if_positive"
	// SignFlipIfWithdrawal negates amounts flagged as withdrawals by a
	// companion column.
	SignFlipIfWithdrawal SignRule = "flip_if_withdrawal"
	// SignSmartInfer applies best-effort heuristics. Not guaranteed; its
	// default-direction assumption is a configurable policy point.
	SignSmartInfer SignRule = "smart_infer"
)

// DerivedColumnKind discriminates the derived-column recipe variants.
type DerivedColumnKind string

const (
	DeriveStatic          DerivedColumnKind = "static"
	DeriveRegexExtract    DerivedColumnKind = "regex_extract"
	DeriveFilenameExtract DerivedColumnKind = "filename_extract"
	DeriveConcat          DerivedColumnKind = "concat"
)

// DerivedColumn is one recipe producing a canonical column the source file
// does not carry directly. Recipes are evaluated in declaration order, so a
// later recipe may reference the output of an earlier one.
type DerivedColumn struct {
	Target string            `yaml:"target"`
	Kind   DerivedColumnKind `yaml:"kind"`

	// static
	Value string `yaml:"value,omitempty"`

	// regex_extract / filename_extract: first capture group of Pattern.
	SourceColumn string `yaml:"source_column,omitempty"`
	Pattern      string `yaml:"pattern,omitempty"`

	// concat
	Columns   []string `yaml:"columns,omitempty"`
	Separator string   `yaml:"separator,omitempty"`
}

// SchemaDefinition describes how one institution's export format maps onto
// the canonical column set. Definitions are immutable once loaded.
type SchemaDefinition struct {
	ID         string `yaml:"id"`
	DataSource string `yaml:"data_source"`

	// FilePattern is a filepath.Match glob over the base filename.
	FilePattern string `yaml:"file_pattern"`

	// HeaderSignature is the set of source columns expected in the header.
	// Resolution scores by overlap, not equality, since institutions add
	// and drop optional columns between periods.
	HeaderSignature []string `yaml:"header_signature"`

	// ColumnMap renames source columns to canonical ones.
	ColumnMap map[string]string `yaml:"column_map"`

	// DateFormat is a Go reference layout. Dates are never auto-inferred;
	// institutions are inconsistent about day/month order.
	DateFormat     string `yaml:"date_format"`
	PostDateFormat string `yaml:"post_date_format,omitempty"`

	SignRule SignRule `yaml:"sign_rule"`
	// Companion column and values for flip_if_withdrawal.
	SignFlagColumn   string   `yaml:"sign_flag_column,omitempty"`
	WithdrawalValues []string `yaml:"withdrawal_values,omitempty"`

	DerivedColumns []DerivedColumn `yaml:"derived_columns,omitempty"`

	// IgnoreColumns are unmapped source columns that must not be preserved
	// into extras.
	IgnoreColumns []string `yaml:"ignore_columns,omitempty"`

	// Generic marks the built-in fallback schema.
	Generic bool `yaml:"-"`
}

// SchemaCatalog holds every loaded schema in declaration order. Resolution
// ties break toward the first-registered definition.
type SchemaCatalog struct {
	Schemas []SchemaDefinition
}

// GenericSchemaID names the built-in fallback schema appended to every catalog.
const GenericSchemaID = "generic"

// GenericSchema is the minimal fallback applied to structurally plausible but
// unrecognized CSVs. It guarantees the resolver never hard-fails on a file
// that at least carries the required canonical columns.
func GenericSchema() SchemaDefinition {
	return SchemaDefinition{
		ID:          GenericSchemaID,
		DataSource:  "unknown",
		FilePattern: "*",
		HeaderSignature: []string{
			ColDate, ColAmount, ColDescription, ColAccount, ColCategory,
		},
		ColumnMap: map[string]string{
			ColDate:        ColDate,
			ColAmount:      ColAmount,
			ColDescription: ColDescription,
			ColAccount:     ColAccount,
			ColCategory:    ColCategory,
		},
		DateFormat: "2006-01-02",
		SignRule:   SignAsIs,
		Generic:    true,
	}
}
