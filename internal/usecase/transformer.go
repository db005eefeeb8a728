package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
)

// RowTransformer applies a resolved schema to raw rows, producing canonical
// transactions with normalized signs and a guaranteed-identical column set
// across all sources.
type RowTransformer struct {
	cfg domain.RunConfig
	now func() time.Time
}

// NewRowTransformer creates a transformer using the run's sign-inference policy.
func NewRowTransformer(cfg domain.RunConfig) *RowTransformer {
	return &RowTransformer{cfg: cfg, now: time.Now}
}

// Transform converts one raw row. Steps, each skipped when the schema does
// not call for it: column renaming, date parsing with the schema's explicit
// layout, amount coercion plus sign-rule application, derived-column
// evaluation in declaration order, and preservation of unmapped columns into
// extras. The returned struct always carries the full canonical column set;
// fields the schema never produced stay zero-valued.
func (t *RowTransformer) Transform(raw domain.RawRow, schema *domain.SchemaDefinition, src domain.SourceFile) (domain.CanonicalTransaction, error) {
	var tx domain.CanonicalTransaction

	// Column renaming. Consumed columns are tracked lowercased: lookupColumn
	// matches raw headers case-insensitively, so the schema-side key and the
	// raw-side key may differ in casing only.
	canon := make(map[string]string)
	consumed := make(map[string]bool)
	for source, target := range schema.ColumnMap {
		if value, ok := lookupColumn(raw, source); ok {
			canon[target] = value
			consumed[strings.ToLower(source)] = true
		}
	}

	// Date parsing. Formats are always explicit; locale-sensitive inference
	// would misread day/month order for some institutions.
	dateStr, ok := canon[domain.ColDate]
	if !ok || dateStr == "" {
		return tx, fmt.Errorf("row has no %s value", domain.ColDate)
	}
	date, err := time.Parse(schema.DateFormat, dateStr)
	if err != nil {
		return tx, fmt.Errorf("parsing date %q with layout %q: %w", dateStr, schema.DateFormat, err)
	}
	tx.Date = date

	if postStr := canon[domain.ColPostDate]; postStr != "" {
		layout := schema.PostDateFormat
		if layout == "" {
			layout = schema.DateFormat
		}
		post, err := time.Parse(layout, postStr)
		if err != nil {
			return tx, fmt.Errorf("parsing post date %q with layout %q: %w", postStr, layout, err)
		}
		tx.PostDate = &post
	}

	// Amount coercion and sign normalization.
	amountStr, ok := canon[domain.ColAmount]
	if !ok || amountStr == "" {
		return tx, fmt.Errorf("row has no %s value", domain.ColAmount)
	}
	amount, explicitSign, err := parseAmount(amountStr)
	if err != nil {
		return tx, fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	tx.Amount, err = t.applySignRule(amount, explicitSign, raw, schema)
	if err != nil {
		return tx, err
	}

	// Derived columns, in declaration order. A later recipe may reference
	// an earlier recipe's output.
	for _, d := range schema.DerivedColumns {
		value, err := evalDerived(d, canon, raw, src)
		if err != nil {
			return tx, fmt.Errorf("derived column %s: %w", d.Target, err)
		}
		canon[d.Target] = value
	}

	tx.Category = canon[domain.ColCategory]
	tx.Description = canon[domain.ColDescription]
	tx.Account = canon[domain.ColAccount]
	tx.ReferenceNumber = canon[domain.ColReferenceNumber]
	tx.Institution = canon[domain.ColInstitution]
	tx.StatementPeriod = canon[domain.ColStatementPeriod]

	tx.Owner = strings.ToLower(canon[domain.ColOwner])
	if tx.Owner == "" {
		tx.Owner = src.Owner
	}
	tx.DataSource = canon[domain.ColDataSource]
	if tx.DataSource == "" {
		tx.DataSource = schema.DataSource
	}
	tx.IngestedAt = t.now()

	if sharedStr := canon[domain.ColShared]; sharedStr != "" {
		shared := parseBoolish(sharedStr)
		tx.Shared = &shared
	}
	if splitStr := canon[domain.ColSplitPercent]; splitStr != "" {
		split, err := decimal.NewFromString(splitStr)
		if err != nil {
			return tx, fmt.Errorf("parsing split percent %q: %w", splitStr, err)
		}
		tx.SplitPercent = &split
	}

	// Preserve unmapped columns unless the schema says to drop them.
	ignored := make(map[string]bool, len(schema.IgnoreColumns))
	for _, col := range schema.IgnoreColumns {
		ignored[strings.ToLower(col)] = true
	}
	for col, value := range raw {
		if consumed[strings.ToLower(col)] || ignored[strings.ToLower(col)] || value == "" {
			continue
		}
		if tx.Extras == nil {
			tx.Extras = make(map[string]string)
		}
		tx.Extras[col] = value
	}

	return tx, nil
}

// MissingRequired lists required canonical columns the transformation left
// empty. A non-empty result means the resolved schema does not actually fit
// this file's contents.
func MissingRequired(tx domain.CanonicalTransaction) []string {
	var missing []string
	for _, col := range domain.RequiredColumns() {
		switch col {
		case domain.ColDate:
			if tx.Date.IsZero() {
				missing = append(missing, col)
			}
		case domain.ColAmount:
			// parse failure already errors; nothing to check here
		case domain.ColDescription:
			if tx.Description == "" {
				missing = append(missing, col)
			}
		case domain.ColAccount:
			if tx.Account == "" {
				missing = append(missing, col)
			}
		}
	}
	return missing
}

// applySignRule normalizes the amount so outflows are negative.
func (t *RowTransformer) applySignRule(amount decimal.Decimal, explicitSign bool, raw domain.RawRow, schema *domain.SchemaDefinition) (decimal.Decimal, error) {
	switch schema.SignRule {
	case domain.SignAsIs, "":
		return amount, nil

	case domain.SignFlipIfPositive:
		if amount.IsPositive() {
			return amount.Neg(), nil
		}
		return amount, nil

	case domain.SignFlipIfWithdrawal:
		flag, _ := lookupColumn(raw, schema.SignFlagColumn)
		for _, v := range schema.WithdrawalValues {
			if strings.EqualFold(strings.TrimSpace(flag), v) {
				return amount.Abs().Neg(), nil
			}
		}
		return amount, nil

	case domain.SignSmartInfer:
		// Best-effort heuristic: explicit signs (minus, parentheses) are
		// trusted; unsigned values fall back to the configured default
		// direction. Not guaranteed correct for every source.
		if explicitSign {
			return amount, nil
		}
		if t.cfg.SmartInferAssumeOutflow && amount.IsPositive() {
			return amount.Neg(), nil
		}
		return amount, nil
	}
	return amount, fmt.Errorf("unknown sign rule %q", schema.SignRule)
}

// evalDerived interprets one derived-column recipe. Lookups consult earlier
// canonical outputs first, then the raw row.
func evalDerived(d domain.DerivedColumn, canon map[string]string, raw domain.RawRow, src domain.SourceFile) (string, error) {
	get := func(col string) string {
		if v, ok := canon[col]; ok {
			return v
		}
		v, _ := lookupColumn(raw, col)
		return v
	}

	switch d.Kind {
	case domain.DeriveStatic:
		return d.Value, nil

	case domain.DeriveRegexExtract:
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return "", err
		}
		m := re.FindStringSubmatch(get(d.SourceColumn))
		if len(m) < 2 {
			return "", nil
		}
		return m[1], nil

	case domain.DeriveFilenameExtract:
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return "", err
		}
		m := re.FindStringSubmatch(src.Name)
		if len(m) < 2 {
			return "", nil
		}
		return m[1], nil

	case domain.DeriveConcat:
		parts := make([]string, 0, len(d.Columns))
		for _, col := range d.Columns {
			if v := get(col); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, d.Separator), nil
	}
	return "", fmt.Errorf("unknown derived column kind %q", d.Kind)
}

// lookupColumn finds a raw column case-insensitively.
func lookupColumn(raw domain.RawRow, col string) (string, bool) {
	if v, ok := raw[col]; ok {
		return v, true
	}
	for k, v := range raw {
		if strings.EqualFold(k, col) {
			return v, true
		}
	}
	return "", false
}

var amountCleaner = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// parseAmount coerces a source amount string to a decimal, reporting whether
// the source carried an explicit sign (leading minus/plus, trailing minus, or
// accounting parentheses).
func parseAmount(s string) (decimal.Decimal, bool, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))

	negative := false
	explicit := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
		negative = true
		explicit = true
	}
	if strings.HasPrefix(cleaned, "-") {
		cleaned = strings.TrimPrefix(cleaned, "-")
		negative = !negative
		explicit = true
	} else if strings.HasPrefix(cleaned, "+") {
		cleaned = strings.TrimPrefix(cleaned, "+")
		explicit = true
	} else if strings.HasSuffix(cleaned, "-") {
		cleaned = strings.TrimSuffix(cleaned, "-")
		negative = true
		explicit = true
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, explicit, nil
}

func parseBoolish(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
