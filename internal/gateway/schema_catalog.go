package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"splitledger/internal/domain"
)

// YAMLSchemaCatalogRepository loads schema definitions from a directory of
// YAML documents: one catalog.yaml plus optional per-schema *.schema.yaml
// fragments. The catalog is loaded once at startup and never mutated.
type YAMLSchemaCatalogRepository struct{}

// NewYAMLSchemaCatalogRepository creates a new repository instance.
func NewYAMLSchemaCatalogRepository() *YAMLSchemaCatalogRepository {
	return &YAMLSchemaCatalogRepository{}
}

// catalogDocument is the on-disk shape of catalog.yaml.
type catalogDocument struct {
	Schemas []domain.SchemaDefinition `yaml:"schemas"`
}

// LoadCatalog reads catalog.yaml and any *.schema.yaml fragments from dir,
// validates every definition, and appends the built-in generic fallback.
// Declaration order is preserved: catalog.yaml first, then fragments in
// lexical filename order. Resolution ties break toward earlier entries.
func (r *YAMLSchemaCatalogRepository) LoadCatalog(ctx context.Context, dir string) (*domain.SchemaCatalog, error) {
	var schemas []domain.SchemaDefinition

	catalogPath := filepath.Join(dir, "catalog.yaml")
	if _, err := os.Stat(catalogPath); err == nil {
		loaded, err := readCatalogFile(catalogPath)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, loaded...)
	}

	fragments, err := filepath.Glob(filepath.Join(dir, "*.schema.yaml"))
	if err != nil {
		return nil, fmt.Errorf("globbing schema fragments in %s: %w", dir, err)
	}
	sort.Strings(fragments)
	for _, path := range fragments {
		var def domain.SchemaDefinition
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading schema fragment %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing schema fragment %s: %w", path, err)
		}
		schemas = append(schemas, def)
	}

	if len(schemas) == 0 {
		return nil, fmt.Errorf("no schema definitions found in %s", dir)
	}

	if err := validateSchemas(schemas); err != nil {
		return nil, err
	}

	schemas = append(schemas, domain.GenericSchema())
	return &domain.SchemaCatalog{Schemas: schemas}, nil
}

func readCatalogFile(path string) ([]domain.SchemaDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return doc.Schemas, nil
}

var validSignRules = map[domain.SignRule]bool{
	domain.SignAsIs:             true,
	domain.SignFlipIfPositive:   true,
	domain.SignFlipIfWithdrawal: true,
	domain.SignSmartInfer:       true,
}

func validateSchemas(schemas []domain.SchemaDefinition) error {
	seen := make(map[string]bool)
	for i := range schemas {
		s := &schemas[i]
		if s.ID == "" {
			return fmt.Errorf("schema at position %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate schema id %q", s.ID)
		}
		seen[s.ID] = true
		if s.ID == domain.GenericSchemaID {
			return fmt.Errorf("schema id %q is reserved for the built-in fallback", s.ID)
		}
		if len(s.HeaderSignature) == 0 {
			return fmt.Errorf("schema %s: header_signature must not be empty", s.ID)
		}
		if s.FilePattern == "" {
			return fmt.Errorf("schema %s: file_pattern must not be empty", s.ID)
		}
		if _, err := filepath.Match(s.FilePattern, "probe.csv"); err != nil {
			return fmt.Errorf("schema %s: invalid file_pattern %q: %w", s.ID, s.FilePattern, err)
		}
		if s.DateFormat == "" {
			return fmt.Errorf("schema %s: date_format must not be empty", s.ID)
		}
		if s.SignRule == "" {
			s.SignRule = domain.SignAsIs
		}
		if !validSignRules[s.SignRule] {
			return fmt.Errorf("schema %s: unknown sign_rule %q", s.ID, s.SignRule)
		}
		if s.SignRule == domain.SignFlipIfWithdrawal && s.SignFlagColumn == "" {
			return fmt.Errorf("schema %s: flip_if_withdrawal requires sign_flag_column", s.ID)
		}
		for _, d := range s.DerivedColumns {
			if err := validateDerived(s.ID, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateDerived(schemaID string, d domain.DerivedColumn) error {
	if d.Target == "" {
		return fmt.Errorf("schema %s: derived column has no target", schemaID)
	}
	switch d.Kind {
	case domain.DeriveStatic:
		// any value, including empty, is allowed
	case domain.DeriveRegexExtract:
		if d.SourceColumn == "" {
			return fmt.Errorf("schema %s: derived %s: regex_extract requires source_column", schemaID, d.Target)
		}
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return fmt.Errorf("schema %s: derived %s: invalid pattern: %w", schemaID, d.Target, err)
		}
	case domain.DeriveFilenameExtract:
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return fmt.Errorf("schema %s: derived %s: invalid pattern: %w", schemaID, d.Target, err)
		}
	case domain.DeriveConcat:
		if len(d.Columns) == 0 {
			return fmt.Errorf("schema %s: derived %s: concat requires columns", schemaID, d.Target)
		}
	default:
		return fmt.Errorf("schema %s: derived %s: unknown kind %q", schemaID, d.Target, d.Kind)
	}
	if strings.EqualFold(d.Target, domain.ColAmount) {
		return fmt.Errorf("schema %s: derived columns may not target %s", schemaID, domain.ColAmount)
	}
	return nil
}
