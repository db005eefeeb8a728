package usecase

import (
	"path/filepath"
	"strings"

	"splitledger/internal/domain"
)

// SchemaResolver matches one input file's filename and header row against the
// loaded catalog.
type SchemaResolver struct {
	catalog *domain.SchemaCatalog
}

// NewSchemaResolver creates a resolver over an immutable catalog.
func NewSchemaResolver(catalog *domain.SchemaCatalog) *SchemaResolver {
	return &SchemaResolver{catalog: catalog}
}

// Resolve picks the best schema for the file. Candidates are filtered by
// filename pattern, then scored by header-signature overlap: the count of
// expected columns present in the header. Exact signature equality is not
// required, since institutions add and drop optional columns between
// statement periods. Ties break toward the first-registered schema. A file
// with zero overlap against every candidate, the generic fallback included,
// is recoverably unresolvable.
func (r *SchemaResolver) Resolve(filename string, header []string) (*domain.SchemaDefinition, error) {
	headerSet := make(map[string]bool, len(header))
	for _, col := range header {
		headerSet[normalizeColumn(col)] = true
	}

	best := -1
	bestScore := 0
	for i := range r.catalog.Schemas {
		schema := &r.catalog.Schemas[i]
		if ok, _ := filepath.Match(schema.FilePattern, filename); !ok {
			continue
		}
		score := 0
		for _, col := range schema.HeaderSignature {
			if headerSet[normalizeColumn(col)] {
				score++
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return nil, &domain.RecoverableFileError{
			Path:   filename,
			Reason: "header matches no schema signature",
		}
	}
	return &r.catalog.Schemas[best], nil
}

func normalizeColumn(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}
