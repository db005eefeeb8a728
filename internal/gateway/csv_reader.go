package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"splitledger/internal/domain"
)

// CSVFileRepository discovers and reads raw transaction export files under an
// ingest root. It applies no schema knowledge: rows come back keyed by the
// file's own header, exactly as the institution wrote them.
type CSVFileRepository struct{}

// NewCSVFileRepository creates a new repository instance.
func NewCSVFileRepository() *CSVFileRepository {
	return &CSVFileRepository{}
}

// ListFiles walks the directory tree under root and returns every .csv file.
// The first-level subdirectory name supplies the file's default owner; files
// sitting directly in root have no owner.
func (r *CSVFileRepository) ListFiles(ctx context.Context, root string) ([]domain.SourceFile, error) {
	var files []domain.SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		owner := ""
		if parts := strings.Split(rel, string(filepath.Separator)); len(parts) > 1 {
			owner = parts[0]
		}
		files = append(files, domain.SourceFile{
			Path:  path,
			Name:  filepath.Base(path),
			Owner: strings.ToLower(owner),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking ingest root %s: %w", root, err)
	}
	return files, nil
}

// ReadFile parses one CSV file into its header and raw rows. Rows shorter
// than the header are padded with empty values; longer rows are an error,
// reported with the offending line number.
func (r *CSVFileRepository) ReadFile(ctx context.Context, path string) ([]string, []domain.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // header overlap, not equality, decides the schema

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []domain.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("%s line %d: %d fields but header has %d", path, line, len(record), len(header))
		}

		row := make(domain.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
