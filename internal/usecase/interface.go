package usecase

import (
	"context"

	"splitledger/internal/domain"
)

// The usecase layer depends on these interfaces, never on the concrete
// gateway implementations.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_usecase -source=interface.go

// SchemaCatalogRepository loads the schema catalog once at startup.
type SchemaCatalogRepository interface {
	LoadCatalog(ctx context.Context, dir string) (*domain.SchemaCatalog, error)
}

// TransactionFileRepository discovers and reads raw transaction export files.
type TransactionFileRepository interface {
	ListFiles(ctx context.Context, root string) ([]domain.SourceFile, error)
	ReadFile(ctx context.Context, path string) (header []string, rows []domain.RawRow, err error)
}

// MerchantRepository loads the merchant-name lookup table.
type MerchantRepository interface {
	LoadMerchantLookup(ctx context.Context, path string) (domain.MerchantLookup, error)
}
