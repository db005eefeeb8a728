package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"splitledger/internal/domain"
)

// ConsolidationUseCase drives schema resolution, row transformation, and
// cross-source deduplication over a file set, producing the canonical ledger.
type ConsolidationUseCase struct {
	files       TransactionFileRepository
	resolver    *SchemaResolver
	transformer *RowTransformer
	cfg         domain.RunConfig
	log         zerolog.Logger
}

// NewConsolidationUseCase wires the orchestrator's collaborators.
func NewConsolidationUseCase(files TransactionFileRepository, resolver *SchemaResolver, transformer *RowTransformer, cfg domain.RunConfig, log zerolog.Logger) *ConsolidationUseCase {
	return &ConsolidationUseCase{
		files:       files,
		resolver:    resolver,
		transformer: transformer,
		cfg:         cfg,
		log:         log,
	}
}

// Consolidate processes every CSV under root into one deduplicated ledger.
// One malformed file never aborts the batch: it is recorded with a reason and
// processing continues. Files matching no schema or unreadable count as
// skipped; files whose rows fail under a resolved schema count as failed.
// Deduplication runs globally after all
// files are read, since duplicates arise across source files, never within
// the resolver's view of a single one. In strict mode a schema that leaves
// required columns empty aborts the run instead.
func (uc *ConsolidationUseCase) Consolidate(ctx context.Context, root string) (domain.CanonicalLedger, *domain.ConsolidationSummary, error) {
	sources, err := uc.files.ListFiles(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("could not list transaction files: %w", err)
	}

	summary := &domain.ConsolidationSummary{}
	var all []domain.CanonicalTransaction

	for _, src := range sources {
		txs, err := uc.consolidateFile(ctx, src)
		if err != nil {
			var fatal *domain.FatalSchemaError
			if errors.As(err, &fatal) {
				return nil, nil, err
			}
			var rec *domain.RecoverableFileError
			if errors.As(err, &rec) && rec.Failed {
				uc.log.Warn().Str("file", src.Path).Err(err).Msg("file failed transformation")
				summary.FilesFailed++
			} else {
				uc.log.Warn().Str("file", src.Path).Err(err).Msg("skipping file")
				summary.FilesSkipped++
			}
			summary.SkippedFiles = append(summary.SkippedFiles, domain.SkippedFile{
				Path:   src.Path,
				Reason: err.Error(),
			})
			continue
		}
		uc.log.Info().Str("file", src.Path).Int("rows", len(txs)).Msg("processed file")
		summary.FilesProcessed++
		all = append(all, txs...)
	}

	for i := range all {
		all[i].ID = Identify(all[i])
	}

	deduped, stats := Dedupe(all, uc.cfg.SourcePriority)
	if stats.DuplicatesRemoved > 0 {
		uc.log.Info().
			Int("removed", stats.DuplicatesRemoved).
			Interface("by_winner", stats.RemovedByWinner).
			Msg("removed cross-source duplicates")
	}
	summary.Dedup = stats

	ledger := coerceLedger(deduped)
	summary.TransactionCount = len(ledger)
	return ledger, summary, nil
}

// consolidateFile resolves and transforms one file. Any failure is file-scoped.
func (uc *ConsolidationUseCase) consolidateFile(ctx context.Context, src domain.SourceFile) ([]domain.CanonicalTransaction, error) {
	header, rows, err := uc.files.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, &domain.RecoverableFileError{Path: src.Path, Reason: "unreadable", Err: err}
	}

	schema, err := uc.resolver.Resolve(src.Name, header)
	if err != nil {
		return nil, err
	}

	txs := make([]domain.CanonicalTransaction, 0, len(rows))
	for i, raw := range rows {
		tx, err := uc.transformer.Transform(raw, schema, src)
		if err != nil {
			return nil, &domain.RecoverableFileError{
				Path:   src.Path,
				Reason: fmt.Sprintf("row %d failed transformation under schema %s", i+1, schema.ID),
				Err:    err,
				Failed: true,
			}
		}
		if missing := MissingRequired(tx); len(missing) > 0 {
			if uc.cfg.Strict {
				return nil, &domain.FatalSchemaError{SchemaID: schema.ID, File: src.Path, Missing: missing}
			}
			return nil, &domain.RecoverableFileError{
				Path:   src.Path,
				Reason: fmt.Sprintf("schema %s left required columns empty: %v", schema.ID, missing),
				Failed: true,
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// coerceLedger normalizes each canonical column's representation so downstream
// consumers see one stable schema: money at cent precision, trimmed text,
// lowercased owners and sources.
func coerceLedger(txs []domain.CanonicalTransaction) domain.CanonicalLedger {
	ledger := make(domain.CanonicalLedger, len(txs))
	for i, tx := range txs {
		tx.Amount = tx.Amount.Round(2)
		tx.Category = collapseSpace(tx.Category)
		tx.Description = collapseSpace(tx.Description)
		tx.Account = collapseSpace(tx.Account)
		tx.Owner = lowerTrim(tx.Owner)
		tx.DataSource = collapseSpace(tx.DataSource)
		if tx.SplitPercent != nil {
			rounded := tx.SplitPercent.Round(2)
			tx.SplitPercent = &rounded
		}
		ledger[i] = tx
	}
	return ledger
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
