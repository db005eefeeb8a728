package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"splitledger/internal/domain"
	"splitledger/internal/gateway"
	"splitledger/internal/logger"
	"splitledger/internal/usecase"
)

func main() {
	// Define command-line flags
	schemaDir := flag.String("schemas", "", "Directory of schema catalog YAML documents (required)")
	inputDir := flag.String("input", "", "Root directory of raw CSV exports; first-level subdirectories name the owner (required)")
	configPath := flag.String("config", "", "Path to the run config YAML (required)")
	merchantsPath := flag.String("merchants", "", "Optional merchant-name lookup YAML")
	ledgerOut := flag.String("ledger-out", "", "Optional path for the canonical ledger CSV")
	auditOut := flag.String("audit-out", "", "Optional path for the audit trail CSV")
	flag.Parse()

	log := logger.New()

	if *schemaDir == "" || *inputDir == "" || *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: flags -schemas, -input and -config are required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := gateway.LoadRunConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading run config")
	}

	ctx := logger.WithContext(context.Background(), log)

	// --- Dependency Injection (Wiring the application) ---
	// Manual wiring, the outermost layer first.
	catalogRepo := gateway.NewYAMLSchemaCatalogRepository()
	fileRepo := gateway.NewCSVFileRepository()
	merchantRepo := gateway.NewYAMLMerchantRepository()
	writer := gateway.NewCSVLedgerWriter()

	catalog, err := catalogRepo.LoadCatalog(ctx, *schemaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("loading schema catalog")
	}

	resolver := usecase.NewSchemaResolver(catalog)
	transformer := usecase.NewRowTransformer(cfg)
	consolidator := usecase.NewConsolidationUseCase(fileRepo, resolver, transformer, cfg, log)

	// --- Consolidate ---
	ledger, consolidation, err := consolidator.Consolidate(ctx, *inputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("consolidation failed")
	}

	// --- Clean, classify, allocate, reconcile ---
	if *merchantsPath != "" {
		lookup, err := merchantRepo.LoadMerchantLookup(ctx, *merchantsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading merchant lookup")
		}
		usecase.CleanDescriptions(ledger, lookup)
	}

	classifier := usecase.NewPatternClassifier()
	engine := usecase.NewAllocationEngine(cfg)
	allocated, err := usecase.AllocateLedger(ledger, classifier, engine)
	if err != nil {
		log.Fatal().Err(err).Msg("allocation failed")
	}

	reconciler := usecase.NewLedgerReconciler(cfg, log)
	audit, reconcileErr := reconciler.Reconcile(allocated)

	// --- Write outputs ---
	if *ledgerOut != "" {
		if err := writer.WriteLedger(ctx, *ledgerOut, ledger); err != nil {
			log.Fatal().Err(err).Msg("writing canonical ledger")
		}
	}
	if *auditOut != "" && len(audit) > 0 {
		if err := writer.WriteAuditTrail(ctx, *auditOut, audit); err != nil {
			log.Fatal().Err(err).Msg("writing audit trail")
		}
	}

	// --- Present the run summary ---
	summary := buildSummary(consolidation, audit, reconcileErr)
	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate run summary")
	}
	fmt.Println(string(output))

	if reconcileErr != nil {
		log.Fatal().Err(reconcileErr).Msg("integrity check failed")
	}
}

func buildSummary(consolidation *domain.ConsolidationSummary, audit []domain.AuditRow, reconcileErr error) domain.RunSummary {
	summary := domain.RunSummary{
		RunID:                uuid.NewString(),
		Consolidation:        *consolidation,
		AuditRowCount:        len(audit),
		IntegrityCheckPassed: reconcileErr == nil,
		NetEffectResidual:    usecase.NetResidual(audit).StringFixed(2),
	}
	if reconcileErr != nil {
		summary.IntegrityCheckMessage = reconcileErr.Error()
	}
	return summary
}
