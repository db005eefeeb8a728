package domain

// SkippedFile records one input file excluded from the run and why.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// DedupStats summarizes cross-source duplicate removal. Dropped rows are
// counted, not silently discarded.
type DedupStats struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
	// RemovedByWinner counts dropped rows by the data source whose row survived.
	RemovedByWinner map[string]int `json:"removed_by_winner,omitempty"`
}

// ConsolidationSummary reports per-file outcomes of one consolidation run.
// Skipped means the file never matched a schema or could not be read; failed
// means a resolved schema choked on the file's rows. Both leave the batch
// running, but they point at different remedies.
type ConsolidationSummary struct {
	FilesProcessed int           `json:"files_processed"`
	FilesSkipped   int           `json:"files_skipped"`
	FilesFailed    int           `json:"files_failed"`
	SkippedFiles   []SkippedFile `json:"skipped_files,omitempty"`

	TransactionCount int        `json:"transaction_count"`
	Dedup            DedupStats `json:"dedup"`
}

// RunSummary is the top-level structure of the final run report.
type RunSummary struct {
	RunID string `json:"run_id"`

	Consolidation ConsolidationSummary `json:"consolidation"`

	AuditRowCount         int    `json:"audit_row_count"`
	IntegrityCheckPassed  bool   `json:"integrity_check_passed"`
	NetEffectResidual     string `json:"net_effect_residual"`
	IntegrityCheckMessage string `json:"integrity_check_message,omitempty"`
}
