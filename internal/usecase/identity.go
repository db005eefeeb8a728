package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"splitledger/internal/domain"
)

// Identify computes the transaction's deterministic identity hash over
// {date, amount, description, account, owner}. The data-source name is not
// part of the identity: the same real transaction reported by two aggregators
// must collide. Known limitation, accepted: two legitimately distinct
// transactions with identical identity fields (say, two same-day identical
// purchases) also collide.
func Identify(tx domain.CanonicalTransaction) domain.TxnID {
	fields := []string{
		tx.Date.Format(time.DateOnly),
		tx.Amount.StringFixed(2),
		normalizeIdentityText(tx.Description),
		normalizeIdentityText(tx.Account),
		normalizeIdentityText(tx.Owner),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return domain.TxnID(hex.EncodeToString(sum[:]))
}

func normalizeIdentityText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Dedupe groups transactions by TxnID and keeps exactly one survivor per
// group, chosen by the configured source-priority order. Sources not listed
// rank after every listed one, in first-seen order. Input order is preserved
// for survivors, which makes the operation idempotent: a second run over its
// own output removes nothing further.
func Dedupe(txs []domain.CanonicalTransaction, priority []string) ([]domain.CanonicalTransaction, domain.DedupStats) {
	rank := make(map[string]int, len(priority))
	for i, source := range priority {
		rank[strings.ToLower(source)] = i
	}
	sourceRank := func(source string) int {
		if r, ok := rank[strings.ToLower(source)]; ok {
			return r
		}
		return len(priority)
	}

	// First pass: pick the winning index for each identity group.
	winner := make(map[domain.TxnID]int, len(txs))
	for i, tx := range txs {
		prev, ok := winner[tx.ID]
		if !ok || sourceRank(tx.DataSource) < sourceRank(txs[prev].DataSource) {
			winner[tx.ID] = i
		}
	}

	stats := domain.DedupStats{RemovedByWinner: make(map[string]int)}
	survivors := make([]domain.CanonicalTransaction, 0, len(winner))
	for i, tx := range txs {
		if winner[tx.ID] == i {
			survivors = append(survivors, tx)
			continue
		}
		stats.DuplicatesRemoved++
		stats.RemovedByWinner[txs[winner[tx.ID]].DataSource]++
	}

	if stats.DuplicatesRemoved == 0 {
		stats.RemovedByWinner = nil
	}
	return survivors, stats
}
