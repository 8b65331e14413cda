package services

import (
	"sort"
	"strings"

	"social-scraper/workers/scraper/domain"
)

// Finalize ranks accepted records by match count, then recency, removes
// duplicates keeping the best-ranked copy and applies limit when positive.
func Finalize(schema domain.Schema, accepted []domain.ScoredRecord, limit int) domain.ResultTable {
	ranked := make([]domain.ScoredRecord, len(accepted))
	copy(ranked, accepted)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchCount != b.MatchCount {
			return a.MatchCount > b.MatchCount
		}
		return newer(a.Record, b.Record)
	})

	table := domain.ResultTable{
		Platform: schema.Platform,
		Columns:  schema.Columns(),
		Records:  make([]domain.CanonicalRecord, 0, len(ranked)),
	}
	seen := make(map[string]bool, len(ranked))
	for _, s := range ranked {
		if key, ok := dedupeKey(s.Record, schema.DedupeKey); ok {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		table.Records = append(table.Records, s.Record)
		if limit > 0 && len(table.Records) == limit {
			break
		}
	}
	return table
}

// newer orders undated records after every dated one.
func newer(a, b domain.CanonicalRecord) bool {
	switch {
	case a.PostedAt == nil:
		return false
	case b.PostedAt == nil:
		return true
	default:
		return a.PostedAt.After(*b.PostedAt)
	}
}

// dedupeKey is false when the leading identity column is empty, so records
// without an id are never collapsed.
func dedupeKey(rec domain.CanonicalRecord, columns []string) (string, bool) {
	if len(columns) == 0 || rec.String(columns[0]) == "" {
		return "", false
	}
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = rec.String(col)
	}
	return strings.Join(parts, "\x1f"), true
}
