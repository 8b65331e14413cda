package services

import (
	"strings"

	"social-scraper/workers/scraper/domain"
)

// Match returns the labels of every keyword whose term occurs in text, in
// keyword-set order. Matching is a plain case-insensitive substring test.
func Match(text string, keywords domain.KeywordSet) domain.MatchResult {
	if text == "" {
		return domain.MatchResult{}
	}
	lower := strings.ToLower(text)
	var labels []string
	for _, kw := range keywords.Entries() {
		if strings.Contains(lower, kw.Term) {
			labels = append(labels, kw.Label)
		}
	}
	return domain.MatchResult{Labels: labels, Count: len(labels)}
}
