package services

import (
	"fmt"
	"strings"

	"social-scraper/workers/scraper/domain"
)

// Outcome is the terminal state of one raw record in the pipeline.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRejectedNoText
	OutcomeRejectedStale
	OutcomeRejectedNoMatch
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedNoText:
		return "rejected_no_text"
	case OutcomeRejectedStale:
		return "rejected_stale"
	case OutcomeRejectedNoMatch:
		return "rejected_no_match"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BatchResult is what ProcessBatch hands back for one unit of work.
type BatchResult struct {
	Accepted []domain.ScoredRecord
	Counts   map[Outcome]int
	// Errors holds one entry per FAILED record.
	Errors []error
}

// Pipeline runs reconcile, date check and keyword check for one platform.
type Pipeline struct {
	schema        domain.Schema
	keywords      domain.KeywordSet
	keywordFilter bool
	cutoffYear    int
}

type PipelineOption func(*Pipeline)

// WithKeywordFilter overrides the schema's keyword filter toggle.
func WithKeywordFilter(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.keywordFilter = enabled
	}
}

func WithCutoffYear(year int) PipelineOption {
	return func(p *Pipeline) {
		p.cutoffYear = year
	}
}

func NewPipeline(schema domain.Schema, keywords domain.KeywordSet, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		schema:        schema,
		keywords:      keywords,
		keywordFilter: schema.KeywordFilter,
		cutoffYear:    domain.DefaultCutoffYear,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Schema() domain.Schema { return p.schema }

// ProcessBatch runs every record through the pipeline. A failure in one record
// never affects its siblings.
func (p *Pipeline) ProcessBatch(raws []domain.RawRecord, unit domain.UnitContext) BatchResult {
	result := BatchResult{Counts: make(map[Outcome]int)}
	for i, raw := range raws {
		scored, outcome, err := p.Process(raw, unit)
		result.Counts[outcome]++
		switch outcome {
		case OutcomeAccepted:
			result.Accepted = append(result.Accepted, scored)
		case OutcomeFailed:
			result.Errors = append(result.Errors, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return result
}

// Process classifies a single raw record.
func (p *Pipeline) Process(raw domain.RawRecord, unit domain.UnitContext) (scored domain.ScoredRecord, outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			scored = domain.ScoredRecord{}
			outcome = OutcomeFailed
			err = fmt.Errorf("panic while processing record: %v", r)
		}
	}()

	rec := Reconcile(raw, p.schema)
	p.stampContext(&rec, raw, unit)

	if p.schema.RequireText && rec.String(p.schema.TextColumn) == "" {
		return domain.ScoredRecord{}, OutcomeRejectedNoText, nil
	}

	if p.schema.DateColumn != "" {
		rawDate := firstPresent(raw, p.schema.DateCandidates)
		ok, ts := PassesCutoff(rawDate, p.cutoffYear)
		if !ok {
			return domain.ScoredRecord{}, OutcomeRejectedStale, nil
		}
		rec.PostedAt = ts
		rec.Values[p.schema.DateColumn] = FormatTimestamp(rawDate, ts)
	}

	matchCount := 0
	if p.keywordFilter {
		m := Match(rec.String(p.schema.TextColumn), p.keywords)
		if m.Count == 0 {
			return domain.ScoredRecord{}, OutcomeRejectedNoMatch, nil
		}
		matchCount = m.Count
		if p.schema.MatchesColumn != "" {
			rec.Values[p.schema.MatchesColumn] = strings.Join(m.Labels, domain.ListSeparator)
		}
	}

	return domain.ScoredRecord{Record: rec, MatchCount: matchCount}, OutcomeAccepted, nil
}

func (p *Pipeline) stampContext(rec *domain.CanonicalRecord, raw domain.RawRecord, unit domain.UnitContext) {
	if col := p.schema.OrganizationColumn; col != "" && rec.String(col) == "" {
		if org := resolveOrganization(raw, p.schema.URLColumns, unit); org != "" {
			rec.Values[col] = org
		}
	}
	for _, f := range p.schema.Fields {
		if f.Context == "" || rec.String(f.Column) != "" {
			continue
		}
		switch f.Context {
		case domain.ContextKeyword:
			rec.Values[f.Column] = unit.Keyword
		case domain.ContextOrganization:
			rec.Values[f.Column] = unit.Organization
		}
	}
}

// resolveOrganization maps a page-metadata item back to its configured page by
// URL containment, falling back to the unit's own organization.
func resolveOrganization(raw domain.RawRecord, urlColumns []string, unit domain.UnitContext) string {
	for _, page := range unit.Pages {
		if page.URL == "" {
			continue
		}
		for _, col := range urlColumns {
			if strings.Contains(raw.Text(col), page.URL) {
				return page.Name
			}
		}
	}
	return unit.Organization
}

func firstPresent(raw domain.RawRecord, candidates []domain.Path) any {
	for _, path := range candidates {
		if v, ok := raw.Lookup(path); ok && !isEmpty(v) {
			return v
		}
	}
	return nil
}
