package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scraper/workers/scraper/domain"
)

func testKeywords() domain.KeywordSet {
	return domain.NewKeywordSet([]domain.Keyword{
		{Label: "aborto", Search: "#aborto"},
		{Label: "marea verde", Search: "marea verde"},
		{Label: "ile", Search: "#ILE"},
	})
}

func TestPipeline_FacebookPostAccepted(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformFacebookPosts), testKeywords())
	raw := domain.RawRecord{"id": "1", "text": "apoyo al aborto legal", "time": "2025-03-01 10:00:00"}

	scored, outcome, err := p.Process(raw, domain.UnitContext{Organization: "GIRE"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 1, scored.MatchCount)

	rec := scored.Record
	assert.Equal(t, "1", rec.String("post_id"))
	assert.Equal(t, "GIRE", rec.String("organization_name"))
	assert.Equal(t, "GIRE", rec.String("page_name"))
	assert.Equal(t, "apoyo al aborto legal", rec.String("texto"))
	assert.Equal(t, "2025-03-01 10:00:00", rec.String("fecha"))
	assert.Equal(t, "aborto", rec.String("keywords_matched"))
	require.NotNil(t, rec.PostedAt)
}

func TestPipeline_Rejections(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformFacebookPosts), testKeywords())

	tests := []struct {
		name string
		raw  domain.RawRecord
		want Outcome
	}{
		{"stale", domain.RawRecord{"id": "1", "text": "apoyo al aborto legal", "time": "2024-12-31 23:59:59"}, OutcomeRejectedStale},
		{"no text", domain.RawRecord{"id": "2", "time": "2025-03-01 10:00:00"}, OutcomeRejectedNoText},
		{"no match", domain.RawRecord{"id": "3", "text": "receta de tamales", "time": "2025-03-01"}, OutcomeRejectedNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome, err := p.Process(tt.raw, domain.UnitContext{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestPipeline_UnparseableDateIsKept(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformFacebookPosts), testKeywords())

	scored, outcome, err := p.Process(domain.RawRecord{"id": "9", "text": "marea verde", "date": "hace 2 días"}, domain.UnitContext{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.Nil(t, scored.Record.PostedAt)
	assert.Equal(t, "hace 2 días", scored.Record.String("fecha"))
}

func TestPipeline_SearchPlatformStampsKeyword(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformInstagram), testKeywords())
	raw := domain.RawRecord{"id": "ig1", "caption": "sin hashtags", "timestamp": "2025-05-01T12:00:00.000Z"}

	scored, outcome, err := p.Process(raw, domain.UnitContext{Keyword: "aborto"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome, "search platforms are not keyword filtered by default")
	assert.Equal(t, 0, scored.MatchCount)
	assert.Equal(t, "aborto", scored.Record.String("keyword"))
	assert.Equal(t, "", scored.Record.String("hashtags"))
	assert.Equal(t, "2025-05-01 12:00:00", scored.Record.String("fecha"))
}

func TestPipeline_SearchKeywordFilterEnabled(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformTwitter), testKeywords(), WithKeywordFilter(true))

	_, outcome, err := p.Process(domain.RawRecord{"id_str": "1", "full_text": "nada que ver"}, domain.UnitContext{Keyword: "aborto"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejectedNoMatch, outcome)

	scored, outcome, err := p.Process(domain.RawRecord{"id_str": "2", "full_text": "#ILE y aborto"}, domain.UnitContext{Keyword: "aborto"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 2, scored.MatchCount)
}

func TestPipeline_CutoffYearOption(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformTikTok), testKeywords(), WithCutoffYear(2020))

	_, outcome, err := p.Process(domain.RawRecord{"id": "v", "createTimeISO": "2023-06-01T00:00:00Z"}, domain.UnitContext{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
}

func TestPipeline_PagesResolveOrganizationByURL(t *testing.T) {
	p := NewPipeline(schemaFor(t, domain.PlatformFacebookPages), domain.KeywordSet{})
	unit := domain.UnitContext{Pages: []domain.Page{
		{Name: "GIRE", URL: "https://www.facebook.com/gire"},
		{Name: "Luchadoras", URL: "https://www.facebook.com/LuchadorasMX"},
	}}

	scored, outcome, err := p.Process(domain.RawRecord{
		"title":       "Luchadoras MX",
		"facebookUrl": "https://www.facebook.com/LuchadorasMX/",
	}, unit)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, "Luchadoras", scored.Record.String("nombre_organizacion"))
	assert.Equal(t, "", scored.Record.String("fecha"))

	scored, _, _ = p.Process(domain.RawRecord{"title": "Otra", "pageUrl": "https://www.facebook.com/otra"}, unit)
	assert.Equal(t, "", scored.Record.String("nombre_organizacion"))
}

func TestPipeline_PanicIsIsolated(t *testing.T) {
	schema := schemaFor(t, domain.PlatformInstagram)
	schema.Fields = append(schema.Fields, domain.FieldSpec{
		Column: "boom",
		Derive: func(raw domain.RawRecord) string {
			if raw["explode"] == true {
				panic("bad record")
			}
			return ""
		},
	})
	p := NewPipeline(schema, testKeywords())

	res := p.ProcessBatch([]domain.RawRecord{
		{"id": "1", "timestamp": "2025-01-02T00:00:00Z"},
		{"id": "2", "explode": true},
		{"id": "3", "timestamp": "2019-01-02T00:00:00Z"},
		{"id": "4"},
	}, domain.UnitContext{Keyword: "aborto"})

	assert.Len(t, res.Accepted, 2)
	assert.Equal(t, 2, res.Counts[OutcomeAccepted])
	assert.Equal(t, 1, res.Counts[OutcomeFailed])
	assert.Equal(t, 1, res.Counts[OutcomeRejectedStale])
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Error(), "record 1")
	assert.Contains(t, res.Errors[0].Error(), "bad record")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "accepted", OutcomeAccepted.String())
	assert.Equal(t, "rejected_stale", OutcomeRejectedStale.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
