package domain

import (
	"strconv"
	"time"
)

// RawRecord is one item of an actor dataset, decoded from JSON. Its shape
// varies per actor and is not stable across runs.
type RawRecord map[string]any

// Platform identifies both the source network and the shape of its records.
type Platform string

const (
	PlatformInstagram     Platform = "instagram"
	PlatformTikTok        Platform = "tiktok"
	PlatformTwitter       Platform = "twitter"
	PlatformFacebookPosts Platform = "facebook_posts"
	PlatformFacebookPages Platform = "facebook_pages"
)

func (p Platform) String() string { return string(p) }

// ParsePlatform accepts the platform names used on the command line.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformInstagram, PlatformTikTok, PlatformTwitter, PlatformFacebookPosts, PlatformFacebookPages:
		return Platform(s), true
	}
	switch s {
	case "x":
		return PlatformTwitter, true
	case "facebook-posts":
		return PlatformFacebookPosts, true
	case "facebook-pages":
		return PlatformFacebookPages, true
	}
	return "", false
}

// CanonicalRecord is the fixed-shape row produced by reconciliation. Values
// holds a string or int64 for every column of the platform schema.
type CanonicalRecord struct {
	Platform Platform
	Values   map[string]any
	// PostedAt is nil when the source date was absent or unparseable.
	PostedAt *time.Time
}

// String returns the column as text; integers are formatted in base 10.
func (r CanonicalRecord) String(column string) string {
	switch v := r.Values[column].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// Int returns an integer column, or 0 for text columns.
func (r CanonicalRecord) Int(column string) int64 {
	if v, ok := r.Values[column].(int64); ok {
		return v
	}
	return 0
}

// Row renders the record in column order for delimited export.
func (r CanonicalRecord) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = r.String(col)
	}
	return row
}

// MatchResult is the outcome of keyword matching against a record's text.
type MatchResult struct {
	Labels []string
	Count  int
}

// ScoredRecord is an accepted record still carrying its ranking helper.
type ScoredRecord struct {
	Record     CanonicalRecord
	MatchCount int
}

// ResultTable is the ranked, export-ready output of one platform run.
type ResultTable struct {
	Platform Platform
	Columns  []string
	Records  []CanonicalRecord
}

func (t ResultTable) Len() int { return len(t.Records) }

// UnitContext describes the unit of work a raw batch came from.
type UnitContext struct {
	// Keyword is the label of the search term for search-driven actors.
	Keyword string
	// Organization is the configured page name for page-driven actors.
	Organization string
	// Pages lists the pages of a batched page-metadata call, used to map
	// each returned item back to its configured organization.
	Pages []Page
}
