package domain

import "fmt"

// FieldKind selects how a raw value is coerced into a canonical column.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	// KindList joins a sequence with ", ".
	KindList
	// KindFirst takes the first element of a sequence, or a scalar as is.
	KindFirst
	// KindFlag renders truthiness as "Sí" / "No".
	KindFlag
)

// Path addresses a possibly nested value, e.g. {"authorMeta", "name"}.
type Path []string

// Context keys a FieldSpec may fall back to.
const (
	ContextKeyword      = "keyword"
	ContextOrganization = "organization"
)

// FieldSpec is one row of a platform's fallback-lookup table.
type FieldSpec struct {
	Column string
	Kind   FieldKind
	// Candidates are tried in order; the first present, non-empty value wins.
	Candidates []Path
	// ItemKey projects mapping elements of a sequence before joining.
	ItemKey string
	// Derive computes the value from the whole record and takes precedence
	// over Candidates when it returns a non-empty value.
	Derive func(raw RawRecord) string
	// Context names a unit-context value used when nothing else is found.
	Context string
}

// Schema is the per-platform description of canonical output.
type Schema struct {
	Platform Platform
	Fields   []FieldSpec
	// DateCandidates locate the record's date; empty for undated records.
	DateCandidates []Path
	TextColumn     string
	DateColumn     string
	// MatchesColumn receives the ", "-joined matched keyword labels.
	MatchesColumn string
	// RequireText rejects records whose TextColumn is empty.
	RequireText bool
	// KeywordFilter enables the keyword step of the relevance pipeline.
	KeywordFilter bool
	// DedupeKey lists the columns identifying duplicate rows.
	DedupeKey []string
	// OrganizationColumn is filled by URL matching against UnitContext.Pages.
	OrganizationColumn string
	// URLColumns are raw fields matched against configured page URLs.
	URLColumns []string
}

// Columns returns the export header in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Field returns the spec for column.
func (s Schema) Field(column string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Column == column {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Validate checks that the role columns exist in the field list.
func (s Schema) Validate() error {
	for _, col := range []string{s.TextColumn, s.DateColumn, s.MatchesColumn, s.OrganizationColumn} {
		if col == "" {
			continue
		}
		if _, ok := s.Field(col); !ok {
			return fmt.Errorf("schema %s: unknown column %q", s.Platform, col)
		}
	}
	for _, col := range s.DedupeKey {
		if _, ok := s.Field(col); !ok {
			return fmt.Errorf("schema %s: unknown dedupe column %q", s.Platform, col)
		}
	}
	return nil
}
