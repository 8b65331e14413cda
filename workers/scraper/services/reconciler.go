package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"social-scraper/workers/scraper/domain"
)

// Reconcile maps a raw actor item onto the platform's canonical columns.
// It never fails: a missing or malformed value yields the column default.
func Reconcile(raw domain.RawRecord, schema domain.Schema) domain.CanonicalRecord {
	rec := domain.CanonicalRecord{
		Platform: schema.Platform,
		Values:   make(map[string]any, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		rec.Values[f.Column] = reconcileField(raw, f)
	}
	return rec
}

func reconcileField(raw domain.RawRecord, f domain.FieldSpec) any {
	if f.Derive != nil {
		if v := f.Derive(raw); v != "" {
			return coerce(v, f)
		}
	}
	for _, path := range f.Candidates {
		v, ok := raw.Lookup(path)
		if !ok || isEmpty(v) {
			continue
		}
		return coerce(v, f)
	}
	return defaultFor(f.Kind)
}

func defaultFor(kind domain.FieldKind) any {
	switch kind {
	case domain.KindInt:
		return int64(0)
	case domain.KindFlag:
		return domain.FlagNo
	default:
		return ""
	}
}

func coerce(v any, f domain.FieldSpec) any {
	switch f.Kind {
	case domain.KindInt:
		return toInt64(v)
	case domain.KindList:
		return joinList(v, f.ItemKey)
	case domain.KindFirst:
		if items, ok := v.([]any); ok {
			if len(items) == 0 {
				return ""
			}
			return projectItem(items[0], f.ItemKey)
		}
		return toString(v)
	case domain.KindFlag:
		if isEmpty(v) {
			return domain.FlagNo
		}
		return domain.FlagYes
	default:
		return toString(v)
	}
}

// isEmpty reports whether v should fall through to the next candidate.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func joinList(v any, itemKey string) string {
	var parts []string
	switch t := v.(type) {
	case []any:
		parts = make([]string, 0, len(t))
		for _, item := range t {
			if s := projectItem(item, itemKey); s != "" {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = t
	default:
		return ""
	}
	return strings.Join(parts, domain.ListSeparator)
}

func projectItem(item any, itemKey string) string {
	if m, ok := item.(map[string]any); ok {
		if itemKey == "" {
			return ""
		}
		return toString(m[itemKey])
	}
	return toString(item)
}
