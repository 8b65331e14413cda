package domain

// Lookup walks path through nested mappings. It reports false when a key is
// missing, a value is null, or an intermediate value is not a mapping.
func (r RawRecord) Lookup(path Path) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[key]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Map returns the nested mapping at key, if it has that shape.
func (r RawRecord) Map(key string) (RawRecord, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	m, ok := asMap(v)
	return RawRecord(m), ok
}

// Text returns the string at path, or "" if absent or not a string.
func (r RawRecord) Text(path ...string) string {
	v, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	default:
		return nil, false
	}
}
