package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"social-scraper/workers/scraper/domain"
)

type dateParser func(v any) (time.Time, bool)

// maxEpochSeconds rejects larger epoch values, such as milliseconds.
const maxEpochSeconds = 1e11

// dateParsers are tried in order; the first success wins.
var dateParsers = []dateParser{
	parseISO8601,
	parseEpochSeconds,
	parseAlternateLayouts,
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
}

var alternateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan 02 15:04:05 -0700 2006",
}

// ParseTimestamp tries every known date representation.
func ParseTimestamp(v any) (time.Time, bool) {
	for _, parse := range dateParsers {
		if t, ok := parse(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// PassesCutoff rejects records dated before cutoffYear. A date that cannot be
// parsed is accepted with a nil timestamp so that undated data is kept.
func PassesCutoff(raw any, cutoffYear int) (bool, *time.Time) {
	if raw == nil {
		return true, nil
	}
	t, ok := ParseTimestamp(raw)
	if !ok {
		return true, nil
	}
	if t.Year() < cutoffYear {
		return false, &t
	}
	return true, &t
}

// FormatTimestamp renders the exported date column. Unparsed string dates are
// kept verbatim.
func FormatTimestamp(raw any, parsed *time.Time) string {
	if parsed != nil {
		return parsed.Format(domain.TimestampLayout)
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

func parseISO8601(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseEpochSeconds(v any) (time.Time, bool) {
	var secs float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		secs = f
	case float64:
		secs = t
	case int:
		secs = float64(t)
	case int64:
		secs = float64(t)
	case string:
		if !isEpochString(t) {
			return time.Time{}, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return time.Time{}, false
		}
		secs = f
	default:
		return time.Time{}, false
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > maxEpochSeconds {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

// isEpochString accepts digit strings long enough to be a post-2001 epoch, so
// a bare year is not mistaken for a timestamp.
func isEpochString(s string) bool {
	if len(s) < 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseAlternateLayouts(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range alternateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
