package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"iso zulu", "2025-03-01T10:00:00.000Z", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"iso offset", "2025-03-01T10:00:00+02:00", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"iso basic offset", "2025-03-01T10:00:00-0500", time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)},
		{"iso basic offset fraction", "2025-03-01T10:00:00.250+0000", time.Date(2025, 3, 1, 10, 0, 0, 250e6, time.UTC)},
		{"iso naive", "2025-03-01T10:00:00", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"epoch number", json.Number("1740823200"), time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"epoch float", float64(1740823200), time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"epoch string", "1740823200", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"space layout", "2025-03-01 10:00:00", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", "2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"twitter legacy", "Sat Mar 01 10:00:00 +0000 2025", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestamp_Unparseable(t *testing.T) {
	for _, in := range []any{"hace 3 horas", "2025", true, map[string]any{}, json.Number("1735689600000"), "1735689600000", float64(1735689600000)} {
		_, ok := ParseTimestamp(in)
		assert.False(t, ok, "%v", in)
	}
}

func TestPassesCutoff(t *testing.T) {
	ok, ts := PassesCutoff("2025-03-01 10:00:00", 2025)
	assert.True(t, ok)
	require.NotNil(t, ts)
	assert.Equal(t, 2025, ts.Year())

	ok, ts = PassesCutoff("2024-12-31 23:59:59", 2025)
	assert.False(t, ok)
	assert.NotNil(t, ts)

	ok, ts = PassesCutoff("2024-06-01T10:00:00+0000", 2025)
	assert.False(t, ok)
	require.NotNil(t, ts)
	assert.Equal(t, 2024, ts.Year())

	ok, ts = PassesCutoff(json.Number("1735689600000"), 2025)
	assert.True(t, ok)
	assert.Nil(t, ts)

	ok, ts = PassesCutoff("ayer", 2025)
	assert.True(t, ok)
	assert.Nil(t, ts)

	ok, ts = PassesCutoff(nil, 2025)
	assert.True(t, ok)
	assert.Nil(t, ts)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01 10:00:00", FormatTimestamp("2025-03-01T10:00:00Z", &ts))
	assert.Equal(t, "ayer", FormatTimestamp("ayer", nil))
	assert.Equal(t, "", FormatTimestamp(nil, nil))
}
