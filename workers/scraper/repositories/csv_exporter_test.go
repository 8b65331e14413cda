package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scraper/workers/scraper/domain"
)

func TestCSVExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	exporter := NewCSVExporter(dir)

	table := domain.ResultTable{
		Platform: domain.PlatformFacebookPosts,
		Columns:  []string{"post_id", "texto", "likes"},
		Records: []domain.CanonicalRecord{
			{Values: map[string]any{"post_id": "1", "texto": "hola, \"mundo\"", "likes": int64(3)}},
			{Values: map[string]any{"post_id": "2", "texto": "sí", "likes": int64(0)}},
		},
	}

	path, err := exporter.Export(table, "facebook_posts_data.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "facebook_posts_data.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "\xEF\xBB\xBF" +
		"post_id,texto,likes\n" +
		"1,\"hola, \"\"mundo\"\"\",3\n" +
		"2,sí,0\n"
	assert.Equal(t, expected, string(data))
}

func TestCSVExporter_EmptyTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	exporter := NewCSVExporter(dir)

	path, err := exporter.Export(domain.ResultTable{Columns: []string{"a"}}, "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
