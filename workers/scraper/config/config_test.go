package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scraper/workers/scraper/domain"
)

func TestLoad(t *testing.T) {
	t.Setenv("APIFY_API_TOKEN", "token")
	t.Setenv("MAX_RESULTS_PER_KEYWORD", "25")
	t.Setenv("UNIT_PAUSE", "500ms")
	t.Setenv("CONCURRENCY", "0")
	t.Setenv("WRITER_QUEUE_URL", "http://writer")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.APIToken)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.MaxResultsPerKeyword)
	assert.Equal(t, 1000, cfg.ResultsLimit)
	assert.Equal(t, 10, cfg.KeywordLimit)
	assert.Equal(t, 2025, cfg.CutoffYear)
	assert.Equal(t, 500*time.Millisecond, cfg.UnitPause)
	assert.Equal(t, 5*time.Second, cfg.BatchPause)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.True(t, cfg.AWSEnabled())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("APIFY_API_TOKEN", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "APIFY_API_TOKEN is required")
}

func TestLoad_NoSinks(t *testing.T) {
	t.Setenv("APIFY_API_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AWSEnabled())
}

func TestLoadKeywords(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		kw, err := LoadKeywords("")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultKeywords, kw.Main)
		assert.Equal(t, domain.DefaultControlKeywords, kw.Control)
	})

	t.Run("file overrides main only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keywords.yaml")
		content := "main:\n  - label: aborto\n    search: \"#aborto\"\n  - label: ile\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		kw, err := LoadKeywords(path)
		require.NoError(t, err)
		require.Len(t, kw.Main, 2)
		assert.Equal(t, "#aborto", kw.Main[0].Search)
		assert.Equal(t, "ile", kw.Main[1].Label)
		assert.Equal(t, domain.DefaultControlKeywords, kw.Control)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})
}

func TestLoadPages(t *testing.T) {
	pages, err := LoadPages("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPages, pages)

	dir := t.TempDir()
	good := filepath.Join(dir, "pages.yaml")
	require.NoError(t, os.WriteFile(good, []byte("pages:\n  - name: GIRE\n    url: https://www.facebook.com/gire\n"), 0o644))
	pages, err = LoadPages(good)
	require.NoError(t, err)
	assert.Equal(t, []domain.Page{{Name: "GIRE", URL: "https://www.facebook.com/gire"}}, pages)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pages:\n  - name: GIRE\n"), 0o644))
	_, err = LoadPages(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("pages: []\n"), 0o644))
	_, err = LoadPages(empty)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("pages: [\n"), 0o644))
	_, err = LoadPages(broken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
