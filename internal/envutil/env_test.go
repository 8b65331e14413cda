package envutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SCRAPER_FOO", "")
	assert.Equal(t, "bar", GetEnv("SCRAPER_FOO", "bar"))
	t.Setenv("SCRAPER_FOO", "  baz ")
	assert.Equal(t, "baz", GetEnv("SCRAPER_FOO", "bar"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SCRAPER_NUM", "")
	assert.Equal(t, 42, GetEnvInt("SCRAPER_NUM", 42))
	t.Setenv("SCRAPER_NUM", "100")
	assert.Equal(t, 100, GetEnvInt("SCRAPER_NUM", 42))
	t.Setenv("SCRAPER_NUM", "notint")
	assert.Equal(t, 7, GetEnvInt("SCRAPER_NUM", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SCRAPER_FLAG", "")
	assert.True(t, GetEnvBool("SCRAPER_FLAG", true))
	t.Setenv("SCRAPER_FLAG", "false")
	assert.False(t, GetEnvBool("SCRAPER_FLAG", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SCRAPER_PAUSE", "")
	assert.Equal(t, 2*time.Second, GetEnvDuration("SCRAPER_PAUSE", 2*time.Second))
	t.Setenv("SCRAPER_PAUSE", "500ms")
	assert.Equal(t, 500*time.Millisecond, GetEnvDuration("SCRAPER_PAUSE", 2*time.Second))
	t.Setenv("SCRAPER_PAUSE", "5")
	assert.Equal(t, 5*time.Second, GetEnvDuration("SCRAPER_PAUSE", 2*time.Second))
	t.Setenv("SCRAPER_PAUSE", "soon")
	assert.Equal(t, time.Second, GetEnvDuration("SCRAPER_PAUSE", time.Second))
}

func TestLoadEnv_DoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCRAPER_DOTENV=from-file\nSCRAPER_KEEP=from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	t.Setenv("SCRAPER_KEEP", "from-process")
	os.Unsetenv("SCRAPER_DOTENV")
	defer os.Unsetenv("SCRAPER_DOTENV")

	LoadEnv(nil)

	assert.Equal(t, "from-file", os.Getenv("SCRAPER_DOTENV"))
	assert.Equal(t, "from-process", os.Getenv("SCRAPER_KEEP"))
}
