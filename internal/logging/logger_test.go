package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithService_StampsService(t *testing.T) {
	l := NewLoggerWithService("scraper")
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithField("k", "v").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scraper", entry["service"])
	assert.Equal(t, "v", entry["k"])
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, LevelFromEnv())
	t.Setenv("LOG_LEVEL", "WARN")
	assert.Equal(t, logrus.WarnLevel, LevelFromEnv())
	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, logrus.ErrorLevel, LevelFromEnv())
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())
}
