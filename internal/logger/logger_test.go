package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/i18nxlsx-go/internal/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output respects level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, err := logger.New(&buf, "warn", "json")
		require.NoError(t, err)

		log.Info("hidden")
		log.Warn("shown", "language", "en")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "en", rec["language"])
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, err := logger.New(&buf, "DEBUG", "")
		require.NoError(t, err)
		log.Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Parallel()
		_, err := logger.New(&bytes.Buffer{}, "loud", "text")
		require.Error(t, err)
		_, err = logger.New(&bytes.Buffer{}, "info", "xml")
		require.Error(t, err)
	})
}

func TestWithRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(&buf, "info", "json")
	require.NoError(t, err)

	logger.WithRun(log, "export").Info("done")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "export", rec["command"])
	assert.Len(t, rec["run_id"], 36)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Error("dropped", "k", "v") })
}
