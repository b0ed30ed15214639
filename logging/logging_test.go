package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambeau/unitconv/config"
)

func TestNewTextToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closeFn, err := New(config.LoggingConfig{Level: "warn", Format: "text", Output: "stderr"}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("history not saved")
	require.NoError(t, closeFn())

	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "history not saved")
}

func TestNewJSONToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closeFn, err := New(config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Debug("converted")
	require.NoError(t, closeFn())

	line := strings.TrimSpace(stdout.String())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "converted", decoded["msg"])
	assert.Equal(t, "debug", decoded["level"])
	assert.Empty(t, stderr.String())
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "unitconv.log")
	logger, closeFn, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: path}, nil, nil)
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewInvalid(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "loud", Format: "text"}, nil, nil)
	assert.Error(t, err)

	_, _, err = New(config.LoggingConfig{Level: "info", Format: "xml"}, nil, nil)
	assert.Error(t, err)
}
