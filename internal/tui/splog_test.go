package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	t.Run("debug lines are suppressed by default", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		var buf bytes.Buffer
		splog, err := newSplog(&buf, "")
		require.NoError(t, err)

		splog.Info("merging %s", "feature")
		splog.Debug("git fetch origin %s", "feature")

		require.Contains(t, buf.String(), "merging feature")
		require.NotContains(t, buf.String(), "git fetch")
	})

	t.Run("SetDebug enables debug lines", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := newSplog(&buf, "")
		require.NoError(t, err)
		splog.SetDebug(true)

		splog.Debug("git fetch origin %s", "feature")

		require.Contains(t, buf.String(), "git fetch origin feature")
	})
}

func TestSplogFileLogging(t *testing.T) {
	t.Run("writes messages to the log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "cutover.log")
		var buf bytes.Buffer
		splog, err := newSplog(&buf, logPath)
		require.NoError(t, err)
		defer func() { require.NoError(t, splog.Close()) }()

		splog.Info("release v1.2.3 started")

		contents, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(contents), "release v1.2.3 started")
	})

	t.Run("debug lines reach the file even when console debug is off", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		logPath := filepath.Join(t.TempDir(), "cutover.log")
		var buf bytes.Buffer
		splog, err := newSplog(&buf, logPath)
		require.NoError(t, err)
		defer func() { require.NoError(t, splog.Close()) }()

		splog.Debug("git merge feature")

		contents, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(contents), "git merge feature")
		require.NotContains(t, buf.String(), "git merge feature")
	})

	t.Run("fails when the log directory cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

		_, err := newSplog(&bytes.Buffer{}, filepath.Join(blocker, "nested", "cutover.log"))
		require.Error(t, err)
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("honors CUTOVER_LOG_FILE", func(t *testing.T) {
		t.Setenv("CUTOVER_LOG_FILE", "/tmp/custom/cutover.log")
		require.Equal(t, "/tmp/custom/cutover.log", GetLogFilePath())
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		t.Setenv("CUTOVER_LOG_FILE", "")
		path := GetLogFilePath()
		require.True(t, strings.HasSuffix(path, filepath.Join(".cutover", "logs", "cutover.log")), path)
	})
}
