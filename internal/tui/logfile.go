package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If CUTOVER_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.cutover/logs/cutover.log
func GetLogFilePath() string {
	if customPath := os.Getenv("CUTOVER_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "cutover.log"
	}

	return filepath.Join(homeDir, ".cutover", "logs", "cutover.log")
}
