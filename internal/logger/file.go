package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/combiner/internal/models"
)

// FileLogger writes a per-run log file into a log directory and keeps a
// latest.log symlink pointing at the most recent run.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed and opens
// run-YYYYMMDD-HHMMSS-<run>.log inside it. runID is written into the header
// and its first eight characters keep file names unique within a second.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	name := fmt.Sprintf("run-%s.log", stamp)
	if short := shortID(runID); short != "" {
		name = fmt.Sprintf("run-%s-%s.log", stamp, short)
	}
	runFile := filepath.Join(logDir, name)

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== Combiner Run Log ===\n")
	if runID != "" {
		logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	}
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

func shortID(runID string) string {
	id := strings.ReplaceAll(runID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// Path returns the run log file path
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSummary writes the run summary block at INFO level.
func (fl *FileLogger) LogSummary(report *models.Report) {
	if report == nil || !fl.shouldLog("info") {
		return
	}

	status := "SUCCESS"
	if report.Error != "" {
		status = "FAILED"
	}

	ts := timestamp()
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === RUN SUMMARY ===\n", ts)
	fmt.Fprintf(&b, "[%s] Output:       %s\n", ts, report.OutputPath)
	fmt.Fprintf(&b, "[%s] Included:     %d\n", ts, report.Included)
	fmt.Fprintf(&b, "[%s] Excluded:     %d\n", ts, report.Excluded)
	fmt.Fprintf(&b, "[%s] Skipped:      %d\n", ts, report.Skipped)
	fmt.Fprintf(&b, "[%s] Bytes:        %d\n", ts, report.TotalBytes)
	for _, dir := range report.MissingDirectories {
		fmt.Fprintf(&b, "[%s] Missing dir:  %s\n", ts, dir)
	}
	fmt.Fprintf(&b, "[%s] Duration:     %s\n", ts, formatDuration(report.Duration()))
	fmt.Fprintf(&b, "[%s] Status:       %s\n", ts, status)
	if report.Error != "" {
		fmt.Fprintf(&b, "[%s] Error:        %s\n", ts, report.Error)
	}

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
