// Package logging provides categorized file-based debug logging for
// AdvisorDesk. Logs are written to .advisordesk/logs/ with one file per
// category per day. Logging is opt-in: until Initialize enables debug mode,
// every call is a silent no-op, so the pure analysis packages can log freely
// without dragging I/O into production paths.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category names a logging stream.
type Category string

const (
	CategoryBoot         Category = "boot"         // Startup and config
	CategorySession      Category = "session"      // Transcript and focus changes
	CategoryPerception   Category = "perception"   // Utterance -> command transduction
	CategoryArticulation Category = "articulation" // Reply -> segment parsing
)

// Options controls logger behavior. The zero value disables all logging.
type Options struct {
	DebugMode  bool
	Level      string          // debug, info, warn, error
	Categories map[string]bool // nil means all categories enabled
}

// Log levels.
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// Logger writes one category's stream. A Logger with a nil inner logger is
// a no-op.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu       sync.RWMutex
	loggers  = map[Category]*Logger{}
	logsDir  string
	opts     Options
	logLevel int
)

// Initialize sets up the logging directory under the given workspace and
// applies options. Safe to call more than once; later calls replace the
// options and reset open streams.
func Initialize(workspace string, o Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeAllLocked()
	opts = o
	logLevel = parseLevel(o.Level)

	if !o.DebugMode {
		logsDir = ""
		return nil
	}
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	logsDir = filepath.Join(workspace, ".advisordesk", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	return nil
}

func parseLevel(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// IsDebugMode reports whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

func categoryEnabled(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, ok := opts.Categories[string(category)]
	if !ok {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. Disabled categories
// get a no-op logger.
func Get(category Category) *Logger {
	mu.RLock()
	if !categoryEnabled(category) || logsDir == "" {
		mu.RUnlock()
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// CloseAll closes every open log file. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	closeAllLocked()
}

func closeAllLocked() {
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = map[Category]*Logger{}
}

func (l *Logger) printf(minLevel int, tag, format string, args ...interface{}) {
	if l.logger == nil || logLevel > minLevel {
		return
	}
	l.logger.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(levelDebug, "DEBUG", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(levelInfo, "INFO", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(levelWarn, "WARN", format, args...)
}

// Error logs unconditionally (when the logger exists).
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(levelError, "ERROR", format, args...)
}

// Convenience helpers; all are no-ops unless the category is enabled.

func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

func Session(format string, args ...interface{}) {
	Get(CategorySession).Info(format, args...)
}

func SessionDebug(format string, args ...interface{}) {
	Get(CategorySession).Debug(format, args...)
}

func Perception(format string, args ...interface{}) {
	Get(CategoryPerception).Info(format, args...)
}

func PerceptionDebug(format string, args ...interface{}) {
	Get(CategoryPerception).Debug(format, args...)
}

func Articulation(format string, args ...interface{}) {
	Get(CategoryArticulation).Info(format, args...)
}

func ArticulationDebug(format string, args ...interface{}) {
	Get(CategoryArticulation).Debug(format, args...)
}

func ArticulationWarn(format string, args ...interface{}) {
	Get(CategoryArticulation).Warn(format, args...)
}
