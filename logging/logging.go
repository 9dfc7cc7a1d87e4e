package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes leveled lines to stderr and to a timestamped log file in
// a "<name>_logs" directory next to the executable. Safe for concurrent
// use from batch workers.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    io.Writer
	closer  io.Closer
}

// New creates the log directory (if needed) and opens a fresh log file
// named <name>_<HH_MM_DD_MM_YYYY>.log. Call Close when done.
func New(name string) (*Logger, error) {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	logDir := filepath.Join(dir, name+"_logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	stamp := time.Now().Format("15_04_02_01_2006")
	path := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", name, stamp))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{console: os.Stderr, file: f, closer: f}, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	out := ts + " [" + level + "]: " + text + "\n"
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console != nil {
		_, _ = io.WriteString(l.console, out)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, out)
	}
}

// Infof logs at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.line("INFO", fmt.Sprintf(format, args...))
}

// Warnf logs at WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.line("WARN", fmt.Sprintf(format, args...))
}

// Errorf logs at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.line("ERROR", fmt.Sprintf(format, args...))
}
