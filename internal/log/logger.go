// Package log writes progress and diagnostics to a console stream and to
// <base>/logs/subprofiler.log.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the log file created inside the log directory.
const FileName = "subprofiler.log"

// Logger writes output to both a console stream and a log file.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	console io.Writer
	writer  io.Writer
}

// New creates a logger that writes to stdout and the log file.
func New(logDir string) (*Logger, error) {
	return NewWithConsole(logDir, os.Stdout)
}

// NewWithConsole creates a logger whose console output goes to console.
// The MCP server passes os.Stderr since stdout carries the protocol.
func NewWithConsole(logDir string, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:    file,
		console: console,
		writer:  io.MultiWriter(console, file),
	}, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...any) {
	l.write(l.writer, fmt.Sprintf(format, args...))
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...any) {
	l.write(l.writer, fmt.Sprintln(args...))
}

// Errorf writes a timestamped error line to stderr and the log file.
func (l *Logger) Errorf(format string, args ...any) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	formatted := fmt.Sprintf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	l.write(io.MultiWriter(os.Stderr, l.file), formatted)
}

func (l *Logger) write(w io.Writer, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(w, msg)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var globalLogger *Logger

// Init initializes the global logger writing to stdout.
func Init(logDir string) error {
	return InitWithConsole(logDir, os.Stdout)
}

// InitWithConsole initializes the global logger with a custom console
// stream. Go's standard log package is redirected to the log file.
func InitWithConsole(logDir string, console io.Writer) error {
	logger, err := NewWithConsole(logDir, console)
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...any) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...any) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...any) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		err := globalLogger.Close()
		globalLogger = nil
		stdlog.SetOutput(os.Stderr)
		return err
	}
	return nil
}
