// Package logger provides console diagnostics for the patristic pipeline.
// Debug, Info, Warn and Section only print when verbose mode is enabled via
// the --verbose flag. Print and Error always print: they carry the
// diagnostics a run must always show (the executed query, failed batches,
// the elapsed time).
//
// The package-level functions write through a process-wide Logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes prefixed lines to an output writer.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	out     io.Writer
}

// New creates a quiet logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{out: out}
}

var std = New(os.Stderr)

// Default returns the process-wide logger.
func Default() *Logger {
	return std
}

// SetVerbose enables or disables the verbose-only levels.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput replaces the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Output returns the current output writer.
func (l *Logger) Output() io.Writer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.out
}

// write prints one line. Lines are written whole under the lock.
func (l *Logger) write(verboseOnly bool, prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if verboseOnly && !l.verbose {
		return
	}
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) { l.write(true, "[DEBUG] ", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) { l.write(true, "[INFO] ", format, args...) }

// Warn prints a warning if verbose mode is enabled.
func (l *Logger) Warn(format string, args ...any) { l.write(true, "[WARN] ", format, args...) }

// Section prints a stage header if verbose mode is enabled.
func (l *Logger) Section(name string) { l.write(true, "\n=== ", "%s ===", name) }

// Print prints a message regardless of verbose mode.
func (l *Logger) Print(format string, args ...any) { l.write(false, "", format, args...) }

// Error prints an error message regardless of verbose mode.
func (l *Logger) Error(format string, args ...any) { l.write(false, "[ERROR] ", format, args...) }

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) { std.SetVerbose(v) }

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool { return std.IsVerbose() }

// SetOutput sets the output writer for logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Output returns the current output writer.
func Output() io.Writer { return std.Output() }

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { std.Debug(format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) { std.Section(name) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { std.Info(format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { std.Warn(format, args...) }

// Print prints a message regardless of verbose mode.
func Print(format string, args ...any) { std.Print(format, args...) }

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) { std.Error(format, args...) }
