// Package logger provides leveled logging to stderr. The pipeline uses
// it for its warn-and-continue paths, keeping stdout free for command
// output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu     sync.RWMutex
	level  = LevelInfo
	output io.Writer = os.Stderr
)

// SetLevel sets the minimum level that gets printed. Unknown names
// leave the level unchanged.
func SetLevel(name string) {
	mu.Lock()
	defer mu.Unlock()
	switch name {
	case "debug":
		level = LevelDebug
	case "info":
		level = LevelInfo
	case "warn":
		level = LevelWarn
	case "error":
		level = LevelError
	}
}

// SetOutput redirects log output. Defaults to os.Stderr; useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l >= level {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

func Debug(format string, args ...any) { logf(LevelDebug, "[DEBUG] ", format, args...) }

func Info(format string, args ...any) { logf(LevelInfo, "[INFO] ", format, args...) }

func Warn(format string, args ...any) { logf(LevelWarn, "[WARN] ", format, args...) }

func Error(format string, args ...any) { logf(LevelError, "[ERROR] ", format, args...) }
