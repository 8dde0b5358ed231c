// Package logging is the diagnostic channel: category-based file logging
// under the journal base path, enabled only when debug mode is on. Swallowed
// persistence and API failures land here instead of on the user's terminal.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Category selects the log file a message is written to.
type Category string

const (
	CategoryStore  Category = "store"
	CategoryAPI    Category = "api"
	CategorySync   Category = "sync"
	CategoryServer Category = "server"
)

var (
	mu      sync.Mutex
	loggers = make(map[Category]*log.Logger)
	logsDir string
	enabled bool
)

// Initialize points the diagnostic channel at basePath/logs. When debug is
// false every call below is a silent no-op.
func Initialize(basePath string, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = debug
	logsDir = filepath.Join(basePath, "logs")
	loggers = make(map[Category]*log.Logger)
}

func get(cat Category) *log.Logger {
	if l, ok := loggers[cat]; ok {
		return l
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logsDir, string(cat)+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	l := log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	loggers[cat] = l
	return l
}

func write(cat Category, level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || logsDir == "" {
		return
	}
	l := get(cat)
	if l == nil {
		return
	}
	l.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Debugf records a diagnostic detail.
func Debugf(cat Category, format string, args ...interface{}) {
	write(cat, "DEBUG", format, args...)
}

// Errorf records a swallowed failure.
func Errorf(cat Category, format string, args ...interface{}) {
	write(cat, "ERROR", format, args...)
}
