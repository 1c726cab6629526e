// Package logging routes diagnostics to stderr and an optional log file.
// Stdout is never written to: when the server runs over stdio, stdout
// carries the JSON-RPC protocol stream and any stray byte corrupts it.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the standard logger at stderr, and additionally at logPath
// when it is non-empty. Parent directories are created as needed.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr-only output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// Infof logs an informational event.
func Infof(format string, args ...any) {
	log.Println("[INFO] " + fmt.Sprintf(format, args...))
}

// Errorf logs a failure. Errors are reported here, on the side channel,
// never inside a tool's returned text.
func Errorf(format string, args ...any) {
	log.Println("[ERROR] " + fmt.Sprintf(format, args...))
}
