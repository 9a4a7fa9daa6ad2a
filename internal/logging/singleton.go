package logging

import (
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger builds the process-wide logger from config.
func InitLogger(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = logger
	return nil
}

// GetGlobalLogger returns the process-wide logger. Before InitLogger is
// called it returns a no-op logger so packages can log unconditionally.
func GetGlobalLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return NewNop()
	}
	return instance
}

// SetGlobalLogger replaces the process-wide logger. Used by tests.
func SetGlobalLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = l
}
