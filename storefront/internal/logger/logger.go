package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	mu   sync.RWMutex
	log  zerolog.Logger
)

func setup(debug ...bool) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if len(debug) > 0 && debug[0] {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().
			Timestamp().
			Logger()
	})
}

// Get returns the storefront logger. It writes to stderr so that it never
// interleaves with the shell output on stdout.
func Get(debug ...bool) zerolog.Logger {
	setup(debug...)
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetOutput sends JSON log lines at level and above to w until the returned
// restore func is called.
func SetOutput(w io.Writer, level zerolog.Level) (restore func()) {
	setup()
	mu.Lock()
	prev := log
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
	mu.Unlock()
	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}
