package util

import (
	"log/slog"
	"time"
)

// Trace logs the elapsed time of a span. Usage: defer Trace("vectorize")().
func Trace(name string) func() {
	start := time.Now()
	return func() {
		slog.Info("trace", "span", name, "elapsed", time.Since(start))
	}
}
