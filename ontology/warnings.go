package ontology

import (
	"fmt"
	"log/slog"
)

// Warnings collects recoverable conditions encountered during a run. The
// list is ordered and append-only; nothing is ever removed, and a warning
// never interrupts rendering of other terms.
type Warnings struct {
	logger *slog.Logger
	list   []string
	seen   map[string]bool
}

// NewWarnings creates a collector. A nil logger falls back to slog.Default.
func NewWarnings(logger *slog.Logger) *Warnings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warnings{logger: logger, seen: make(map[string]bool)}
}

// Warnf records a warning and logs it.
func (w *Warnings) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.list = append(w.list, msg)
	w.logger.Warn(msg)
}

// WarnOncef records a warning the first time key is seen and drops
// repeats, for conditions that more than one pass rediscovers.
func (w *Warnings) WarnOncef(key, format string, args ...any) {
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.Warnf(format, args...)
}

// All returns the collected warnings in the order they occurred.
func (w *Warnings) All() []string {
	return w.list
}

// Len returns the number of collected warnings.
func (w *Warnings) Len() int { return len(w.list) }
