package textmodel

import (
	"log/slog"

	"github.com/gogpu/textmodel/text"
)

// SetLogger configures the logger used by the pipeline and every stage in
// package text. By default textmodel produces no log output.
// Pass nil to restore the silent default. SetLogger is safe for concurrent
// use with running layouts.
//
// Levels:
//   - [slog.LevelDebug]: per-stage counts and font choices
//   - [slog.LevelWarn]: characters no font supports, system fonts unavailable
//
// Example:
//
//	textmodel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	text.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return text.Logger()
}
