package text

import (
	"context"
	"log/slog"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
}

func TestLoggerStages(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var records []string
	SetLogger(slog.New(recordHandler{records: &records}))
	if logger() != Logger() {
		t.Fatal("logger() and Logger() disagree")
	}

	c, err := NewFontClient()
	if err != nil {
		t.Fatal(err)
	}
	var fonts []FontRun
	scripts := []ScriptRun{{CharacterRun: CharacterRun{NumberOfCharacters: 1}, Script: ScriptHebrew}}
	m := NewMultilanguageSupport(c)
	if err := m.ValidateFonts([]rune("א"), scripts, nil, FontDescription{}, 12, 0, 1, &fonts); err != nil {
		t.Fatal(err)
	}
	if len(records) == 0 {
		t.Error("ValidateFonts logged nothing for a character without a font")
	}
}

type recordHandler struct {
	records *[]string
}

func (recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r.Message)
	return nil
}
func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }
