package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := NopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("NopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("NopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(NopHandler); !ok {
		t.Error("WithAttrs() did not return NopHandler")
	}
	if _, ok := h.WithGroup("g").(NopHandler); !ok {
		t.Error("WithGroup() did not return NopHandler")
	}
}

func TestOrNop(t *testing.T) {
	if l := OrNop(nil); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("OrNop(nil) should return a disabled logger")
	}
	def := slog.Default()
	if OrNop(def) != def {
		t.Error("OrNop(l) should return l unchanged")
	}
}
