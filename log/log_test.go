package log

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
	level   slog.Level
}

func newRecordHandler(level slog.Level) *recordHandler {
	return &recordHandler{level: level}
}

func (h *recordHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *recordHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Record, len(h.records))
	copy(out, h.records)
	return out
}

func TestEnabled_NilLogger(t *testing.T) {
	if Enabled(context.Background(), nil, slog.LevelDebug) {
		t.Error("Enabled should return false for nil logger")
	}
}

func TestDebug_NilLoggerIsNoop(t *testing.T) {
	Debug(context.Background(), nil, "should not panic", slog.String("k", "v"))
}

func TestDebug_LogsWhenEnabled(t *testing.T) {
	h := newRecordHandler(slog.LevelDebug)
	logger := slog.New(h)
	Debug(context.Background(), logger, "discovering field", slog.String("field", "age"))
	recs := h.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Message != "discovering field" {
		t.Errorf("unexpected message %q", recs[0].Message)
	}
}

func TestWarn_SuppressedBelowThreshold(t *testing.T) {
	h := newRecordHandler(slog.LevelError)
	logger := slog.New(h)
	Warn(context.Background(), logger, "field missing from source")
	if len(h.Records()) != 0 {
		t.Error("expected Warn to be suppressed by an Error-level handler")
	}
}

func TestDebugLazy_DoesNotCallFnWhenDisabled(t *testing.T) {
	h := newRecordHandler(slog.LevelError)
	logger := slog.New(h)
	called := false
	DebugLazy(context.Background(), logger, "msg", func() []slog.Attr {
		called = true
		return nil
	})
	if called {
		t.Error("DebugLazy should not evaluate fn when Debug is disabled")
	}
}

func TestBegin_ReturnsNilWhenDisabled(t *testing.T) {
	op := Begin(context.Background(), nil, "tdda.discover.run")
	if op != nil {
		t.Error("Begin should return nil for a nil logger")
	}
	op.End(nil) // must not panic
}

func TestOp_EndLogsOnceWithDuration(t *testing.T) {
	h := newRecordHandler(slog.LevelDebug)
	logger := slog.New(h)
	op := Begin(context.Background(), logger, "tdda.verify.run", slog.Int("fields", 3))
	op.End(nil, slog.Int("failures", 0))
	op.End(nil, slog.Int("failures", 99)) // second call must be a no-op

	recs := h.Records()
	if len(recs) != 2 {
		t.Fatalf("expected start+end records, got %d", len(recs))
	}
	if recs[1].Message != "operation ended" {
		t.Errorf("unexpected end message %q", recs[1].Message)
	}

	seenFailures := false
	recs[1].Attrs(func(a slog.Attr) bool {
		if a.Key == "failures" && a.Value.Int64() == 0 {
			seenFailures = true
		}
		return true
	})
	if !seenFailures {
		t.Error("expected the first End call's attrs to be recorded, not the second's")
	}
}
