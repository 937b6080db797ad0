package trace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestSlog(t *testing.T) (*SlogAdapter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler)), &buf
}

func TestSlogAdapterSuccessfulCall(t *testing.T) {
	adapter, buf := newTestSlog(t)

	adapter.Log(callEvent("s1", "niRFSG_ConfigureRF"))

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("expected Debug level, got: %s", out)
	}
	if !strings.Contains(out, "entry=niRFSG_ConfigureRF") {
		t.Errorf("expected entry attribute, got: %s", out)
	}
	if !strings.Contains(out, "session=s1") {
		t.Errorf("expected session attribute, got: %s", out)
	}
}

func TestSlogAdapterFailedCall(t *testing.T) {
	adapter, buf := newTestSlog(t)

	event := callEvent("s1", "niRFSG_InitWithOptions")
	event.Call.Status = -1074097934
	event.Call.Message = "invalid option string"
	adapter.Log(event)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("expected Warn level for failed call, got: %s", out)
	}
	if !strings.Contains(out, "status=-1074097934") {
		t.Errorf("expected status attribute, got: %s", out)
	}
	if !strings.Contains(out, "invalid option string") {
		t.Errorf("expected message attribute, got: %s", out)
	}
}

func TestSlogAdapterStateChange(t *testing.T) {
	adapter, buf := newTestSlog(t)

	adapter.Log(Event{
		Timestamp: time.Now().UTC(),
		SessionID: "s1",
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "COMMITTED",
			NewState: "GENERATING",
			Reason:   "initiate",
		},
	})

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("expected Debug level, got: %s", out)
	}
	if !strings.Contains(out, "old_state=COMMITTED") {
		t.Errorf("expected old_state attribute, got: %s", out)
	}
	if !strings.Contains(out, "new_state=GENERATING") {
		t.Errorf("expected new_state attribute, got: %s", out)
	}
	if !strings.Contains(out, "reason=initiate") {
		t.Errorf("expected reason attribute, got: %s", out)
	}
}
