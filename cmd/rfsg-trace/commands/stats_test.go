package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/l-johnston/nirfsg/pkg/trace"
)

func TestStatsCountsByCategory(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Init"}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Initiate"}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryState, StateChange: &trace.StateChangeEvent{NewState: "generating"}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "CALL:") {
		t.Error("expected CALL category in output")
	}
	if !strings.Contains(output, "STATE:") {
		t.Error("expected STATE category in output")
	}
}

func TestStatsTotalEvents(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Init"}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Initiate"}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_close"}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Total Events: 3") {
		t.Errorf("expected 3 total events in output, got:\n%s", output)
	}
}

func TestStatsTimeRange(t *testing.T) {
	start := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 28, 11, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: start, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Init"}},
		{Timestamp: end, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_close"}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Duration:") {
		t.Error("expected Duration in output")
	}
	if !strings.Contains(output, "1h0m0s") {
		t.Errorf("expected 1h0m0s duration in output, got:\n%s", output)
	}
}

func TestStatsEntryPoints(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_SetAttributeViReal64", Duration: time.Millisecond}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_SetAttributeViReal64", Duration: time.Millisecond}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Initiate", Duration: time.Millisecond}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "niRFSG_SetAttributeViReal64") {
		t.Error("expected attribute setter entry in output")
	}
	if !strings.Contains(output, "2 calls") {
		t.Errorf("expected call count in output, got:\n%s", output)
	}

	// Busiest entry listed first
	setterIdx := strings.Index(output, "niRFSG_SetAttributeViReal64")
	initiateIdx := strings.Index(output, "niRFSG_Initiate")
	if setterIdx == -1 || initiateIdx == -1 || setterIdx > initiateIdx {
		t.Errorf("expected busiest entry first, got:\n%s", output)
	}
}

func TestStatsCountsSessions(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "sess-aaaa-bbbb", Category: trace.CategoryCall, Resource: "PXI1Slot2", Call: &trace.CallEvent{Entry: "niRFSG_InitWithOptions"}},
		{Timestamp: ts.Add(time.Second), SessionID: "sess-aaaa-bbbb", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_close"}},
		{Timestamp: ts, SessionID: "sess-cccc-dddd", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Init"}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Sessions: 2") {
		t.Errorf("expected 2 sessions in output, got:\n%s", output)
	}
	if !strings.Contains(output, "[sess-aaa") {
		t.Error("expected sess-aaaa session details")
	}
	if !strings.Contains(output, "Resource: PXI1Slot2") {
		t.Errorf("expected session resource in output, got:\n%s", output)
	}
}

func TestStatsFailedCalls(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Initiate"}},
		{Timestamp: ts, SessionID: "sess-aaaa", Category: trace.CategoryCall, Call: &trace.CallEvent{Entry: "niRFSG_Initiate", Status: -1074118656}},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	err := RunStats(path, &buf)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "(1 failed)") {
		t.Errorf("expected per-entry failure count in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Failed Calls: 1") {
		t.Errorf("expected total failure count in output, got:\n%s", output)
	}
}
