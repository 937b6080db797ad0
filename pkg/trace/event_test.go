package trace

import (
	"testing"
	"time"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryCall, "CALL"},
		{CategoryState, "STATE"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestCategoryValues(t *testing.T) {
	// Verify explicit values for file-format stability
	if CategoryCall != 0 {
		t.Errorf("CategoryCall = %d, want 0", CategoryCall)
	}
	if CategoryState != 1 {
		t.Errorf("CategoryState = %d, want 1", CategoryState)
	}
}

func TestEventFailed(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			name: "successful call",
			event: Event{
				Category: CategoryCall,
				Call:     &CallEvent{Entry: "niRFSG_Initiate", Status: 0},
			},
			want: false,
		},
		{
			name: "failed call",
			event: Event{
				Category: CategoryCall,
				Call:     &CallEvent{Entry: "niRFSG_init", Status: -1074097933},
			},
			want: true,
		},
		{
			name: "state change",
			event: Event{
				Category:    CategoryState,
				StateChange: &StateChangeEvent{NewState: "CONFIGURATION"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventTimestampPrecision(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
	event := Event{
		Timestamp: ts,
		SessionID: "session-1",
		Category:  CategoryCall,
		Call:      &CallEvent{Entry: "niRFSG_Commit"},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("timestamp lost precision: got %v, want %v", decoded.Timestamp, ts)
	}
}
