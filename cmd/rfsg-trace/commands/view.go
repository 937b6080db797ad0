// Package commands implements the rfsg-trace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/l-johnston/nirfsg/pkg/trace"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID  string
	Entry      string
	Category   *trace.Category
	FailedOnly bool
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event trace.Event) {
	// Header line: timestamp [sess:id] CATEGORY label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	// Determine event label
	var label string
	switch {
	case event.Call != nil:
		label = event.Call.Entry
	case event.StateChange != nil:
		label = formatTransition(event.StateChange)
	default:
		label = "Unknown"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-5s %s\n", ts, sessID, event.Category.String(), label)

	// Type-specific details
	if event.Resource != "" {
		fmt.Fprintf(w, "  Resource: %s\n", event.Resource)
	}
	switch {
	case event.Call != nil:
		formatCallDetails(w, event.Call)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatTransition renders a state change as "old -> new".
func formatTransition(sc *trace.StateChangeEvent) string {
	if sc.OldState != "" {
		return fmt.Sprintf("%s -> %s", sc.OldState, sc.NewState)
	}
	return fmt.Sprintf("-> %s", sc.NewState)
}

// formatCallDetails writes call-specific details.
func formatCallDetails(w io.Writer, call *trace.CallEvent) {
	if call.Channel != "" {
		fmt.Fprintf(w, "  Channel: %q\n", call.Channel)
	}
	if call.Attribute != 0 {
		fmt.Fprintf(w, "  Attribute: %d\n", call.Attribute)
	}
	if call.Duration != 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(call.Duration))
	}
	if call.Status != 0 {
		fmt.Fprintf(w, "  Status: %d\n", call.Status)
	}
	if call.Message != "" {
		fmt.Fprintf(w, "  Message: %s\n", call.Message)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *trace.StateChangeEvent) {
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (trace.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (trace.Category, error) {
	switch strings.ToLower(s) {
	case "call":
		return trace.CategoryCall, nil
	case "state":
		return trace.CategoryState, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be call or state)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := trace.NewFilteredReader(path, trace.Filter{
		SessionID:  filter.SessionID,
		Entry:      filter.Entry,
		Category:   filter.Category,
		FailedOnly: filter.FailedOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
