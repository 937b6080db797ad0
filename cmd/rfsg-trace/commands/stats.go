package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/l-johnston/nirfsg/pkg/trace"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[trace.Category]int
	Entries          map[string]*EntryStats
	Sessions         map[string]*SessionStats
	Failures         int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// EntryStats holds statistics for a single driver entry point.
type EntryStats struct {
	Calls    int
	Failures int
	Total    time.Duration
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Resource  string
	Failures  int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[trace.Category]int),
		Entries:          make(map[string]*EntryStats),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track session stats
		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}
		if event.Resource != "" && sess.Resource == "" {
			sess.Resource = event.Resource
		}

		// Track per-entry stats
		if event.Call != nil {
			entry, ok := stats.Entries[event.Call.Entry]
			if !ok {
				entry = &EntryStats{}
				stats.Entries[event.Call.Entry] = entry
			}
			entry.Calls++
			entry.Total += event.Call.Duration
			if event.Call.Status != 0 {
				entry.Failures++
			}
		}

		// Count failures
		if event.Failed() {
			stats.Failures++
			sess.Failures++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== NI-RFSG Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []trace.Category{trace.CategoryCall, trace.CategoryState} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Entry points, busiest first
	if len(stats.Entries) > 0 {
		fmt.Fprintln(w, "Entry Points:")

		type entryInfo struct {
			name  string
			stats *EntryStats
		}
		entries := make([]entryInfo, 0, len(stats.Entries))
		for name, es := range stats.Entries {
			entries = append(entries, entryInfo{name, es})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].stats.Calls != entries[j].stats.Calls {
				return entries[i].stats.Calls > entries[j].stats.Calls
			}
			return entries[i].name < entries[j].name
		})

		for _, e := range entries {
			failed := ""
			if e.stats.Failures > 0 {
				failed = fmt.Sprintf(" (%d failed)", e.stats.Failures)
			}
			fmt.Fprintf(w, "  %-36s %d calls%s, total %s\n",
				e.name, e.stats.Calls, failed, formatDuration(e.stats.Total))
		}
		fmt.Fprintln(w)
	}

	// Sessions
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		// Sort by first seen time
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.Resource != "" {
				fmt.Fprintf(w, "           Resource: %s\n", s.stats.Resource)
			}
			if s.stats.Failures > 0 {
				fmt.Fprintf(w, "           Failures: %d\n", s.stats.Failures)
			}
		}
	}

	// Failures
	if stats.Failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failed Calls: %d\n", stats.Failures)
	}
}
