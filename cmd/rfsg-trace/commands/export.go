package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/l-johnston/nirfsg/pkg/trace"
)

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *trace.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *trace.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "session_id", "category", "resource", "entry", "channel", "attribute", "status", "duration_us", "message", "old_state", "new_state", "reason"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Flatten type-specific fields
		var entry, channel, attribute, status, durationUS, message string
		var oldState, newState, reason string
		switch {
		case event.Call != nil:
			entry = event.Call.Entry
			channel = event.Call.Channel
			if event.Call.Attribute != 0 {
				attribute = strconv.FormatUint(uint64(event.Call.Attribute), 10)
			}
			status = strconv.FormatInt(int64(event.Call.Status), 10)
			durationUS = strconv.FormatInt(event.Call.Duration.Microseconds(), 10)
			message = event.Call.Message
		case event.StateChange != nil:
			oldState = event.StateChange.OldState
			newState = event.StateChange.NewState
			reason = event.StateChange.Reason
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Category.String(),
			event.Resource,
			entry,
			channel,
			attribute,
			status,
			durationUS,
			message,
			oldState,
			newState,
			reason,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
