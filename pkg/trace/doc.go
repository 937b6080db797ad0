// Package trace provides structured capture of driver interactions.
//
// This package defines the Logger interface and Event types for
// recording every call the binding makes into the NI-RFSG driver:
// entry point, attribute id, status, round-trip duration and, for
// failures, the decoded error text. It is separate from operational
// logging (slog) - call capture produces a complete machine-readable
// record of a session for debugging and driver-support cases.
//
// # Basic Usage
//
// Callers opt in by passing a Logger when opening a device:
//
//	// For development: mirror events onto slog
//	dev, err := rfsg.Open(resource, rfsg.WithTrace(trace.NewSlogAdapter(slog.Default())))
//
//	// For capture: write a binary trace file
//	fl, _ := trace.NewFileLogger("session.rftrace")
//	dev, err := rfsg.Open(resource, rfsg.WithTrace(fl))
//
//	// Both at once
//	dev, err := rfsg.Open(resource, rfsg.WithTrace(trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fl,
//	)))
//
// # Event Types
//
// Each event carries one payload:
//   - Call: one entry-point invocation (CallEvent)
//   - State: a session lifecycle transition (StateChangeEvent)
//
// # File Format
//
// Trace files use CBOR encoding with the .rftrace extension. The
// rfsg-trace CLI tool provides viewing, export and statistics.
package trace
