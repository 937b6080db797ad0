// Command rfsg-trace is a tool for viewing and analyzing driver trace files.
//
// Trace files are created by passing rfsg.WithTrace(trace.NewFileLogger(...))
// to rfsg.Open, or by running rfsg-shell with the -trace flag.
//
// Usage:
//
//	rfsg-trace <command> [flags] <file.rftrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	rfsg-trace view session.rftrace
//
//	# View only failed calls
//	rfsg-trace view --failed session.rftrace
//
//	# View only attribute writes
//	rfsg-trace view --entry niRFSG_SetAttributeViReal64 session.rftrace
//
//	# Export to JSONL
//	rfsg-trace export --format jsonl session.rftrace
//
//	# Keep one session's events in a new file
//	rfsg-trace filter --session abc12345-... -o one.rftrace session.rftrace
//
//	# Show statistics
//	rfsg-trace stats session.rftrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/l-johnston/nirfsg/cmd/rfsg-trace/commands"
)

const usage = `rfsg-trace - NI-RFSG Driver Trace Analyzer

Usage:
  rfsg-trace <command> [flags] <file.rftrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "rfsg-trace <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rfsg-trace view - View trace file in human-readable format

Usage:
  rfsg-trace view [flags] <file.rftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	session := fs.String("session", "", "Filter by session ID")
	entry := fs.String("entry", "", "Filter by entry-point name (e.g. niRFSG_Initiate)")
	category := fs.String("category", "", "Filter by category (call, state)")
	failed := fs.Bool("failed", false, "Show only calls that returned a non-zero status")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	// Build filter
	filter := commands.ViewFilter{
		SessionID:  *session,
		Entry:      *entry,
		FailedOnly: *failed,
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rfsg-trace export - Export trace file to JSON or CSV format

Usage:
  rfsg-trace export [flags] <file.rftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rfsg-trace filter - Filter trace file and write to new file

Usage:
  rfsg-trace filter [flags] <file.rftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	entry := fs.String("entry", "", "Filter by entry-point name")
	category := fs.String("category", "", "Filter by category (call, state)")
	failed := fs.Bool("failed", false, "Keep only calls that returned a non-zero status")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:     *output,
		SessionID:  *session,
		Entry:      *entry,
		Category:   *category,
		FailedOnly: *failed,
		TimeStart:  *timeStart,
		TimeEnd:    *timeEnd,
	}

	if err := commands.RunFilter(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rfsg-trace stats - Show statistics about the trace file

Usage:
  rfsg-trace stats <file.rftrace>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
