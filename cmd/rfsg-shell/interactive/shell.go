// Package interactive provides the interactive command loop for
// rfsg-shell.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/l-johnston/nirfsg/pkg/rfsg"
)

// AttrSet is the attribute surface shared by the device core and
// every subsystem: read and write by display name, list the visible
// names.
type AttrSet interface {
	Get(name string) (any, error)
	Set(name string, value any) error
	Attributes() []string
}

// Section pairs an attribute set with the name the shell lists it
// under.
type Section struct {
	Name  string
	Attrs AttrSet
}

// Sections returns the device plus each subsystem in listing order.
func Sections(dev *rfsg.PXIe5654) []Section {
	return []Section{
		{Name: "device", Attrs: dev.Device},
		{Name: "analog_modulation", Attrs: dev.Modulation},
		{Name: "clock", Attrs: dev.Clock},
		{Name: "configuration_list", Attrs: dev.ConfigurationList},
		{Name: "start_trigger", Attrs: dev.Triggers.Start},
		{Name: "configurationlist_trigger", Attrs: dev.Triggers.ConfigurationList},
		{Name: "events", Attrs: dev.Events},
		{Name: "external_cal", Attrs: dev.ExternalCal},
	}
}

// GetAttribute resolves a display name across the device and every
// subsystem. Display names are globally unique, so the first set that
// knows the name wins. Hidden attributes resolve too: visibility only
// affects listings.
func GetAttribute(sections []Section, name string) (any, error) {
	for _, sec := range sections {
		value, err := sec.Attrs.Get(name)
		if errors.Is(err, rfsg.ErrUnknownAttribute) {
			continue
		}
		return value, err
	}
	return nil, fmt.Errorf("%w: %q", rfsg.ErrUnknownAttribute, name)
}

// SetAttribute writes a display name, resolving it the same way
// GetAttribute does.
func SetAttribute(sections []Section, name string, value any) error {
	for _, sec := range sections {
		err := sec.Attrs.Set(name, value)
		if errors.Is(err, rfsg.ErrUnknownAttribute) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %q", rfsg.ErrUnknownAttribute, name)
}

// Shell handles interactive mode for rfsg-shell.
type Shell struct {
	dev      *rfsg.PXIe5654
	sections []Section
	rl       *readline.Instance
	out      io.Writer
}

// New creates a new interactive shell over an open session.
func New(dev *rfsg.PXIe5654) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rfsg> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		dev:      dev,
		sections: Sections(dev),
		rl:       rl,
		out:      rl.Stdout(),
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the command
// prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop and blocks until the user
// exits.
func (s *Shell) Run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if s.execute(line) {
			return
		}
	}
}

// execute runs one command line and reports whether the shell should
// exit. Command errors print to the shell's output and never end the
// loop.
func (s *Shell) execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "list", "l":
		s.cmdList(args)

	case "get", "g":
		s.cmdGet(args)

	case "set", "s":
		s.cmdSet(args)

	case "rf":
		s.cmdRF(args)

	case "output":
		s.cmdOutput(args)

	case "initiate", "start":
		s.cmdInitiate()

	case "abort", "stop":
		s.cmdAbort()

	case "commit":
		s.cmdCommit()

	case "settle":
		s.cmdSettle(args)

	case "reset":
		s.cmdReset()

	case "status":
		s.cmdStatus()

	case "id":
		s.cmdID()

	case "revision", "rev":
		s.cmdRevision()

	case "caldate":
		s.cmdCalDate()

	case "exit", "quit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

func (s *Shell) cmdList(args []string) {
	if len(args) == 0 {
		for _, sec := range s.sections {
			s.printSection(sec)
		}
		return
	}

	want := strings.ToLower(args[0])
	for _, sec := range s.sections {
		if sec.Name == want {
			s.printSection(sec)
			return
		}
	}

	names := make([]string, len(s.sections))
	for i, sec := range s.sections {
		names[i] = sec.Name
	}
	fmt.Fprintf(s.out, "Unknown subsystem: %s (use %s)\n", args[0], strings.Join(names, ", "))
}

func (s *Shell) printSection(sec Section) {
	fmt.Fprintf(s.out, "%s:\n", sec.Name)
	for _, name := range sec.Attrs.Attributes() {
		fmt.Fprintf(s.out, "  %s\n", name)
	}
}

func (s *Shell) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: get <attribute>")
		fmt.Fprintln(s.out, "Example: get rf_frequency")
		return
	}

	value, err := GetAttribute(s.sections, args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Get failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s = %v\n", args[0], value)
}

func (s *Shell) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <attribute> <value>")
		fmt.Fprintln(s.out, "Example: set rf_frequency 2.4e9")
		return
	}

	value := parseValue(strings.Join(args[1:], " "))
	if err := SetAttribute(s.sections, args[0], value); err != nil {
		fmt.Fprintf(s.out, "Set failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

// parseValue turns REPL input into the value types the attribute layer
// coerces from: integers, floats, booleans, then quoted or bare
// strings.
func parseValue(raw string) any {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return strings.Trim(raw, `"'`)
}

func (s *Shell) cmdRF(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: rf <frequency-hz> <power-dbm>")
		fmt.Fprintln(s.out, "Example: rf 2.4e9 -10")
		return
	}

	freq, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid frequency: %s\n", args[0])
		return
	}
	power, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid power: %s\n", args[1])
		return
	}

	if err := s.dev.ConfigureRF(freq, power); err != nil {
		fmt.Fprintf(s.out, "ConfigureRF failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "RF configured: %s at %g dBm\n", formatHz(freq), power)
}

// formatHz renders a frequency with the natural SI prefix.
func formatHz(hz float64) string {
	switch {
	case hz >= 1e9:
		return fmt.Sprintf("%g GHz", hz/1e9)
	case hz >= 1e6:
		return fmt.Sprintf("%g MHz", hz/1e6)
	case hz >= 1e3:
		return fmt.Sprintf("%g kHz", hz/1e3)
	default:
		return fmt.Sprintf("%g Hz", hz)
	}
}

func (s *Shell) cmdOutput(args []string) {
	if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(s.out, "Usage: output on|off")
		return
	}

	enabled := args[0] == "on"
	if err := s.dev.ConfigureOutputEnabled(enabled); err != nil {
		fmt.Fprintf(s.out, "ConfigureOutputEnabled failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Output %s\n", args[0])
}

func (s *Shell) cmdInitiate() {
	if err := s.dev.Initiate(); err != nil {
		fmt.Fprintf(s.out, "Initiate failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Generating")
}

func (s *Shell) cmdAbort() {
	if err := s.dev.Abort(); err != nil {
		fmt.Fprintf(s.out, "Abort failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Aborted")
}

func (s *Shell) cmdCommit() {
	if err := s.dev.Commit(); err != nil {
		fmt.Fprintf(s.out, "Commit failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Committed")
}

func (s *Shell) cmdSettle(args []string) {
	var timeout time.Duration
	if len(args) > 0 {
		ms, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "Invalid timeout: %s (milliseconds)\n", args[0])
			return
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	if err := s.dev.WaitUntilSettled(timeout); err != nil {
		fmt.Fprintf(s.out, "WaitUntilSettled failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Settled")
}

func (s *Shell) cmdReset() {
	if err := s.dev.Reset(); err != nil {
		fmt.Fprintf(s.out, "Reset failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Session reset to defaults")
}

func (s *Shell) cmdStatus() {
	fmt.Fprintln(s.out, "\nSession Status")
	fmt.Fprintln(s.out, "--------------")
	fmt.Fprintf(s.out, "Resource: %s\n", s.dev.Resource())
	fmt.Fprintf(s.out, "Model:    %s\n", s.dev.Model())
	fmt.Fprintf(s.out, "Session:  %s\n", s.dev.SessionID())
	fmt.Fprintf(s.out, "State:    %s\n", s.dev.State())

	if s.dev.State() == rfsg.Generating {
		settled, err := s.dev.CheckGenerationStatus()
		switch {
		case err != nil:
			fmt.Fprintf(s.out, "Settled:  unknown (%v)\n", err)
		case settled:
			fmt.Fprintln(s.out, "Settled:  yes")
		default:
			fmt.Fprintln(s.out, "Settled:  no")
		}
	}

	freq, errF := s.dev.Get("rf_frequency")
	power, errP := s.dev.Get("rf_power")
	if errF == nil && errP == nil {
		f, ok := freq.(float64)
		if ok {
			fmt.Fprintf(s.out, "RF:       %s at %v dBm\n", formatHz(f), power)
		}
	}
	if enabled, err := s.dev.Get("output_enabled"); err == nil {
		fmt.Fprintf(s.out, "Output:   %v\n", enabled)
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) cmdID() {
	fmt.Fprintf(s.out, "Model:    %s\n", s.dev.Model())
	if serial, err := s.dev.Get("serial_number"); err == nil {
		fmt.Fprintf(s.out, "Serial:   %v\n", serial)
	}
	if rev, err := s.dev.Get("firmware_revision"); err == nil {
		fmt.Fprintf(s.out, "Firmware: %v\n", rev)
	}
	if vendor, err := s.dev.Get("manufacturer"); err == nil {
		fmt.Fprintf(s.out, "Vendor:   %v\n", vendor)
	}
}

func (s *Shell) cmdRevision() {
	driverRev, firmwareRev, err := s.dev.Revisions()
	if err != nil {
		fmt.Fprintf(s.out, "Revisions failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Driver:     %s\n", driverRev)
	fmt.Fprintf(s.out, "Instrument: %s\n", firmwareRev)
}

func (s *Shell) cmdCalDate() {
	date, err := s.dev.ExternalCal.Date()
	if err != nil {
		fmt.Fprintf(s.out, "Calibration date failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Last external calibration: %s\n", date.Format("2006-01-02 15:04"))
}

func (s *Shell) printHelp() {
	help := `
Available commands:

Attributes:
  list [subsystem]          - List attributes (all, or one subsystem)
  get <attribute>           - Read an attribute by name
  set <attribute> <value>   - Write an attribute by name

Generation:
  rf <freq-hz> <power-dbm>  - Configure frequency and power level
  output on|off             - Enable or disable the RF output
  initiate                  - Start generating (alias: start)
  abort                     - Stop generating (alias: stop)
  commit                    - Apply pending settings to hardware
  settle [ms]               - Wait until the output settles
  reset                     - Reset the session to defaults

Info:
  status                    - Show session state and RF settings
  id                        - Show model, serial and firmware
  revision                  - Show driver and instrument revisions
  caldate                   - Show the last external calibration date

General:
  help                      - Show this help (alias: ?)
  exit                      - Close the session and quit (alias: quit)
`
	fmt.Fprintln(s.out, help)
}
