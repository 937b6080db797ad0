package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l-johnston/nirfsg/internal/sim"
	"github.com/l-johnston/nirfsg/pkg/rfsg"
)

func openSim(t *testing.T) *rfsg.PXIe5654 {
	t.Helper()
	dev, err := rfsg.Open("PXI1Slot2",
		rfsg.WithLibrary(sim.New()),
		rfsg.WithOptions("Simulate=1,DriverSetup=Model:5654"))
	require.NoError(t, err)
	t.Cleanup(func() { dev.Close() })
	return dev
}

// newTestShell builds a shell over a simulated session with its output
// captured in a buffer. No readline instance is created; the tests
// drive execute directly.
func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	dev := openSim(t)
	buf := &bytes.Buffer{}
	return &Shell{
		dev:      dev,
		sections: Sections(dev),
		out:      buf,
	}, buf
}

// TestSetAttributeResolvesAcrossSections verifies that display names
// resolve whether they live on the device core or on a subsystem.
func TestSetAttributeResolvesAcrossSections(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, SetAttribute(s.sections, "rf_frequency", 2.4e9))
	value, err := GetAttribute(s.sections, "rf_frequency")
	require.NoError(t, err)
	assert.Equal(t, 2.4e9, value)

	require.NoError(t, SetAttribute(s.sections, "mode", "am"))
	value, err = GetAttribute(s.sections, "mode")
	require.NoError(t, err)
	assert.Equal(t, "am", value)
}

func TestSetAttributeUnknownName(t *testing.T) {
	s, _ := newTestShell(t)

	err := SetAttribute(s.sections, "no_such_attribute", 1)
	require.ErrorIs(t, err, rfsg.ErrUnknownAttribute)

	_, err = GetAttribute(s.sections, "no_such_attribute")
	require.ErrorIs(t, err, rfsg.ErrUnknownAttribute)
}

// TestGetAttributeReadsHidden verifies that attributes filtered out of
// listings are still reachable by name.
func TestGetAttributeReadsHidden(t *testing.T) {
	s, _ := newTestShell(t)

	mode, err := GetAttribute(s.sections, "mode")
	require.NoError(t, err)
	require.Equal(t, "none", mode)
	assert.NotContains(t, s.dev.Modulation.Attributes(), "am_sensitivity")

	value, err := GetAttribute(s.sections, "am_sensitivity")
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestAttributeAfterClose(t *testing.T) {
	s, _ := newTestShell(t)
	require.NoError(t, s.dev.Close())

	_, err := GetAttribute(s.sections, "rf_frequency")
	assert.ErrorIs(t, err, rfsg.ErrClosed)
}

func TestExecuteRF(t *testing.T) {
	s, buf := newTestShell(t)

	exit := s.execute("rf 2.4e9 -10")
	assert.False(t, exit)
	assert.Contains(t, buf.String(), "RF configured: 2.4 GHz at -10 dBm")

	freq, err := s.dev.Get("rf_frequency")
	require.NoError(t, err)
	assert.Equal(t, 2.4e9, freq)
}

func TestExecuteRFBadArguments(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("rf")
	assert.Contains(t, buf.String(), "Usage: rf")

	buf.Reset()
	s.execute("rf ten -10")
	assert.Contains(t, buf.String(), "Invalid frequency: ten")
}

func TestExecuteSetGetRoundtrip(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("set rf_frequency 1e9")
	assert.Contains(t, buf.String(), "OK")

	buf.Reset()
	s.execute("get rf_frequency")
	assert.Contains(t, buf.String(), "rf_frequency = 1e+09")
}

// TestExecuteSetQuotedValue verifies that multi-word enum symbols can
// be quoted on the command line.
func TestExecuteSetQuotedValue(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute(`set type "digital edge"`)
	assert.Contains(t, buf.String(), "OK")

	value, err := GetAttribute(s.sections, "type")
	require.NoError(t, err)
	assert.Equal(t, "digital edge", value)
}

func TestExecuteSetFailureStaysInShell(t *testing.T) {
	s, buf := newTestShell(t)

	exit := s.execute("set rf_frequency notanumber")
	assert.False(t, exit)
	assert.Contains(t, buf.String(), "Set failed:")
}

func TestExecuteLifecycle(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("initiate")
	assert.Contains(t, buf.String(), "Generating")
	assert.Equal(t, rfsg.Generating, s.dev.State())

	buf.Reset()
	s.execute("status")
	out := buf.String()
	assert.Contains(t, out, "State:    generating")
	assert.Contains(t, out, "Settled:  no")

	buf.Reset()
	s.execute("abort")
	assert.Contains(t, buf.String(), "Aborted")
	assert.Equal(t, rfsg.Configuration, s.dev.State())
}

func TestExecuteOutput(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("output on")
	assert.Contains(t, buf.String(), "Output on")

	enabled, err := s.dev.Get("output_enabled")
	require.NoError(t, err)
	assert.Equal(t, true, enabled)

	buf.Reset()
	s.execute("output sideways")
	assert.Contains(t, buf.String(), "Usage: output on|off")
}

func TestExecuteSettle(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("settle 100")
	assert.Contains(t, buf.String(), "Settled")

	buf.Reset()
	s.execute("settle soon")
	assert.Contains(t, buf.String(), "Invalid timeout: soon")
}

func TestExecuteCommitAndReset(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("commit")
	assert.Contains(t, buf.String(), "Committed")

	require.NoError(t, s.dev.Set("rf_frequency", 5e9))
	buf.Reset()
	s.execute("reset")
	assert.Contains(t, buf.String(), "Session reset to defaults")

	freq, err := s.dev.Get("rf_frequency")
	require.NoError(t, err)
	assert.Equal(t, 0.0, freq)
}

func TestExecuteList(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("list clock")
	out := buf.String()
	assert.Contains(t, out, "clock:")
	assert.Contains(t, out, "  reference_source")
	assert.NotContains(t, out, "rf_frequency")

	buf.Reset()
	s.execute("list")
	out = buf.String()
	assert.Contains(t, out, "device:")
	assert.Contains(t, out, "external_cal:")
	assert.Less(t, strings.Index(out, "device:"), strings.Index(out, "external_cal:"))

	buf.Reset()
	s.execute("list bogus")
	assert.Contains(t, buf.String(), "Unknown subsystem: bogus")
}

// TestExecuteListFiltersByMode verifies that subsystem listings follow
// the live attribute values.
func TestExecuteListFiltersByMode(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("list analog_modulation")
	assert.NotContains(t, buf.String(), "am_sensitivity")

	require.NoError(t, SetAttribute(s.sections, "mode", "am"))
	buf.Reset()
	s.execute("list analog_modulation")
	out := buf.String()
	assert.Contains(t, out, "am_sensitivity")
	assert.NotContains(t, out, "fm_sensitivity")
}

func TestExecuteStatus(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("status")
	out := buf.String()
	assert.Contains(t, out, "Resource: PXI1Slot2")
	assert.Contains(t, out, "Model:    NI PXIe-5654")
	assert.Contains(t, out, "Session:  "+s.dev.SessionID())
	assert.Contains(t, out, "State:    configuration")
	assert.Contains(t, out, "Output:   false")
}

func TestExecuteID(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("id")
	out := buf.String()
	assert.Contains(t, out, "Model:    NI PXIe-5654")
	assert.Contains(t, out, "Serial:   03FA2B1C")
	assert.Contains(t, out, "Vendor:   National Instruments")
}

func TestExecuteRevision(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("revision")
	out := buf.String()
	assert.Contains(t, out, "NI-RFSG 24.5.0")
	assert.Contains(t, out, "Instrument: Not available")
}

func TestExecuteCalDate(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("caldate")
	assert.Contains(t, buf.String(), "Last external calibration: 2020-01-01 00:00")
}

func TestExecuteUnknownCommand(t *testing.T) {
	s, buf := newTestShell(t)

	exit := s.execute("frobnicate")
	assert.False(t, exit)
	assert.Contains(t, buf.String(), "Unknown command: frobnicate")
}

func TestExecuteExit(t *testing.T) {
	s, buf := newTestShell(t)

	assert.False(t, s.execute(""))
	assert.False(t, s.execute("help"))
	assert.True(t, s.execute("exit"))
	assert.Contains(t, buf.String(), "Exiting...")
}

func TestExecuteAliases(t *testing.T) {
	s, buf := newTestShell(t)

	s.execute("l clock")
	assert.Contains(t, buf.String(), "clock:")

	s.execute("s rf_power -5")
	buf.Reset()
	s.execute("g rf_power")
	assert.Contains(t, buf.String(), "rf_power = -5")

	s.execute("start")
	assert.Equal(t, rfsg.Generating, s.dev.State())
	s.execute("stop")
	assert.Equal(t, rfsg.Configuration, s.dev.State())

	assert.True(t, s.execute("q"))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"42", int64(42)},
		{"-5", int64(-5)},
		{"2.4e9", 2.4e9},
		{"true", true},
		{"false", false},
		{"OnboardClock", "OnboardClock"},
		{`"digital edge"`, "digital edge"},
		{"'none'", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.raw))
		})
	}
}

func TestFormatHz(t *testing.T) {
	tests := []struct {
		hz   float64
		want string
	}{
		{2.4e9, "2.4 GHz"},
		{100e6, "100 MHz"},
		{19.8e3, "19.8 kHz"},
		{250, "250 Hz"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatHz(tt.hz))
		})
	}
}
