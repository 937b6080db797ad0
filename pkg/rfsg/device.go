package rfsg

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/l-johnston/nirfsg/pkg/attributes"
	"github.com/l-johnston/nirfsg/pkg/driver"
)

var (
	// ErrClosed is returned by operations on a device whose session
	// has been released.
	ErrClosed = errors.New("session closed")

	// ErrUnknownAttribute is returned when a name is not part of the
	// addressed attribute set.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// DefaultSettleTimeout is how long WaitUntilSettled waits when the
// caller passes no timeout.
const DefaultSettleTimeout = 10 * time.Second

// Device is the core of a signal generator session: the checked
// driver connection, the connected model, and the device-level
// attribute set. Model façades embed it and add their subsystems.
//
// Device tracks the session lifecycle and refuses operations after
// Close, but adds no synchronization; see the package comment.
type Device struct {
	conn     *driver.Conn
	resource string
	model    string
	channel  string
	state    State
	attrs    map[string]*attributes.Bound
}

// newDevice binds the device-level attribute set, the union of the
// model and channel subsystems for the connected model.
func newDevice(conn *driver.Conn, resource, model string) *Device {
	d := &Device{
		conn:     conn,
		resource: resource,
		model:    model,
	}
	d.attrs = bindSet(conn, d.channel, model, "model")
	for name, b := range bindSet(conn, d.channel, model, "channel") {
		d.attrs[name] = b
	}
	return d
}

// setState records a lifecycle transition and reports it to the trace
// logger.
func (d *Device) setState(next State, reason string) {
	if d.state == next {
		return
	}
	d.conn.LogStateChange(d.state.String(), next.String(), reason)
	d.state = next
}

// usable fails once the session has been released.
func (d *Device) usable() error {
	if d.state == Closed {
		return ErrClosed
	}
	return nil
}

// State returns the current lifecycle state.
func (d *Device) State() State { return d.state }

// Model returns the connected instrument model as the driver reports
// it, e.g. "NI PXIe-5654".
func (d *Device) Model() string { return d.model }

// Resource returns the resource name the session was opened on.
func (d *Device) Resource() string { return d.resource }

// SessionID returns the trace correlation id of the session.
func (d *Device) SessionID() string { return d.conn.ID() }

// ConfigureRF sets the output frequency in hertz and power level in
// dBm in one driver call.
func (d *Device) ConfigureRF(frequencyHz, powerDBM float64) error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.conn.ConfigureRF(frequencyHz, powerDBM)
}

// ConfigureOutputEnabled enables or disables the RF output.
func (d *Device) ConfigureOutputEnabled(enabled bool) error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.conn.ConfigureOutputEnabled(enabled)
}

// Initiate starts signal generation.
func (d *Device) Initiate() error {
	if err := d.usable(); err != nil {
		return err
	}
	if err := d.conn.Initiate(); err != nil {
		return err
	}
	d.setState(Generating, "initiate")
	return nil
}

// Abort stops signal generation and returns the device to the
// configuration state.
func (d *Device) Abort() error {
	if err := d.usable(); err != nil {
		return err
	}
	if err := d.conn.Abort(); err != nil {
		return err
	}
	d.setState(Configuration, "abort")
	return nil
}

// CheckGenerationStatus reports whether generation has completed and
// surfaces any error the generation raised.
func (d *Device) CheckGenerationStatus() (bool, error) {
	if err := d.usable(); err != nil {
		return false, err
	}
	return d.conn.CheckGenerationStatus()
}

// Commit applies pending configuration to the hardware.
func (d *Device) Commit() error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.conn.Commit()
}

// WaitUntilSettled blocks until the output has stabilized after a
// configuration change, at most the given timeout. A zero or negative
// timeout waits DefaultSettleTimeout. Timeout expiry surfaces as a
// *driver.Error, not a distinguished type.
func (d *Device) WaitUntilSettled(timeout time.Duration) error {
	if err := d.usable(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = DefaultSettleTimeout
	}
	return d.conn.WaitUntilSettled(int32(timeout.Milliseconds()))
}

// Reset restores the session's attributes to their defaults and stops
// any generation in progress.
func (d *Device) Reset() error {
	if err := d.usable(); err != nil {
		return err
	}
	if err := d.conn.Reset(); err != nil {
		return err
	}
	d.setState(Configuration, "reset")
	return nil
}

// ResetDevice performs a hard reset of the device itself.
func (d *Device) ResetDevice() error {
	if err := d.usable(); err != nil {
		return err
	}
	if err := d.conn.ResetDevice(); err != nil {
		return err
	}
	d.setState(Configuration, "reset device")
	return nil
}

// Revisions returns the driver and firmware revision strings.
func (d *Device) Revisions() (driverRev, firmwareRev string, err error) {
	if err := d.usable(); err != nil {
		return "", "", err
	}
	return d.conn.RevisionQuery()
}

// ChannelName returns the name of the channel at the given index.
func (d *Device) ChannelName(index int) (string, error) {
	if err := d.usable(); err != nil {
		return "", err
	}
	return d.conn.ChannelName(int32(index))
}

// Close releases the driver session. The first call releases; any
// further call is a no-op returning nil.
func (d *Device) Close() error {
	if d.state == Closed {
		return nil
	}
	err := d.conn.Close()
	d.setState(Closed, "close")
	return err
}

// Get reads a device-level attribute by display name.
func (d *Device) Get(name string) (any, error) {
	if err := d.usable(); err != nil {
		return nil, err
	}
	b, ok := d.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return b.Get()
}

// Set writes a device-level attribute by display name.
func (d *Device) Set(name string, value any) error {
	if err := d.usable(); err != nil {
		return err
	}
	b, ok := d.attrs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return b.Set(value)
}

// Attributes returns the sorted display names of the device-level
// attribute set.
func (d *Device) Attributes() []string {
	names := make([]string, 0, len(d.attrs))
	for name := range d.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
