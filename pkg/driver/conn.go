package driver

import (
	"time"

	"github.com/google/uuid"

	"github.com/l-johnston/nirfsg/pkg/trace"
)

// Conn is the checked call layer over a Library: it owns one driver
// Session, reports every call to a trace.Logger, and translates every
// non-zero status into a *Error by decoding it through niRFSG_GetError
// on the same session. Failures before Init decode through the zero
// session, which is where the driver files them.
//
// Conn adds no synchronization, caching or retries; it is exactly one
// native call per method plus translation.
type Conn struct {
	lib Library
	vi  Session
	id  string
	log trace.Logger
}

// NewConn wraps a library for checked calls. The connection has no
// session until Init or InitWithOptions succeeds. A nil logger means
// no capture.
func NewConn(lib Library, logger trace.Logger) *Conn {
	if logger == nil {
		logger = trace.NoopLogger{}
	}
	return &Conn{lib: lib, id: uuid.NewString(), log: logger}
}

// ID returns the connection's trace correlation id.
func (c *Conn) ID() string { return c.id }

// Session returns the underlying driver session handle.
func (c *Conn) Session() Session { return c.vi }

// finish logs the completed call and translates its status. The error
// text decodes through the connection's current session.
func (c *Conn) finish(ev trace.Event, st Status) error {
	var err error
	if st != StatusSuccess {
		msg, mst := c.lib.ErrorMessage(c.vi, st)
		if mst != StatusSuccess {
			msg = ""
		}
		ev.Call.Message = msg
		err = &Error{Code: st, Message: msg}
	}
	c.log.Log(ev)
	return err
}

func (c *Conn) check(entry string, st Status, start time.Time) error {
	return c.finish(trace.Event{
		Timestamp: start.UTC(),
		SessionID: c.id,
		Category:  trace.CategoryCall,
		Call: &trace.CallEvent{
			Entry:    entry,
			Status:   int32(st),
			Duration: time.Since(start),
		},
	}, st)
}

func (c *Conn) checkAttr(entry, channel string, id AttributeID, st Status, start time.Time) error {
	return c.finish(trace.Event{
		Timestamp: start.UTC(),
		SessionID: c.id,
		Category:  trace.CategoryCall,
		Call: &trace.CallEvent{
			Entry:     entry,
			Channel:   channel,
			Attribute: uint32(id),
			Status:    int32(st),
			Duration:  time.Since(start),
		},
	}, st)
}

func (c *Conn) checkInit(entry, resource string, st Status, start time.Time) error {
	return c.finish(trace.Event{
		Timestamp: start.UTC(),
		SessionID: c.id,
		Category:  trace.CategoryCall,
		Resource:  resource,
		Call: &trace.CallEvent{
			Entry:    entry,
			Status:   int32(st),
			Duration: time.Since(start),
		},
	}, st)
}

// LogStateChange reports a session lifecycle transition to the trace
// logger.
func (c *Conn) LogStateChange(oldState, newState, reason string) {
	c.log.Log(trace.Event{
		Timestamp: time.Now().UTC(),
		SessionID: c.id,
		Category:  trace.CategoryState,
		StateChange: &trace.StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// Init opens a session to the named resource.
func (c *Conn) Init(resource string, idQuery, resetDevice bool) error {
	start := time.Now()
	vi, st := c.lib.Init(resource, idQuery, resetDevice)
	if st == StatusSuccess {
		c.vi = vi
	}
	return c.checkInit("niRFSG_init", resource, st, start)
}

// InitWithOptions opens a session with a driver options string such as
// "Simulate=1,DriverSetup=Model:5654".
func (c *Conn) InitWithOptions(resource string, idQuery, resetDevice bool, options string) error {
	start := time.Now()
	vi, st := c.lib.InitWithOptions(resource, idQuery, resetDevice, options)
	if st == StatusSuccess {
		c.vi = vi
	}
	return c.checkInit("niRFSG_InitWithOptions", resource, st, start)
}

// Close releases the session.
func (c *Conn) Close() error {
	start := time.Now()
	st := c.lib.Close(c.vi)
	return c.check("niRFSG_close", st, start)
}

// Reset restores the session's attributes to their defaults.
func (c *Conn) Reset() error {
	start := time.Now()
	st := c.lib.Reset(c.vi)
	return c.check("niRFSG_reset", st, start)
}

// ResetDevice performs a hard reset of the device itself.
func (c *Conn) ResetDevice() error {
	start := time.Now()
	st := c.lib.ResetDevice(c.vi)
	return c.check("niRFSG_ResetDevice", st, start)
}

// Commit applies pending configuration to the hardware.
func (c *Conn) Commit() error {
	start := time.Now()
	st := c.lib.Commit(c.vi)
	return c.check("niRFSG_Commit", st, start)
}

// Initiate starts signal generation.
func (c *Conn) Initiate() error {
	start := time.Now()
	st := c.lib.Initiate(c.vi)
	return c.check("niRFSG_Initiate", st, start)
}

// Abort stops signal generation.
func (c *Conn) Abort() error {
	start := time.Now()
	st := c.lib.Abort(c.vi)
	return c.check("niRFSG_Abort", st, start)
}

// CheckGenerationStatus reports whether generation has completed and
// surfaces any error the generation raised.
func (c *Conn) CheckGenerationStatus() (bool, error) {
	start := time.Now()
	done, st := c.lib.CheckGenerationStatus(c.vi)
	if err := c.check("niRFSG_CheckGenerationStatus", st, start); err != nil {
		return false, err
	}
	return done, nil
}

// WaitUntilSettled blocks until the output settles, at most
// maxMilliseconds.
func (c *Conn) WaitUntilSettled(maxMilliseconds int32) error {
	start := time.Now()
	st := c.lib.WaitUntilSettled(c.vi, maxMilliseconds)
	return c.check("niRFSG_WaitUntilSettled", st, start)
}

// ConfigureRF sets the output frequency in hertz and power level in
// dBm in one call.
func (c *Conn) ConfigureRF(frequencyHz, powerDBM float64) error {
	start := time.Now()
	st := c.lib.ConfigureRF(c.vi, frequencyHz, powerDBM)
	return c.check("niRFSG_ConfigureRF", st, start)
}

// ConfigureOutputEnabled enables or disables the RF output.
func (c *Conn) ConfigureOutputEnabled(enabled bool) error {
	start := time.Now()
	st := c.lib.ConfigureOutputEnabled(c.vi, enabled)
	return c.check("niRFSG_ConfigureOutputEnabled", st, start)
}

// RevisionQuery returns the driver and firmware revision strings.
func (c *Conn) RevisionQuery() (driverRev, firmwareRev string, err error) {
	start := time.Now()
	driverRev, firmwareRev, st := c.lib.RevisionQuery(c.vi)
	if err := c.check("niRFSG_revision_query", st, start); err != nil {
		return "", "", err
	}
	return driverRev, firmwareRev, nil
}

// ChannelName returns the name of the channel at the given index.
func (c *Conn) ChannelName(index int32) (string, error) {
	start := time.Now()
	name, st := c.lib.GetChannelName(c.vi, index)
	if err := c.check("niRFSG_GetChannelName", st, start); err != nil {
		return "", err
	}
	return name, nil
}

// ExternalCalDateAndTime returns when the device was last externally
// calibrated. The driver reports a wall-clock date with no zone; it is
// returned in UTC.
func (c *Conn) ExternalCalDateAndTime() (time.Time, error) {
	start := time.Now()
	y, mo, d, h, mi, s, st := c.lib.ExternalCalDateAndTime(c.vi)
	if err := c.check("niRFSG_GetExternalCalibrationLastDateAndTime", st, start); err != nil {
		return time.Time{}, err
	}
	return time.Date(int(y), time.Month(mo), int(d), int(h), int(mi), int(s), 0, time.UTC), nil
}

// CreateConfigurationList creates a configuration list over the given
// attributes.
func (c *Conn) CreateConfigurationList(name string, ids []AttributeID, setAsActive bool) error {
	start := time.Now()
	st := c.lib.CreateConfigurationList(c.vi, name, ids, setAsActive)
	return c.check("niRFSG_CreateConfigurationList", st, start)
}

// CreateConfigurationListStep appends a step to the active
// configuration list.
func (c *Conn) CreateConfigurationListStep(setAsActive bool) error {
	start := time.Now()
	st := c.lib.CreateConfigurationListStep(c.vi, setAsActive)
	return c.check("niRFSG_CreateConfigurationListStep", st, start)
}

// GetAttributeViReal64 reads a float64 attribute.
func (c *Conn) GetAttributeViReal64(channel string, id AttributeID) (float64, error) {
	start := time.Now()
	v, st := c.lib.GetAttributeViReal64(c.vi, channel, id)
	if err := c.checkAttr("niRFSG_GetAttributeViReal64", channel, id, st, start); err != nil {
		return 0, err
	}
	return v, nil
}

// GetAttributeViInt32 reads an int32 attribute.
func (c *Conn) GetAttributeViInt32(channel string, id AttributeID) (int32, error) {
	start := time.Now()
	v, st := c.lib.GetAttributeViInt32(c.vi, channel, id)
	if err := c.checkAttr("niRFSG_GetAttributeViInt32", channel, id, st, start); err != nil {
		return 0, err
	}
	return v, nil
}

// GetAttributeViInt64 reads an int64 attribute.
func (c *Conn) GetAttributeViInt64(channel string, id AttributeID) (int64, error) {
	start := time.Now()
	v, st := c.lib.GetAttributeViInt64(c.vi, channel, id)
	if err := c.checkAttr("niRFSG_GetAttributeViInt64", channel, id, st, start); err != nil {
		return 0, err
	}
	return v, nil
}

// GetAttributeViBoolean reads a boolean attribute.
func (c *Conn) GetAttributeViBoolean(channel string, id AttributeID) (bool, error) {
	start := time.Now()
	v, st := c.lib.GetAttributeViBoolean(c.vi, channel, id)
	if err := c.checkAttr("niRFSG_GetAttributeViBoolean", channel, id, st, start); err != nil {
		return false, err
	}
	return v, nil
}

// GetAttributeViString reads a string attribute.
func (c *Conn) GetAttributeViString(channel string, id AttributeID) (string, error) {
	start := time.Now()
	v, st := c.lib.GetAttributeViString(c.vi, channel, id)
	if err := c.checkAttr("niRFSG_GetAttributeViString", channel, id, st, start); err != nil {
		return "", err
	}
	return v, nil
}

// SetAttributeViReal64 writes a float64 attribute.
func (c *Conn) SetAttributeViReal64(channel string, id AttributeID, value float64) error {
	start := time.Now()
	st := c.lib.SetAttributeViReal64(c.vi, channel, id, value)
	return c.checkAttr("niRFSG_SetAttributeViReal64", channel, id, st, start)
}

// SetAttributeViInt32 writes an int32 attribute.
func (c *Conn) SetAttributeViInt32(channel string, id AttributeID, value int32) error {
	start := time.Now()
	st := c.lib.SetAttributeViInt32(c.vi, channel, id, value)
	return c.checkAttr("niRFSG_SetAttributeViInt32", channel, id, st, start)
}

// SetAttributeViInt64 writes an int64 attribute.
func (c *Conn) SetAttributeViInt64(channel string, id AttributeID, value int64) error {
	start := time.Now()
	st := c.lib.SetAttributeViInt64(c.vi, channel, id, value)
	return c.checkAttr("niRFSG_SetAttributeViInt64", channel, id, st, start)
}

// SetAttributeViBoolean writes a boolean attribute.
func (c *Conn) SetAttributeViBoolean(channel string, id AttributeID, value bool) error {
	start := time.Now()
	st := c.lib.SetAttributeViBoolean(c.vi, channel, id, value)
	return c.checkAttr("niRFSG_SetAttributeViBoolean", channel, id, st, start)
}

// SetAttributeViString writes a string attribute.
func (c *Conn) SetAttributeViString(channel string, id AttributeID, value string) error {
	start := time.Now()
	st := c.lib.SetAttributeViString(c.vi, channel, id, value)
	return c.checkAttr("niRFSG_SetAttributeViString", channel, id, st, start)
}
