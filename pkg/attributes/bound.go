package attributes

import (
	"errors"
	"fmt"
	"time"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// ErrValueType is returned by Set when the value cannot be carried by
// the attribute's scalar type.
var ErrValueType = errors.New("value type does not match attribute type")

// Native names of the two attributes whose readings are translated
// beyond their declared scalar type.
const (
	calIntervalNative       = "NIRFSG_ATTR_EXTERNAL_CALIBRATION_RECOMMENDED_INTERVAL"
	thermalCorrectionNative = "NIRFSG_ATTR_AUTOMATIC_THERMAL_CORRECTION"
)

// Bound is a Descriptor bound to an open session and channel. Get and
// Set dispatch to the native accessor selected by the scalar type and
// apply the attribute's value translation. Bound holds no cache and
// no lock: every Get is a driver read, every Set a driver write, and
// concurrent use follows the driver's own session rules.
type Bound struct {
	Descriptor

	conn    *driver.Conn
	channel string
}

// Bind attaches the descriptor to a session and channel.
func (d *Descriptor) Bind(conn *driver.Conn, channel string) *Bound {
	return &Bound{Descriptor: *d.clone(), conn: conn, channel: channel}
}

// Get reads the attribute. Enumerated attributes return the symbolic
// name of the native value, or the native value itself when it is
// outside the defined set. The external-calibration interval reads as
// a time.Duration and automatic thermal correction as a bool,
// whatever the table declares for them.
func (b *Bound) Get() (any, error) {
	value, err := b.read()
	if err != nil {
		return nil, err
	}
	switch {
	case b.Enum != nil:
		return b.Enum.symbolFor(value), nil
	case b.NativeName == calIntervalNative:
		return monthsToDuration(value), nil
	case b.NativeName == thermalCorrectionNative:
		return coerceBool(value), nil
	}
	return value, nil
}

// Set writes the attribute. Enumerated attributes accept symbolic
// names; anything else, including symbols outside the defined set,
// passes to the driver as given. Numeric values coerce across Go's
// literal types, so Set(42) on a float attribute works.
func (b *Bound) Set(value any) error {
	if b.Enum != nil {
		value = b.Enum.nativeFor(value)
	}
	switch b.Type {
	case Float64:
		f, ok := toFloat64(value)
		if !ok {
			return b.typeError(value)
		}
		return b.conn.SetAttributeViReal64(b.channel, b.ID, f)
	case Int32:
		n, ok := toInt64(value)
		if !ok {
			return b.typeError(value)
		}
		return b.conn.SetAttributeViInt32(b.channel, b.ID, int32(n))
	case Int64:
		n, ok := toInt64(value)
		if !ok {
			return b.typeError(value)
		}
		return b.conn.SetAttributeViInt64(b.channel, b.ID, n)
	case Bool:
		v, ok := toBool(value)
		if !ok {
			return b.typeError(value)
		}
		return b.conn.SetAttributeViBoolean(b.channel, b.ID, v)
	case String:
		s, ok := value.(string)
		if !ok {
			return b.typeError(value)
		}
		return b.conn.SetAttributeViString(b.channel, b.ID, s)
	}
	return b.typeError(value)
}

func (b *Bound) read() (any, error) {
	switch b.Type {
	case Float64:
		return b.conn.GetAttributeViReal64(b.channel, b.ID)
	case Int32:
		return b.conn.GetAttributeViInt32(b.channel, b.ID)
	case Int64:
		return b.conn.GetAttributeViInt64(b.channel, b.ID)
	case Bool:
		return b.conn.GetAttributeViBoolean(b.channel, b.ID)
	case String:
		return b.conn.GetAttributeViString(b.channel, b.ID)
	}
	return nil, fmt.Errorf("attribute %s: unsupported scalar type %d", b.Name, b.Type)
}

func (b *Bound) typeError(value any) error {
	return fmt.Errorf("set %s: %w: got %T, want %s", b.Name, ErrValueType, value, b.Type)
}

// monthsToDuration converts a month count into a duration the way the
// driver documents the calibration interval: months/12 years at 365
// days per year.
func monthsToDuration(v any) any {
	var months float64
	switch n := v.(type) {
	case int32:
		months = float64(n)
	case int64:
		months = float64(n)
	case float64:
		months = n
	default:
		return v
	}
	days := months / 12 * 365
	return time.Duration(days * 24 * float64(time.Hour))
}

func coerceBool(v any) any {
	switch n := v.(type) {
	case bool:
		return n
	case int32:
		return n != 0
	case int64:
		return n != 0
	case float64:
		return n != 0
	case string:
		return n != ""
	}
	return v
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch n := v.(type) {
	case bool:
		return n, true
	case int:
		return n != 0, true
	case int32:
		return n != 0, true
	case int64:
		return n != 0, true
	}
	return false, false
}
