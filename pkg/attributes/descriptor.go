package attributes

import (
	"strings"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// ScalarType identifies which native accessor pair an attribute uses.
type ScalarType uint8

const (
	// Float64 dispatches to the ViReal64 accessors.
	Float64 ScalarType = 0

	// Int32 dispatches to the ViInt32 accessors.
	Int32 ScalarType = 1

	// Int64 dispatches to the ViInt64 accessors.
	Int64 ScalarType = 2

	// Bool dispatches to the ViBoolean accessors.
	Bool ScalarType = 3

	// String dispatches to the ViString accessors.
	String ScalarType = 4
)

// String returns the scalar type name.
func (t ScalarType) String() string {
	switch t {
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// scalarTypeFor maps the table's native type names onto ScalarType.
func scalarTypeFor(cType string) (ScalarType, bool) {
	switch cType {
	case "ViReal64":
		return Float64, true
	case "ViInt32":
		return Int32, true
	case "ViInt64":
		return Int64, true
	case "ViBoolean":
		return Bool, true
	case "ViString":
		return String, true
	default:
		return 0, false
	}
}

// SupportedModels is the set of instrument models an attribute exists
// on, as listed in the table.
type SupportedModels []string

// Supports reports whether the attribute is available on the given
// instrument model. The table stores model fragments such as
// "PXIe-5654" while the driver reports "NI PXIe-5654", so an entry
// matches when the reported model contains it. The entry "all"
// matches every model.
func (m SupportedModels) Supports(model string) bool {
	for _, entry := range m {
		if entry == "all" || strings.Contains(model, entry) {
			return true
		}
	}
	return false
}

// EnumValues is the defined-value set of an enumerated attribute:
// symbolic names in table order mapped to the native values the
// driver accepts. Native values are int64 or string depending on the
// attribute. Immutable after load.
type EnumValues struct {
	names      []string
	toNative   map[string]any
	fromInt    map[int64]string
	fromString map[string]string
}

// Names returns the symbolic names in table order.
func (e *EnumValues) Names() []string {
	return append([]string(nil), e.names...)
}

// Native returns the native value behind a symbolic name.
func (e *EnumValues) Native(symbol string) (any, bool) {
	v, ok := e.toNative[symbol]
	return v, ok
}

// add appends one symbolic-name/native-value pair during table load.
func (e *EnumValues) add(symbol string, native any) {
	if _, dup := e.toNative[symbol]; !dup {
		e.names = append(e.names, symbol)
	}
	e.toNative[symbol] = native
	switch v := native.(type) {
	case int64:
		e.fromInt[v] = symbol
	case string:
		e.fromString[v] = symbol
	}
}

// symbolFor translates a native value to its symbolic name. Values
// outside the defined set come back unchanged; the table declares the
// value space and anything else is the driver's to explain.
func (e *EnumValues) symbolFor(native any) any {
	switch v := native.(type) {
	case int32:
		if name, ok := e.fromInt[int64(v)]; ok {
			return name
		}
	case int64:
		if name, ok := e.fromInt[v]; ok {
			return name
		}
	case string:
		if name, ok := e.fromString[v]; ok {
			return name
		}
	}
	return native
}

// nativeFor translates a symbolic name to its native value. Anything
// that is not a known symbolic name passes through unchanged and the
// driver rejects it if invalid.
func (e *EnumValues) nativeFor(value any) any {
	if name, ok := value.(string); ok {
		if native, ok := e.toNative[name]; ok {
			return native
		}
	}
	return value
}

// symbolName derives the symbolic name from an enumeration constant
// name: the text after the last "_VAL_", underscores as spaces, any
// " STR" marker removed, lower-cased. NIRFSG_VAL_ONBOARD_CLOCK_STR
// becomes "onboard clock".
func symbolName(constName string) string {
	parts := strings.Split(constName, "_VAL_")
	s := parts[len(parts)-1]
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, " STR", "")
	return strings.ToLower(s)
}

// Descriptor is one attribute table row: a driver attribute with its
// numeric id, scalar type, display name, owning subsystem, supported
// models and optional defined-value set. Immutable after load; Select
// hands out copies.
type Descriptor struct {
	// NativeName is the driver's constant name, e.g.
	// "NIRFSG_ATTR_FREQUENCY".
	NativeName string

	// ID is the numeric attribute identifier passed to the driver.
	ID driver.AttributeID

	// Type selects the native accessor pair.
	Type ScalarType

	// Name is the display name callers address the attribute by,
	// e.g. "rf_frequency".
	Name string

	// Subsystem is the owning subsystem tag, e.g. "channel".
	Subsystem string

	// Models lists the instrument models the attribute exists on.
	Models SupportedModels

	// Enum is the defined-value set, nil for free-form attributes.
	Enum *EnumValues
}

// clone returns an independent copy. The EnumValues pointer is shared;
// the set is immutable after load.
func (d *Descriptor) clone() *Descriptor {
	c := *d
	c.Models = append(SupportedModels(nil), d.Models...)
	return &c
}
