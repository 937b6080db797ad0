package trace

import "time"

// Event represents one captured driver interaction.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the interaction began (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID correlates all events of one open session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Resource is the driver resource descriptor. Populated on session
	// open events, empty elsewhere.
	Resource string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (exactly one is set).
	Call        *CallEvent        `cbor:"5,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`
}

// Failed reports whether the event records a call that returned a
// non-zero status.
func (e Event) Failed() bool {
	return e.Call != nil && e.Call.Status != 0
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCall indicates an entry-point invocation.
	CategoryCall Category = 0
	// CategoryState indicates a session state change.
	CategoryState Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCall:
		return "CALL"
	case CategoryState:
		return "STATE"
	default:
		return "UNKNOWN"
	}
}

// CallEvent captures one invocation of a driver entry point.
type CallEvent struct {
	// Entry is the vendor entry-point name, e.g. "niRFSG_Initiate".
	Entry string `cbor:"1,keyasint"`

	// Channel is the repeated-capability name, empty for device-level
	// calls.
	Channel string `cbor:"2,keyasint,omitempty"`

	// Attribute is the ViAttr id for attribute accessors, zero
	// otherwise.
	Attribute uint32 `cbor:"3,keyasint,omitempty"`

	// Status is the ViStatus the call returned (zero on success).
	Status int32 `cbor:"4,keyasint,omitempty"`

	// Duration is the round-trip time of the native call.
	// Stored as nanoseconds.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`

	// Message is the decoded error text for failed calls.
	Message string `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}
