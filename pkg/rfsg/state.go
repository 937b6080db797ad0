package rfsg

// State is the lifecycle state of a device session.
type State uint8

const (
	// Uninitialized means no driver session has been acquired.
	Uninitialized State = 0

	// Configuration means the session is open and idle; attribute
	// writes take effect but the output is not being driven.
	Configuration State = 1

	// Generating means the device is driving its output.
	Generating State = 2

	// Closed means the session has been released. Terminal.
	Closed State = 3
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Configuration:
		return "configuration"
	case Generating:
		return "generating"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
