package driver

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by DefaultLibrary on platforms the vendor
// driver does not ship for.
var ErrUnavailable = errors.New("nirfsg: vendor driver not available on this platform")

// Error is the single failure kind the driver reports: a non-zero
// status code together with the message text decoded through
// niRFSG_GetError. Every native failure surfaces as *Error; the
// binding draws no finer distinction between failure categories.
type Error struct {
	Code    Status
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("nirfsg: status %d", int32(e.Code))
	}
	return fmt.Sprintf("nirfsg: %s (status %d)", e.Message, int32(e.Code))
}
