// Package driver provides the native call surface of the NI-RFSG
// vendor driver.
//
// The Library interface mirrors the driver's C entry points one to
// one: raw calls that return a Status and perform no translation. Conn
// wraps a Library and an open Session with the checked call layer the
// rest of the module uses: every non-zero status is decoded through
// niRFSG_GetError and returned as *Error, and every call is reported
// to a trace.Logger.
//
// # Scalar Types
//
// The driver speaks IVI/VISA scalar types. Session (ViSession) and
// AttributeID (ViAttr) are unsigned 32-bit values, Status (ViStatus)
// is a signed 32-bit value, ViBoolean crosses the boundary as a 16-bit
// 0/1, and ViReal64/ViInt32/ViInt64/ViString map to float64, int32,
// int64 and NUL-terminated byte buffers.
//
// # Loading
//
// On Windows, DefaultLibrary binds niRFSG_64.dll from the IVI
// Foundation directory. The vendor ships no driver for other
// platforms, so DefaultLibrary returns ErrUnavailable there; tests and
// simulation inject a Library implementation instead.
package driver
