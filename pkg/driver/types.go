package driver

// Session is an opaque handle to one open driver session (ViSession).
// The zero Session never identifies a live session; error decoding for
// failures that occur before a session exists uses it explicitly.
type Session uint32

// Status is a driver status code (ViStatus). Zero is success, negative
// values are errors and positive values are warnings. The binding
// treats every non-zero status as a failure.
type Status int32

// StatusSuccess is returned by a call that completed without error.
const StatusSuccess Status = 0

// AttributeID identifies a driver attribute (ViAttr).
type AttributeID uint32

// Buffer sizes for string-returning entry points, from the IVI header.
const (
	MaxMessageLen     = 255
	MaxMessageBufSize = MaxMessageLen + 1
)
