package driver

// Library is the raw entry-point surface of the NI-RFSG driver: one
// method per vendor entry point, no status checking, no translation.
// Two implementations exist, the Windows DLL binding returned by
// DefaultLibrary and the in-memory simulator backing the test suite.
//
// String-returning entry points manage their output buffers internally
// and return Go strings truncated at the first NUL. Channel arguments
// name a repeated capability and are empty for device-level access.
type Library interface {
	// Session control.
	Init(resource string, idQuery, resetDevice bool) (Session, Status)
	InitWithOptions(resource string, idQuery, resetDevice bool, options string) (Session, Status)
	Close(vi Session) Status
	Reset(vi Session) Status
	ResetDevice(vi Session) Status

	// Generation control.
	Commit(vi Session) Status
	Initiate(vi Session) Status
	Abort(vi Session) Status
	CheckGenerationStatus(vi Session) (done bool, st Status)
	WaitUntilSettled(vi Session, maxMilliseconds int32) Status

	// Configuration shortcuts.
	ConfigureRF(vi Session, frequencyHz, powerDBM float64) Status
	ConfigureOutputEnabled(vi Session, enabled bool) Status

	// Identity and error reporting. ErrorMessage decodes a status code
	// in the context of vi; the zero Session decodes codes from calls
	// made before any session existed.
	ErrorMessage(vi Session, code Status) (string, Status)
	RevisionQuery(vi Session) (driverRev, firmwareRev string, st Status)
	GetChannelName(vi Session, index int32) (string, Status)
	ExternalCalDateAndTime(vi Session) (year, month, day, hour, minute, second int32, st Status)

	// Configuration lists.
	CreateConfigurationList(vi Session, name string, ids []AttributeID, setAsActive bool) Status
	CreateConfigurationListStep(vi Session, setAsActive bool) Status

	// Typed attribute access.
	GetAttributeViReal64(vi Session, channel string, id AttributeID) (float64, Status)
	GetAttributeViInt32(vi Session, channel string, id AttributeID) (int32, Status)
	GetAttributeViInt64(vi Session, channel string, id AttributeID) (int64, Status)
	GetAttributeViBoolean(vi Session, channel string, id AttributeID) (bool, Status)
	GetAttributeViString(vi Session, channel string, id AttributeID) (string, Status)
	SetAttributeViReal64(vi Session, channel string, id AttributeID, value float64) Status
	SetAttributeViInt32(vi Session, channel string, id AttributeID, value int32) Status
	SetAttributeViInt64(vi Session, channel string, id AttributeID, value int64) Status
	SetAttributeViBoolean(vi Session, channel string, id AttributeID, value bool) Status
	SetAttributeViString(vi Session, channel string, id AttributeID, value string) Status
}
