//go:build windows

package driver

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// dllLibrary binds the vendor entry points of niRFSG_64.dll. The DLL
// is loaded once by DefaultLibrary; individual entry points resolve
// lazily on first call.
type dllLibrary struct {
	procInit                        *windows.LazyProc
	procInitWithOptions             *windows.LazyProc
	procClose                       *windows.LazyProc
	procReset                       *windows.LazyProc
	procResetDevice                 *windows.LazyProc
	procCommit                      *windows.LazyProc
	procInitiate                    *windows.LazyProc
	procAbort                       *windows.LazyProc
	procCheckGenerationStatus       *windows.LazyProc
	procWaitUntilSettled            *windows.LazyProc
	procConfigureRF                 *windows.LazyProc
	procConfigureOutputEnabled      *windows.LazyProc
	procGetError                    *windows.LazyProc
	procRevisionQuery               *windows.LazyProc
	procGetChannelName              *windows.LazyProc
	procGetExternalCalDateAndTime   *windows.LazyProc
	procCreateConfigurationList     *windows.LazyProc
	procCreateConfigurationListStep *windows.LazyProc
	procGetAttributeViReal64        *windows.LazyProc
	procGetAttributeViInt32         *windows.LazyProc
	procGetAttributeViInt64         *windows.LazyProc
	procGetAttributeViBoolean       *windows.LazyProc
	procGetAttributeViString        *windows.LazyProc
	procSetAttributeViReal64        *windows.LazyProc
	procSetAttributeViInt32         *windows.LazyProc
	procSetAttributeViInt64         *windows.LazyProc
	procSetAttributeViBoolean       *windows.LazyProc
	procSetAttributeViString        *windows.LazyProc
}

var (
	loadOnce sync.Once
	loaded   *dllLibrary
	loadErr  error
)

// DefaultLibrary loads niRFSG_64.dll from the IVI Foundation directory
// and returns the Library bound to it. The load happens once; repeated
// calls return the same instance.
func DefaultLibrary() (Library, error) {
	loadOnce.Do(func() {
		dir := os.Getenv("PROGRAMFILES")
		if dir == "" {
			dir = `C:\Program Files`
		}
		path := filepath.Join(dir, "IVI Foundation", "IVI", "Bin", "niRFSG_64.dll")
		dll := windows.NewLazyDLL(path)
		if err := dll.Load(); err != nil {
			loadErr = fmt.Errorf("nirfsg: loading %s: %w", path, err)
			return
		}
		loaded = &dllLibrary{
			procInit:                        dll.NewProc("niRFSG_init"),
			procInitWithOptions:             dll.NewProc("niRFSG_InitWithOptions"),
			procClose:                       dll.NewProc("niRFSG_close"),
			procReset:                       dll.NewProc("niRFSG_reset"),
			procResetDevice:                 dll.NewProc("niRFSG_ResetDevice"),
			procCommit:                      dll.NewProc("niRFSG_Commit"),
			procInitiate:                    dll.NewProc("niRFSG_Initiate"),
			procAbort:                       dll.NewProc("niRFSG_Abort"),
			procCheckGenerationStatus:       dll.NewProc("niRFSG_CheckGenerationStatus"),
			procWaitUntilSettled:            dll.NewProc("niRFSG_WaitUntilSettled"),
			procConfigureRF:                 dll.NewProc("niRFSG_ConfigureRF"),
			procConfigureOutputEnabled:      dll.NewProc("niRFSG_ConfigureOutputEnabled"),
			procGetError:                    dll.NewProc("niRFSG_GetError"),
			procRevisionQuery:               dll.NewProc("niRFSG_revision_query"),
			procGetChannelName:              dll.NewProc("niRFSG_GetChannelName"),
			procGetExternalCalDateAndTime:   dll.NewProc("niRFSG_GetExternalCalibrationLastDateAndTime"),
			procCreateConfigurationList:     dll.NewProc("niRFSG_CreateConfigurationList"),
			procCreateConfigurationListStep: dll.NewProc("niRFSG_CreateConfigurationListStep"),
			procGetAttributeViReal64:        dll.NewProc("niRFSG_GetAttributeViReal64"),
			procGetAttributeViInt32:         dll.NewProc("niRFSG_GetAttributeViInt32"),
			procGetAttributeViInt64:         dll.NewProc("niRFSG_GetAttributeViInt64"),
			procGetAttributeViBoolean:       dll.NewProc("niRFSG_GetAttributeViBoolean"),
			procGetAttributeViString:        dll.NewProc("niRFSG_GetAttributeViString"),
			procSetAttributeViReal64:        dll.NewProc("niRFSG_SetAttributeViReal64"),
			procSetAttributeViInt32:         dll.NewProc("niRFSG_SetAttributeViInt32"),
			procSetAttributeViInt64:         dll.NewProc("niRFSG_SetAttributeViInt64"),
			procSetAttributeViBoolean:       dll.NewProc("niRFSG_SetAttributeViBoolean"),
			procSetAttributeViString:        dll.NewProc("niRFSG_SetAttributeViString"),
		}
	})
	return loaded, loadErr
}

// callStatus extracts the ViStatus from a syscall return value.
func callStatus(r uintptr) Status {
	return Status(int32(uint32(r)))
}

// cstr returns s as a NUL-terminated byte pointer. An interior NUL
// truncates the string, which is what the C side would read anyway.
func cstr(s string) *byte {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	b, _ := windows.BytePtrFromString(s)
	return b
}

// vibool converts a Go bool to a ViBoolean argument.
func vibool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

// vireal64 converts a ViReal64 argument to its register bit pattern.
// The runtime mirrors the first four arguments into the XMM registers,
// so the callee reads the correct value from either bank.
func vireal64(v float64) uintptr {
	return uintptr(math.Float64bits(v))
}

func (l *dllLibrary) Init(resource string, idQuery, resetDevice bool) (Session, Status) {
	var vi Session
	r, _, _ := syscall.SyscallN(l.procInit.Addr(),
		uintptr(unsafe.Pointer(cstr(resource))),
		vibool(idQuery),
		vibool(resetDevice),
		uintptr(unsafe.Pointer(&vi)),
	)
	return vi, callStatus(r)
}

func (l *dllLibrary) InitWithOptions(resource string, idQuery, resetDevice bool, options string) (Session, Status) {
	var vi Session
	r, _, _ := syscall.SyscallN(l.procInitWithOptions.Addr(),
		uintptr(unsafe.Pointer(cstr(resource))),
		vibool(idQuery),
		vibool(resetDevice),
		uintptr(unsafe.Pointer(cstr(options))),
		uintptr(unsafe.Pointer(&vi)),
	)
	return vi, callStatus(r)
}

func (l *dllLibrary) Close(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procClose.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) Reset(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procReset.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) ResetDevice(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procResetDevice.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) Commit(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procCommit.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) Initiate(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procInitiate.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) Abort(vi Session) Status {
	r, _, _ := syscall.SyscallN(l.procAbort.Addr(), uintptr(vi))
	return callStatus(r)
}

func (l *dllLibrary) CheckGenerationStatus(vi Session) (bool, Status) {
	var done uint16
	r, _, _ := syscall.SyscallN(l.procCheckGenerationStatus.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(&done)),
	)
	return done != 0, callStatus(r)
}

func (l *dllLibrary) WaitUntilSettled(vi Session, maxMilliseconds int32) Status {
	r, _, _ := syscall.SyscallN(l.procWaitUntilSettled.Addr(),
		uintptr(vi),
		uintptr(uint32(maxMilliseconds)),
	)
	return callStatus(r)
}

func (l *dllLibrary) ConfigureRF(vi Session, frequencyHz, powerDBM float64) Status {
	r, _, _ := syscall.SyscallN(l.procConfigureRF.Addr(),
		uintptr(vi),
		vireal64(frequencyHz),
		vireal64(powerDBM),
	)
	return callStatus(r)
}

func (l *dllLibrary) ConfigureOutputEnabled(vi Session, enabled bool) Status {
	r, _, _ := syscall.SyscallN(l.procConfigureOutputEnabled.Addr(),
		uintptr(vi),
		vibool(enabled),
	)
	return callStatus(r)
}

func (l *dllLibrary) ErrorMessage(vi Session, code Status) (string, Status) {
	c := int32(code)
	buf := make([]byte, MaxMessageBufSize)
	r, _, _ := syscall.SyscallN(l.procGetError.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(&c)),
		uintptr(MaxMessageLen),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	return windows.ByteSliceToString(buf), callStatus(r)
}

func (l *dllLibrary) RevisionQuery(vi Session) (string, string, Status) {
	drv := make([]byte, MaxMessageBufSize)
	fw := make([]byte, MaxMessageBufSize)
	r, _, _ := syscall.SyscallN(l.procRevisionQuery.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(&drv[0])),
		uintptr(unsafe.Pointer(&fw[0])),
	)
	return windows.ByteSliceToString(drv), windows.ByteSliceToString(fw), callStatus(r)
}

func (l *dllLibrary) GetChannelName(vi Session, index int32) (string, Status) {
	buf := make([]byte, MaxMessageBufSize)
	r, _, _ := syscall.SyscallN(l.procGetChannelName.Addr(),
		uintptr(vi),
		uintptr(uint32(index)),
		uintptr(MaxMessageLen),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	return windows.ByteSliceToString(buf), callStatus(r)
}

func (l *dllLibrary) ExternalCalDateAndTime(vi Session) (int32, int32, int32, int32, int32, int32, Status) {
	var y, mo, d, h, mi, s int32
	r, _, _ := syscall.SyscallN(l.procGetExternalCalDateAndTime.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(&y)),
		uintptr(unsafe.Pointer(&mo)),
		uintptr(unsafe.Pointer(&d)),
		uintptr(unsafe.Pointer(&h)),
		uintptr(unsafe.Pointer(&mi)),
		uintptr(unsafe.Pointer(&s)),
	)
	return y, mo, d, h, mi, s, callStatus(r)
}

func (l *dllLibrary) CreateConfigurationList(vi Session, name string, ids []AttributeID, setAsActive bool) Status {
	var attrs unsafe.Pointer
	if len(ids) > 0 {
		attrs = unsafe.Pointer(&ids[0])
	}
	r, _, _ := syscall.SyscallN(l.procCreateConfigurationList.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(name))),
		uintptr(uint32(len(ids))),
		uintptr(attrs),
		vibool(setAsActive),
	)
	return callStatus(r)
}

func (l *dllLibrary) CreateConfigurationListStep(vi Session, setAsActive bool) Status {
	r, _, _ := syscall.SyscallN(l.procCreateConfigurationListStep.Addr(),
		uintptr(vi),
		vibool(setAsActive),
	)
	return callStatus(r)
}

func (l *dllLibrary) GetAttributeViReal64(vi Session, channel string, id AttributeID) (float64, Status) {
	var v float64
	r, _, _ := syscall.SyscallN(l.procGetAttributeViReal64.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(unsafe.Pointer(&v)),
	)
	return v, callStatus(r)
}

func (l *dllLibrary) GetAttributeViInt32(vi Session, channel string, id AttributeID) (int32, Status) {
	var v int32
	r, _, _ := syscall.SyscallN(l.procGetAttributeViInt32.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(unsafe.Pointer(&v)),
	)
	return v, callStatus(r)
}

func (l *dllLibrary) GetAttributeViInt64(vi Session, channel string, id AttributeID) (int64, Status) {
	var v int64
	r, _, _ := syscall.SyscallN(l.procGetAttributeViInt64.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(unsafe.Pointer(&v)),
	)
	return v, callStatus(r)
}

func (l *dllLibrary) GetAttributeViBoolean(vi Session, channel string, id AttributeID) (bool, Status) {
	var v uint16
	r, _, _ := syscall.SyscallN(l.procGetAttributeViBoolean.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(unsafe.Pointer(&v)),
	)
	return v != 0, callStatus(r)
}

func (l *dllLibrary) GetAttributeViString(vi Session, channel string, id AttributeID) (string, Status) {
	buf := make([]byte, MaxMessageBufSize)
	r, _, _ := syscall.SyscallN(l.procGetAttributeViString.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(MaxMessageBufSize),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	return windows.ByteSliceToString(buf), callStatus(r)
}

func (l *dllLibrary) SetAttributeViReal64(vi Session, channel string, id AttributeID, value float64) Status {
	r, _, _ := syscall.SyscallN(l.procSetAttributeViReal64.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		vireal64(value),
	)
	return callStatus(r)
}

func (l *dllLibrary) SetAttributeViInt32(vi Session, channel string, id AttributeID, value int32) Status {
	r, _, _ := syscall.SyscallN(l.procSetAttributeViInt32.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(uint32(value)),
	)
	return callStatus(r)
}

func (l *dllLibrary) SetAttributeViInt64(vi Session, channel string, id AttributeID, value int64) Status {
	r, _, _ := syscall.SyscallN(l.procSetAttributeViInt64.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(uint64(value)),
	)
	return callStatus(r)
}

func (l *dllLibrary) SetAttributeViBoolean(vi Session, channel string, id AttributeID, value bool) Status {
	r, _, _ := syscall.SyscallN(l.procSetAttributeViBoolean.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		vibool(value),
	)
	return callStatus(r)
}

func (l *dllLibrary) SetAttributeViString(vi Session, channel string, id AttributeID, value string) Status {
	r, _, _ := syscall.SyscallN(l.procSetAttributeViString.Addr(),
		uintptr(vi),
		uintptr(unsafe.Pointer(cstr(channel))),
		uintptr(id),
		uintptr(unsafe.Pointer(cstr(value))),
	)
	return callStatus(r)
}

// Compile-time interface satisfaction check.
var _ Library = (*dllLibrary)(nil)
