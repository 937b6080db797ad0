//go:build !windows

package driver

// DefaultLibrary returns ErrUnavailable: the vendor only ships NI-RFSG
// for Windows. Non-Windows hosts inject a Library implementation, such
// as the simulator used by the test suite.
func DefaultLibrary() (Library, error) {
	return nil, ErrUnavailable
}
