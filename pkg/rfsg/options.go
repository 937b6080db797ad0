package rfsg

import (
	"github.com/l-johnston/nirfsg/pkg/driver"
	"github.com/l-johnston/nirfsg/pkg/trace"
)

// openConfig collects the Open parameters.
type openConfig struct {
	idQuery bool
	reset   bool
	options string
	library driver.Library
	logger  trace.Logger
}

// defaultOpenConfig returns the defaults: query the device identity,
// no reset, no options string, the platform driver library, no trace
// capture.
func defaultOpenConfig() openConfig {
	return openConfig{idQuery: true}
}

// Option adjusts how Open acquires the session.
type Option func(*openConfig)

// WithIDQuery sets whether the driver verifies the device identity
// during initialization. Default true.
func WithIDQuery(query bool) Option {
	return func(c *openConfig) {
		c.idQuery = query
	}
}

// WithReset sets whether the device is restored to factory defaults
// during initialization. Default false.
func WithReset(reset bool) Option {
	return func(c *openConfig) {
		c.reset = reset
	}
}

// WithOptions supplies a driver options string such as
// "Simulate=1,DriverSetup=Model:5654". When present, Open initializes
// through niRFSG_InitWithOptions instead of niRFSG_init.
func WithOptions(options string) Option {
	return func(c *openConfig) {
		c.options = options
	}
}

// WithLibrary injects the driver library implementation. The default
// is the platform binding to the vendor DLL, which only exists on
// Windows; tests and simulation inject internal doubles here.
func WithLibrary(lib driver.Library) Option {
	return func(c *openConfig) {
		c.library = lib
	}
}

// WithTrace captures every driver call and state transition of the
// session to the given logger.
func WithTrace(logger trace.Logger) Option {
	return func(c *openConfig) {
		c.logger = logger
	}
}
