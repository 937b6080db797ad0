package rfsg

import (
	"fmt"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// PXIe5654 is the device façade for the PXIe-5654 20 GHz analog
// signal generator: the device core plus one field per subsystem.
//
// The attribute sets behind the device and each subsystem are
// resolved once, at Open, for the connected model.
type PXIe5654 struct {
	*Device

	// Modulation is the analog-modulation subsystem.
	Modulation *AnalogModulation

	// Clock is the reference-clock subsystem.
	Clock *Clock

	// ConfigurationList is the configuration-list subsystem.
	ConfigurationList *ConfigurationList

	// Triggers groups the trigger subsystems.
	Triggers *Triggers

	// Events is the events subsystem.
	Events *Events

	// ExternalCal is the external-calibration subsystem.
	ExternalCal *ExternalCal
}

// newPXIe5654 assembles the façade tree. The PXIe-5654 has no
// software start trigger, so its start-trigger listing always hides
// it.
func newPXIe5654(dev *Device) *PXIe5654 {
	return &PXIe5654{
		Device:            dev,
		Modulation:        newAnalogModulation(dev),
		Clock:             newClock(dev),
		ConfigurationList: newConfigurationList(dev),
		Triggers:          newTriggers(dev, "software"),
		Events:            newEvents(dev),
		ExternalCal:       newExternalCal(dev),
	}
}

// Open acquires a session to the signal generator at the given
// resource, such as "PXI1Slot2", and returns its device façade in the
// configuration state. When an options string is supplied the session
// initializes through niRFSG_InitWithOptions, otherwise through
// niRFSG_init. Failures before a session exists decode through the
// driver's zero session.
//
// The caller owns the returned device and must Close it.
func Open(resource string, opts ...Option) (*PXIe5654, error) {
	cfg := defaultOpenConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lib := cfg.library
	if lib == nil {
		var err error
		lib, err = driver.DefaultLibrary()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", resource, err)
		}
	}

	conn := driver.NewConn(lib, cfg.logger)
	var err error
	if cfg.options == "" {
		err = conn.Init(resource, cfg.idQuery, cfg.reset)
	} else {
		err = conn.InitWithOptions(resource, cfg.idQuery, cfg.reset, cfg.options)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", resource, err)
	}

	model, err := conn.GetAttributeViString("", driver.InstrumentModel)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open %s: query model: %w", resource, err)
	}

	dev := newDevice(conn, resource, model)
	dev.setState(Configuration, "open")
	return newPXIe5654(dev), nil
}
