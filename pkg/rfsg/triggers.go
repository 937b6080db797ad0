package rfsg

// Triggers groups the trigger subsystems of the device.
type Triggers struct {
	// Start is the start-trigger subsystem.
	Start *StartTrigger

	// ConfigurationList is the configuration-list step-trigger
	// subsystem.
	ConfigurationList *ConfigurationListTrigger
}

// newTriggers builds the trigger façades. alwaysHidden names start
// trigger attributes the model never exposes in listings.
func newTriggers(dev *Device, alwaysHidden ...string) *Triggers {
	return &Triggers{
		Start:             newStartTrigger(dev, alwaysHidden...),
		ConfigurationList: newConfigurationListTrigger(dev),
	}
}

// StartTrigger exposes the start-trigger subsystem: the trigger type
// and the parameters of each type.
//
// Listing shows only the parameters of the selected trigger type:
// "none" hides the digital-edge parameters, "digital edge" hides the
// software trigger, "software" hides the digital-edge parameters. The
// filter reads the live type value; if that read fails the listing is
// left unfiltered.
type StartTrigger struct {
	subsystem

	alwaysHidden []string
}

func newStartTrigger(dev *Device, alwaysHidden ...string) *StartTrigger {
	t := &StartTrigger{
		subsystem:    newSubsystem(dev, "start_trigger"),
		alwaysHidden: alwaysHidden,
	}
	t.visible = t.filterByType
	return t
}

func (t *StartTrigger) filterByType(names []string) []string {
	names = without(names, t.alwaysHidden...)
	trigType, ok := t.attrs["type"]
	if !ok {
		return names
	}
	value, err := trigType.Get()
	if err != nil {
		return names
	}
	switch value {
	case "none":
		return without(names, "edge", "source")
	case "digital edge":
		return without(names, "software")
	case "software":
		return without(names, "edge", "source")
	}
	return names
}

// ConfigurationListTrigger exposes the configuration-list step-trigger
// subsystem.
type ConfigurationListTrigger struct {
	subsystem
}

func newConfigurationListTrigger(dev *Device) *ConfigurationListTrigger {
	return &ConfigurationListTrigger{subsystem: newSubsystem(dev, "configurationlist_trigger")}
}
