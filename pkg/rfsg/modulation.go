package rfsg

// AnalogModulation exposes the analog-modulation subsystem: the
// modulation mode, the per-mode sensitivities, and the internal
// waveform generator.
//
// Listing shows only the sensitivity family of the selected mode: with
// mode "am" the fm/pm attributes are hidden, with mode "none" all
// three families are. The filter reads the live mode value; if that
// read fails the listing is left unfiltered.
type AnalogModulation struct {
	subsystem
}

func newAnalogModulation(dev *Device) *AnalogModulation {
	m := &AnalogModulation{subsystem: newSubsystem(dev, "analog_modulation")}
	m.visible = m.filterByMode
	return m
}

func (m *AnalogModulation) filterByMode(names []string) []string {
	mode, ok := m.attrs["mode"]
	if !ok {
		return names
	}
	value, err := mode.Get()
	if err != nil {
		return names
	}
	switch value {
	case "none":
		return withoutPrefixes(names, "am", "fm", "pm")
	case "am":
		return withoutPrefixes(names, "fm", "pm")
	case "fm":
		return withoutPrefixes(names, "am", "pm")
	case "pm":
		return withoutPrefixes(names, "am", "fm")
	}
	return names
}
