package rfsg

// Events exposes the events subsystem: output terminal routing for
// the started, done and step-complete events.
type Events struct {
	subsystem
}

func newEvents(dev *Device) *Events {
	return &Events{subsystem: newSubsystem(dev, "events")}
}
