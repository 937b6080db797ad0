package rfsg

// Clock exposes the reference-clock subsystem: clock source, rate and
// output terminal routing.
type Clock struct {
	subsystem
}

func newClock(dev *Device) *Clock {
	return &Clock{subsystem: newSubsystem(dev, "clock")}
}
