package rfsg

import "time"

// ExternalCal exposes the external-calibration subsystem: the
// recommended calibration interval, the calibration temperature, and
// the date of the last external calibration.
type ExternalCal struct {
	subsystem
}

func newExternalCal(dev *Device) *ExternalCal {
	return &ExternalCal{subsystem: newSubsystem(dev, "external_cal")}
}

// Date returns when the device was last externally calibrated.
func (c *ExternalCal) Date() (time.Time, error) {
	if err := c.dev.usable(); err != nil {
		return time.Time{}, err
	}
	return c.dev.conn.ExternalCalDateAndTime()
}
