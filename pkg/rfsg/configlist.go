package rfsg

import (
	"fmt"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// ConfigurationList exposes the configuration-list subsystem. A
// configuration list names a set of attributes whose values are
// captured per step; stepping through the list reconfigures the
// device without per-attribute driver calls.
type ConfigurationList struct {
	subsystem

	created []string
}

func newConfigurationList(dev *Device) *ConfigurationList {
	return &ConfigurationList{subsystem: newSubsystem(dev, "configuration_list")}
}

// Create creates a configuration list over the named device-level
// attributes, e.g. "rf_frequency" and "rf_power". Names resolve
// against the owning device's attribute set.
func (l *ConfigurationList) Create(name string, attrNames []string, setAsActive bool) error {
	if err := l.dev.usable(); err != nil {
		return err
	}
	ids := make([]driver.AttributeID, 0, len(attrNames))
	for _, attrName := range attrNames {
		b, ok := l.dev.attrs[attrName]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAttribute, attrName)
		}
		ids = append(ids, b.ID)
	}
	if err := l.dev.conn.CreateConfigurationList(name, ids, setAsActive); err != nil {
		return err
	}
	l.created = append(l.created, name)
	return nil
}

// AddStep appends a step to the active configuration list.
func (l *ConfigurationList) AddStep(setAsActive bool) error {
	if err := l.dev.usable(); err != nil {
		return err
	}
	return l.dev.conn.CreateConfigurationListStep(setAsActive)
}

// Created returns the names of the lists created through this façade,
// in creation order.
func (l *ConfigurationList) Created() []string {
	return append([]string(nil), l.created...)
}
