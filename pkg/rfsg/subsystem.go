package rfsg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/l-johnston/nirfsg/pkg/attributes"
	"github.com/l-johnston/nirfsg/pkg/driver"
)

// bindSet selects the attributes of one subsystem for the connected
// model and binds them to the session.
func bindSet(conn *driver.Conn, channel, model, tag string) map[string]*attributes.Bound {
	descriptors := attributes.Default().Select(model, tag)
	set := make(map[string]*attributes.Bound, len(descriptors))
	for _, d := range descriptors {
		set[d.Name] = d.Bind(conn, channel)
	}
	return set
}

// subsystem is the shared core of every façade: a back-reference to
// the owning device, the disjoint attribute set selected at
// construction, and an optional visibility filter applied when
// listing. The filter never affects Get or Set.
type subsystem struct {
	dev     *Device
	attrs   map[string]*attributes.Bound
	visible func(names []string) []string
}

// newSubsystem binds the attribute set of one subsystem tag for the
// owner's connected model.
func newSubsystem(dev *Device, tag string) subsystem {
	return subsystem{
		dev:   dev,
		attrs: bindSet(dev.conn, dev.channel, dev.model, tag),
	}
}

// Get reads an attribute of this subsystem by display name. Hidden
// attributes are readable.
func (s *subsystem) Get(name string) (any, error) {
	if err := s.dev.usable(); err != nil {
		return nil, err
	}
	b, ok := s.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return b.Get()
}

// Set writes an attribute of this subsystem by display name. Hidden
// attributes are writable.
func (s *subsystem) Set(name string, value any) error {
	if err := s.dev.usable(); err != nil {
		return err
	}
	b, ok := s.attrs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return b.Set(value)
}

// Attributes returns the sorted display names the subsystem currently
// exposes, after the visibility filter.
func (s *subsystem) Attributes() []string {
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	if s.visible != nil {
		names = s.visible(names)
	}
	return names
}

// without returns names minus the given entries.
func without(names []string, hidden ...string) []string {
	kept := names[:0]
	for _, name := range names {
		drop := false
		for _, h := range hidden {
			if name == h {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, name)
		}
	}
	return kept
}

// withoutPrefixes returns names minus those starting with any of the
// given prefixes.
func withoutPrefixes(names []string, prefixes ...string) []string {
	kept := names[:0]
	for _, name := range names {
		drop := false
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, name)
		}
	}
	return kept
}
