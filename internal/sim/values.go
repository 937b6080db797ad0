package sim

import (
	"fmt"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// value returns the stored value for a channel and id. Channel-scoped
// reads fall back to the device-level value, matching how the driver
// exposes device attributes through any channel string.
func (sess *session) value(channel string, id driver.AttributeID) any {
	if v, ok := sess.values[valueKey{channel, id}]; ok {
		return v
	}
	return sess.values[valueKey{"", id}]
}

func (s *Simulator) GetAttributeViReal64(vi driver.Session, channel string, id driver.AttributeID) (float64, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return 0, st
	}
	return asFloat64(sess.value(channel, id)), driver.StatusSuccess
}

func (s *Simulator) GetAttributeViInt32(vi driver.Session, channel string, id driver.AttributeID) (int32, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return 0, st
	}
	return int32(asInt64(sess.value(channel, id))), driver.StatusSuccess
}

func (s *Simulator) GetAttributeViInt64(vi driver.Session, channel string, id driver.AttributeID) (int64, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return 0, st
	}
	return asInt64(sess.value(channel, id)), driver.StatusSuccess
}

func (s *Simulator) GetAttributeViBoolean(vi driver.Session, channel string, id driver.AttributeID) (bool, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return false, st
	}
	return asBool(sess.value(channel, id)), driver.StatusSuccess
}

func (s *Simulator) GetAttributeViString(vi driver.Session, channel string, id driver.AttributeID) (string, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return "", st
	}
	return asString(sess.value(channel, id)), driver.StatusSuccess
}

func (s *Simulator) SetAttributeViReal64(vi driver.Session, channel string, id driver.AttributeID, value float64) driver.Status {
	return s.store(vi, channel, id, value)
}

func (s *Simulator) SetAttributeViInt32(vi driver.Session, channel string, id driver.AttributeID, value int32) driver.Status {
	return s.store(vi, channel, id, value)
}

func (s *Simulator) SetAttributeViInt64(vi driver.Session, channel string, id driver.AttributeID, value int64) driver.Status {
	return s.store(vi, channel, id, value)
}

func (s *Simulator) SetAttributeViBoolean(vi driver.Session, channel string, id driver.AttributeID, value bool) driver.Status {
	return s.store(vi, channel, id, value)
}

func (s *Simulator) SetAttributeViString(vi driver.Session, channel string, id driver.AttributeID, value string) driver.Status {
	return s.store(vi, channel, id, value)
}

func (s *Simulator) store(vi driver.Session, channel string, id driver.AttributeID, value any) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.values[valueKey{channel, id}] = value
	return driver.StatusSuccess
}

// Coercions between the stored representation and the requested
// scalar type. The last write wins whatever its type; a read through
// a different accessor converts.

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return 0
}

func asBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case int32:
		return n != 0
	case int64:
		return n != 0
	case float64:
		return n != 0
	case string:
		return n != ""
	}
	return false
}

func asString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	default:
		return fmt.Sprint(n)
	}
}
