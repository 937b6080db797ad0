package sim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

// Status codes the simulator reports, in the driver's negative range.
const (
	StatusDeviceNotFound   driver.Status = -1074097930
	StatusBadOptions       driver.Status = -1074097931
	StatusUnknownSession   driver.Status = -1074097932
	StatusInvalidParameter driver.Status = -1074097933
	StatusNotInitiated     driver.Status = -1074097934
)

// codeText is the static decode table for codes with no recorded
// context.
var codeText = map[driver.Status]string{
	StatusDeviceNotFound:   "Specified resource not found.",
	StatusBadOptions:       "Invalid value for option string.",
	StatusUnknownSession:   "The given session handle is not valid.",
	StatusInvalidParameter: "Invalid value for parameter.",
	StatusNotInitiated:     "Generation is not initiated.",
}

// modelNames maps the DriverSetup model numbers onto full model names.
var modelNames = map[string]string{
	"5644": "PXIe-5644",
	"5645": "PXIe-5645",
	"5646": "PXIe-5646",
	"5650": "PXI-5650",
	"5651": "PXI-5651",
	"5652": "PXI-5652",
	"5653": "PXI-5653",
	"5654": "PXIe-5654",
	"5673": "PXIe-5673",
}

// DefaultModel is simulated when the options string pins no model.
const DefaultModel = "PXI-5652"

type errorRecord struct {
	code    driver.Status
	message string
}

type valueKey struct {
	channel string
	id      driver.AttributeID
}

type session struct {
	resource   string
	model      string
	generating bool
	committed  bool
	values     map[valueKey]any
	lists      map[string][]driver.AttributeID
	activeList string
	steps      int
}

// Simulator is an in-memory driver.Library. The zero value is not
// usable; construct with New. Safe for concurrent use.
type Simulator struct {
	mu         sync.Mutex
	nextHandle driver.Session
	sessions   map[driver.Session]*session
	resources  map[string]string
	lastError  map[driver.Session]errorRecord
}

// New returns a simulator with no registered resources. Sessions can
// still be opened against any resource via InitWithOptions with
// "Simulate=1".
func New() *Simulator {
	return &Simulator{
		nextHandle: 1,
		sessions:   make(map[driver.Session]*session),
		resources:  make(map[string]string),
		lastError:  make(map[driver.Session]errorRecord),
	}
}

// AddResource registers a resource name that plain Init can open,
// simulating an instrument of the given model, e.g. "PXIe-5654".
func (s *Simulator) AddResource(resource, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[resource] = model
}

// fail records a failure for error decoding and returns the code.
func (s *Simulator) fail(vi driver.Session, code driver.Status, message string) driver.Status {
	s.lastError[vi] = errorRecord{code: code, message: message}
	return code
}

// open allocates a new session for the given model.
func (s *Simulator) open(resource, model string) driver.Session {
	vi := s.nextHandle
	s.nextHandle++
	sess := &session{
		resource: resource,
		model:    model,
		values:   make(map[valueKey]any),
		lists:    make(map[string][]driver.AttributeID),
	}
	seed(sess)
	s.sessions[vi] = sess
	return vi
}

// seed populates the defaults of a fresh or reset device.
func seed(sess *session) {
	dv := func(id driver.AttributeID, v any) {
		sess.values[valueKey{"", id}] = v
	}
	dv(driver.InstrumentModel, "NI "+sess.model)
	dv(driver.InstrumentManufacturer, "National Instruments")
	dv(driver.InstrumentFirmwareRevision, "Not available")
	dv(driver.SerialNumber, "03FA2B1C")
	dv(driver.Simulate, true)
	dv(driver.AnalogModulationType, int32(2200))
	dv(driver.StartTriggerType, int32(2200))
	dv(driver.ConfigurationListStepTriggerType, int32(2200))
	dv(driver.OutputEnabled, false)
	dv(driver.AutomaticThermalCorrection, int32(1))
	dv(driver.RefClockSource, "OnboardClock")
	dv(driver.ExternalCalibrationRecommendedInterval, int32(24))
	dv(driver.ExternalCalibrationTemperature, 23.0)
	dv(driver.MemorySize, int64(268435456))
}

// lookup returns the session behind a handle, recording a failure for
// stale or never-issued handles.
func (s *Simulator) lookup(vi driver.Session) (*session, driver.Status) {
	sess, ok := s.sessions[vi]
	if !ok {
		return nil, s.fail(vi, StatusUnknownSession, codeText[StatusUnknownSession])
	}
	return sess, driver.StatusSuccess
}

func (s *Simulator) Init(resource string, idQuery, resetDevice bool) (driver.Session, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	model, ok := s.resources[resource]
	if !ok {
		return 0, s.fail(0, StatusDeviceNotFound,
			fmt.Sprintf("Specified resource not found: %q.", resource))
	}
	return s.open(resource, model), driver.StatusSuccess
}

func (s *Simulator) InitWithOptions(resource string, idQuery, resetDevice bool, options string) (driver.Session, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	simulate, model, code, detail := parseOptions(options)
	if code != driver.StatusSuccess {
		return 0, s.fail(0, code, detail)
	}
	if !simulate {
		registered, ok := s.resources[resource]
		if !ok {
			return 0, s.fail(0, StatusDeviceNotFound,
				fmt.Sprintf("Specified resource not found: %q.", resource))
		}
		model = registered
	}
	return s.open(resource, model), driver.StatusSuccess
}

// parseOptions interprets a driver options string, a comma-separated
// list of Key=Value pairs. Recognized keys are Simulate (0 or 1) and
// DriverSetup (Model:<number or name>).
func parseOptions(options string) (simulate bool, model string, code driver.Status, detail string) {
	model = DefaultModel
	if options == "" {
		return false, model, driver.StatusSuccess, ""
	}
	for _, pair := range strings.Split(options, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return false, "", StatusBadOptions,
				fmt.Sprintf("Invalid option string: %q is not a Key=Value pair.", pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Simulate":
			switch value {
			case "1":
				simulate = true
			case "0":
				simulate = false
			default:
				return false, "", StatusBadOptions,
					fmt.Sprintf("Invalid option string: Simulate must be 0 or 1, got %q.", value)
			}
		case "DriverSetup":
			spec, ok := strings.CutPrefix(value, "Model:")
			if !ok {
				return false, "", StatusBadOptions,
					fmt.Sprintf("Invalid option string: DriverSetup %q lacks a Model: entry.", value)
			}
			switch {
			case modelNames[spec] != "":
				model = modelNames[spec]
			case strings.HasPrefix(spec, "PXI"):
				model = spec
			default:
				return false, "", StatusBadOptions,
					fmt.Sprintf("Invalid option string: unrecognized model %q.", spec)
			}
		default:
			return false, "", StatusBadOptions,
				fmt.Sprintf("Invalid option string: unrecognized option %q.", key)
		}
	}
	return simulate, model, driver.StatusSuccess, ""
}

func (s *Simulator) Close(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, st := s.lookup(vi); st != driver.StatusSuccess {
		return st
	}
	delete(s.sessions, vi)
	return driver.StatusSuccess
}

func (s *Simulator) Reset(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	s.restoreDefaults(sess)
	return driver.StatusSuccess
}

func (s *Simulator) ResetDevice(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	s.restoreDefaults(sess)
	return driver.StatusSuccess
}

func (s *Simulator) restoreDefaults(sess *session) {
	sess.values = make(map[valueKey]any)
	sess.lists = make(map[string][]driver.AttributeID)
	sess.activeList = ""
	sess.steps = 0
	sess.generating = false
	sess.committed = false
	seed(sess)
}

func (s *Simulator) Commit(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.committed = true
	return driver.StatusSuccess
}

func (s *Simulator) Initiate(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.generating = true
	sess.committed = true
	return driver.StatusSuccess
}

func (s *Simulator) Abort(vi driver.Session) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.generating = false
	return driver.StatusSuccess
}

func (s *Simulator) CheckGenerationStatus(vi driver.Session) (bool, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return false, st
	}
	return !sess.generating, driver.StatusSuccess
}

func (s *Simulator) WaitUntilSettled(vi driver.Session, maxMilliseconds int32) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, st := s.lookup(vi)
	return st
}

func (s *Simulator) ConfigureRF(vi driver.Session, frequencyHz, powerDBM float64) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.values[valueKey{"", driver.Frequency}] = frequencyHz
	sess.values[valueKey{"", driver.PowerLevel}] = powerDBM
	return driver.StatusSuccess
}

func (s *Simulator) ConfigureOutputEnabled(vi driver.Session, enabled bool) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	sess.values[valueKey{"", driver.OutputEnabled}] = enabled
	return driver.StatusSuccess
}

func (s *Simulator) ErrorMessage(vi driver.Session, code driver.Status) (string, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.lastError[vi]; ok && rec.code == code {
		return rec.message, driver.StatusSuccess
	}
	if text, ok := codeText[code]; ok {
		return text, driver.StatusSuccess
	}
	return fmt.Sprintf("Unknown status code %d.", int32(code)), driver.StatusSuccess
}

func (s *Simulator) RevisionQuery(vi driver.Session) (string, string, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, st := s.lookup(vi); st != driver.StatusSuccess {
		return "", "", st
	}
	return "Driver: NI-RFSG 24.5.0", "Not available", driver.StatusSuccess
}

func (s *Simulator) GetChannelName(vi driver.Session, index int32) (string, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, st := s.lookup(vi); st != driver.StatusSuccess {
		return "", st
	}
	if index != 0 {
		return "", s.fail(vi, StatusInvalidParameter,
			fmt.Sprintf("Channel index %d out of range.", index))
	}
	return "0", driver.StatusSuccess
}

func (s *Simulator) ExternalCalDateAndTime(vi driver.Session) (int32, int32, int32, int32, int32, int32, driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, st := s.lookup(vi); st != driver.StatusSuccess {
		return 0, 0, 0, 0, 0, 0, st
	}
	return 2020, 1, 1, 0, 0, 0, driver.StatusSuccess
}

func (s *Simulator) CreateConfigurationList(vi driver.Session, name string, ids []driver.AttributeID, setAsActive bool) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	if name == "" {
		return s.fail(vi, StatusInvalidParameter, "Configuration list name must not be empty.")
	}
	sess.lists[name] = append([]driver.AttributeID(nil), ids...)
	if setAsActive {
		sess.activeList = name
		sess.steps = 0
		sess.values[valueKey{"", driver.ActiveConfigurationList}] = name
	}
	return driver.StatusSuccess
}

func (s *Simulator) CreateConfigurationListStep(vi driver.Session, setAsActive bool) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, st := s.lookup(vi)
	if st != driver.StatusSuccess {
		return st
	}
	if sess.activeList == "" {
		return s.fail(vi, StatusInvalidParameter, "No active configuration list.")
	}
	sess.steps++
	if setAsActive {
		sess.values[valueKey{"", driver.ActiveConfigurationListStep}] = int32(sess.steps - 1)
	}
	return driver.StatusSuccess
}

// Compile-time interface satisfaction check.
var _ driver.Library = (*Simulator)(nil)
