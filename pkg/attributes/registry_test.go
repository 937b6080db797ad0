package attributes

import (
	"strings"
	"sync"
	"testing"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

func load(t *testing.T, table string) *Registry {
	t.Helper()
	reg, err := Load(strings.NewReader(table))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return reg
}

func TestLoadSkipsHeaderAndEmptyDisplayName(t *testing.T) {
	reg := load(t, strings.Join([]string{
		"c_api_name,id,c_type,name,subsystem,num_supported_models,supported_models,num_defined_values,defined_values",
		"NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,1,all,0",
		"NIRFSG_ATTR_LOAD_CONFIGURATIONS_FROM_FILE,1150300,ViString,,channel,1,all,0",
	}, "\n"))

	if _, ok := reg.Lookup("rf_frequency"); !ok {
		t.Error("rf_frequency should be loaded")
	}
	if got := len(reg.byName); got != 1 {
		t.Errorf("expected 1 descriptor, got %d", got)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad id", "NIRFSG_ATTR_FREQUENCY,not-a-number,ViReal64,rf_frequency,channel,1,all,0"},
		{"unknown type", "NIRFSG_ATTR_IO_SESSION,1150301,ViSession,io_session,model,1,all,0"},
		{"short row", "NIRFSG_ATTR_FREQUENCY,1250001,ViReal64"},
		{"bad model count", "NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,many,all,0"},
		{"model count overruns row", "NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,5,all,0"},
		{"enum pairs overrun row", "NIRFSG_ATTR_MODE,1150045,ViInt32,mode,analog_modulation,1,all,3,NIRFSG_VAL_NONE,2200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := load(t, tt.row)
			if got := len(reg.byName); got != 0 {
				t.Errorf("expected row to be skipped, got %d descriptors", got)
			}
		})
	}
}

func TestLoadDescriptorFields(t *testing.T) {
	reg := load(t, "NIRFSG_ATTR_POWER_LEVEL,1250002,ViReal64,rf_power,channel,2,PXIe-5654,PXI-5652,0")

	d, ok := reg.Lookup("rf_power")
	if !ok {
		t.Fatal("rf_power not loaded")
	}
	if d.NativeName != "NIRFSG_ATTR_POWER_LEVEL" {
		t.Errorf("NativeName: got %q", d.NativeName)
	}
	if d.ID != driver.AttributeID(1250002) {
		t.Errorf("ID: got %d", d.ID)
	}
	if d.Type != Float64 {
		t.Errorf("Type: got %v", d.Type)
	}
	if d.Subsystem != "channel" {
		t.Errorf("Subsystem: got %q", d.Subsystem)
	}
	if len(d.Models) != 2 || d.Models[0] != "PXIe-5654" || d.Models[1] != "PXI-5652" {
		t.Errorf("Models: got %v", d.Models)
	}
	if d.Enum != nil {
		t.Error("Enum should be nil for a zero-count row")
	}
}

func TestLoadEmptyEnumCountField(t *testing.T) {
	// The table leaves the defined-values count empty on some rows.
	reg := load(t, "NIRFSG_ATTR_INSTRUMENT_MODEL,1050512,ViString,model,model,1,all,")

	d, ok := reg.Lookup("model")
	if !ok {
		t.Fatal("model not loaded")
	}
	if d.Enum != nil {
		t.Error("empty count field should mean no defined values")
	}
}

func TestLoadEnumSymbolDerivation(t *testing.T) {
	reg := load(t, strings.Join([]string{
		"NIRFSG_ATTR_REF_CLOCK_SOURCE,1150001,ViString,reference_source,clock,1,all,2,NIRFSG_VAL_ONBOARD_CLOCK_STR,OnboardClock,NIRFSG_VAL_REF_IN_STR,RefIn",
		"NIRFSG_ATTR_START_TRIGGER_TYPE,1150151,ViInt32,type,start_trigger,1,all,2,NIRFSG_VAL_NONE,2200,NIRFSG_VAL_DIGITAL_EDGE,2201",
	}, "\n"))

	clock, _ := reg.Lookup("reference_source")
	if clock.Enum == nil {
		t.Fatal("reference_source should carry defined values")
	}
	names := clock.Enum.Names()
	if len(names) != 2 || names[0] != "onboard clock" || names[1] != "ref in" {
		t.Errorf("symbolic names: got %v", names)
	}
	if v, ok := clock.Enum.Native("onboard clock"); !ok || v != "OnboardClock" {
		t.Errorf("native for onboard clock: got %v, %v", v, ok)
	}

	trig, _ := reg.Lookup("type")
	names = trig.Enum.Names()
	if len(names) != 2 || names[0] != "none" || names[1] != "digital edge" {
		t.Errorf("symbolic names: got %v", names)
	}
	if v, ok := trig.Enum.Native("digital edge"); !ok || v != int64(2201) {
		t.Errorf("native for digital edge: got %v (%T), %v", v, v, ok)
	}
}

func TestLoadDuplicateDisplayNameLastWins(t *testing.T) {
	reg := load(t, strings.Join([]string{
		"NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,1,all,0",
		"NIRFSG_ATTR_FREQUENCY_OVERRIDE,1150999,ViReal64,rf_frequency,channel,1,all,0",
	}, "\n"))

	d, _ := reg.Lookup("rf_frequency")
	if d.ID != driver.AttributeID(1150999) {
		t.Errorf("expected the later row to win, got id %d", d.ID)
	}
}

func TestSupportedModels(t *testing.T) {
	tests := []struct {
		name   string
		models SupportedModels
		query  string
		want   bool
	}{
		{"wildcard", SupportedModels{"all"}, "NI PXIe-5654", true},
		{"fragment match", SupportedModels{"PXIe-5654"}, "NI PXIe-5654", true},
		{"no match", SupportedModels{"PXIe-5644"}, "NI PXIe-5654", false},
		{"second entry matches", SupportedModels{"PXIe-5644", "PXIe-5654"}, "NI PXIe-5654", true},
		{"empty set", SupportedModels{}, "NI PXIe-5654", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.models.Supports(tt.query); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRegistrySelect(t *testing.T) {
	reg := load(t, strings.Join([]string{
		"NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,1,all,0",
		"NIRFSG_ATTR_POWER_LEVEL,1250002,ViReal64,rf_power,channel,1,all,0",
		"NIRFSG_ATTR_MEMORY_SIZE,1150243,ViInt64,memory_size,channel,1,PXIe-5644,0",
		"NIRFSG_ATTR_REF_CLOCK_RATE,1150002,ViReal64,reference_rate,clock,1,all,0",
	}, "\n"))

	descs := reg.Select("NI PXIe-5654", "channel")
	if len(descs) != 2 {
		t.Fatalf("expected 2 channel descriptors for PXIe-5654, got %d", len(descs))
	}
	// Sorted by display name.
	if descs[0].Name != "rf_frequency" || descs[1].Name != "rf_power" {
		t.Errorf("got %q, %q", descs[0].Name, descs[1].Name)
	}

	descs = reg.Select("NI PXIe-5644", "channel")
	if len(descs) != 3 {
		t.Errorf("expected 3 channel descriptors for PXIe-5644, got %d", len(descs))
	}
}

func TestRegistrySelectReturnsCopies(t *testing.T) {
	reg := load(t, "NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,1,all,0")

	first := reg.Select("NI PXIe-5654", "channel")
	first[0].Name = "mutated"
	first[0].Models[0] = "mutated"

	second := reg.Select("NI PXIe-5654", "channel")
	if second[0].Name != "rf_frequency" || second[0].Models[0] != "all" {
		t.Error("Select must hand out independent copies")
	}
}

func TestRegistryAllSortedByID(t *testing.T) {
	reg := load(t, strings.Join([]string{
		"NIRFSG_ATTR_FREQUENCY,1250001,ViReal64,rf_frequency,channel,1,all,0",
		"NIRFSG_ATTR_REF_CLOCK_RATE,1150002,ViReal64,reference_rate,clock,1,all,0",
		"NIRFSG_ATTR_INSTRUMENT_MODEL,1050512,ViString,model,model,1,all,",
	}, "\n"))

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID > all[i].ID {
			t.Fatalf("All not sorted by id: %d before %d", all[i-1].ID, all[i].ID)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	if reg == nil {
		t.Fatal("Default returned nil")
	}

	// Core attributes every model carries.
	for _, name := range []string{"model", "rf_frequency", "rf_power", "output_enabled"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("embedded table missing %q", name)
		}
	}

	// One instance process-wide, also under concurrent first use.
	var wg sync.WaitGroup
	results := make([]*Registry, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Default()
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r != reg {
			t.Errorf("goroutine %d saw a different registry instance", i)
		}
	}
}

func TestDefaultRegistryKnownIDs(t *testing.T) {
	tests := []struct {
		name string
		id   driver.AttributeID
	}{
		{"model", 1050512},
		{"rf_frequency", 1250001},
		{"rf_power", 1250002},
		{"output_enabled", 1250004},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Default().Lookup(tt.name)
			if !ok {
				t.Fatalf("%q not in embedded table", tt.name)
			}
			if d.ID != tt.id {
				t.Errorf("id: got %d, want %d", d.ID, tt.id)
			}
		})
	}
}

func TestScalarTypeString(t *testing.T) {
	tests := []struct {
		t    ScalarType
		want string
	}{
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
		{Bool, "bool"},
		{String, "string"},
		{ScalarType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("ScalarType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}
