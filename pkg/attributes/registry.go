package attributes

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/l-johnston/nirfsg/pkg/driver"
)

//go:embed attribute_table.csv
var tableData []byte

// Registry holds the attribute descriptors loaded from a table, keyed
// by display name. Read-only after Load.
type Registry struct {
	byName map[string]*Descriptor
}

// Load parses an attribute table. One record per line:
//
//	native name, id, native type, display name, subsystem,
//	model count, models..., enum count, (constant name, value)...
//
// Rows whose native name lacks the NIRFSG prefix or whose display
// name is empty are skipped, as are rows that do not parse; the table
// ships more attributes than any one binding exposes and unusable
// rows are not an error. A duplicate display name replaces the
// earlier row. Load returns an error only when reading fails.
func Load(r io.Reader) (*Registry, error) {
	reg := &Registry{byName: make(map[string]*Descriptor)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d, ok := parseRow(strings.TrimSpace(scanner.Text()))
		if !ok {
			continue
		}
		reg.byName[d.Name] = d
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading attribute table: %w", err)
	}
	return reg, nil
}

// parseRow parses one table line into a Descriptor. ok is false for
// rows to skip.
func parseRow(line string) (*Descriptor, bool) {
	tokens := strings.Split(line, ",")
	if len(tokens) < 7 {
		return nil, false
	}
	if !strings.HasPrefix(tokens[0], "NIRFSG") || tokens[3] == "" {
		return nil, false
	}

	id, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil {
		return nil, false
	}
	scalarType, ok := scalarTypeFor(tokens[2])
	if !ok {
		return nil, false
	}

	modelCount, err := strconv.Atoi(tokens[5])
	if err != nil || modelCount < 0 || len(tokens) < 6+modelCount+1 {
		return nil, false
	}
	models := SupportedModels(tokens[6 : 6+modelCount])

	enumCount := 0
	if field := tokens[6+modelCount]; field != "" {
		enumCount, err = strconv.Atoi(field)
		if err != nil || enumCount < 0 {
			return nil, false
		}
	}

	var enum *EnumValues
	if enumCount > 0 {
		if len(tokens) < 7+modelCount+2*enumCount {
			return nil, false
		}
		enum = &EnumValues{
			toNative:   make(map[string]any, enumCount),
			fromInt:    make(map[int64]string, enumCount),
			fromString: make(map[string]string),
		}
		for k := 0; k < enumCount; k++ {
			constName := tokens[7+modelCount+2*k]
			raw := tokens[7+modelCount+2*k+1]
			enum.add(symbolName(constName), enumValue(raw))
		}
	}

	return &Descriptor{
		NativeName: tokens[0],
		ID:         driver.AttributeID(id),
		Type:       scalarType,
		Name:       tokens[3],
		Subsystem:  tokens[4],
		Models:     append(SupportedModels(nil), models...),
		Enum:       enum,
	}, true
}

// enumValue interprets a table value field: all-digit fields are
// native integers, everything else is a native string.
func enumValue(raw string) any {
	if raw == "" {
		return raw
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return raw
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return v
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded attribute
// table. The table is part of the build, so a table that fails to
// load or is empty is a defect and Default panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(bytes.NewReader(tableData))
		if err != nil {
			panic("attributes: embedded table: " + err.Error())
		}
		if len(reg.byName) == 0 {
			panic("attributes: embedded table has no usable rows")
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Select returns copies of the descriptors that exist on the given
// instrument model and belong to the given subsystem, sorted by
// display name. Callers bind each copy to a session before use.
func (r *Registry) Select(model, subsystem string) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.byName {
		if d.Subsystem == subsystem && d.Models.Supports(model) {
			out = append(out, d.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the descriptor with the given display name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// All returns copies of every descriptor sorted by attribute id, for
// tools that process the whole table.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
