package main

import (
	"strings"
	"text/template"

	"github.com/l-johnston/nirfsg/pkg/attributes"
)

const fileTmpl = `// Code generated by rfsg-attrgen. DO NOT EDIT.

package {{.Package}}

// Attribute identifiers from the NI-RFSG attribute table, one
// constant per NIRFSG_ATTR_ name, sorted by id.
const (
{{- range .Attrs}}
	// {{.Display}} ({{.Subsystem}}, {{.Type}})
	{{.GoName}} AttributeID = {{.ID}}
{{- end}}
)
`

var fileTemplate = template.Must(template.New("attrids").Parse(fileTmpl))

type attrData struct {
	GoName    string
	ID        uint32
	Display   string
	Subsystem string
	Type      string
}

type fileData struct {
	Package string
	Attrs   []attrData
}

// Generate renders the AttributeID constant block for every
// descriptor in the registry, sorted by id.
func Generate(reg *attributes.Registry, pkgName string) (string, error) {
	data := fileData{Package: pkgName}
	for _, d := range reg.All() {
		data.Attrs = append(data.Attrs, attrData{
			GoName:    goName(d.NativeName),
			ID:        uint32(d.ID),
			Display:   d.Name,
			Subsystem: d.Subsystem,
			Type:      d.Type.String(),
		})
	}

	var b strings.Builder
	if err := fileTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// goName converts a native constant name into the generated Go
// identifier: NIRFSG_ATTR_REF_CLOCK_SOURCE becomes RefClockSource.
func goName(nativeName string) string {
	name := strings.TrimPrefix(nativeName, "NIRFSG_ATTR_")
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}
