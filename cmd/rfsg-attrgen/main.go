// Command rfsg-attrgen generates the driver package's AttributeID
// constants from an NI-RFSG attribute table.
//
// With no -table flag it reads the table embedded in pkg/attributes,
// so regenerating after a table update is:
//
//	rfsg-attrgen -out pkg/driver/attrids_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/l-johnston/nirfsg/pkg/attributes"
)

func main() {
	tablePath := flag.String("table", "", "Attribute table CSV (default: the embedded table)")
	outPath := flag.String("out", "", "Output .go file")
	pkgName := flag.String("pkg", "driver", "Package name for the generated file")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: rfsg-attrgen -out <path> [-table <csv>] [-pkg <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*tablePath, *outPath, *pkgName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(tablePath, outPath, pkgName string) error {
	reg := attributes.Default()
	if tablePath != "" {
		f, err := os.Open(tablePath)
		if err != nil {
			return fmt.Errorf("opening table: %w", err)
		}
		defer f.Close()
		if reg, err = attributes.Load(f); err != nil {
			return fmt.Errorf("parsing table: %w", err)
		}
	}

	code, err := Generate(reg, pkgName)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}
	if err := writeFormatted(outPath, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", outPath)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it
// to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
