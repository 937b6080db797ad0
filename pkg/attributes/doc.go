// Package attributes provides the NI-RFSG attribute registry and the
// bound attribute dispatch layer.
//
// The driver exposes hundreds of instrument settings as numbered
// attributes behind five typed get/set entry points. This package
// loads the attribute table, one row per attribute with its numeric
// id, scalar type, display name, owning subsystem, supported models
// and optional defined-value set, and turns the rows callers need
// into Bound values that dispatch Get and Set to the right native
// accessor.
//
// # Registry
//
// Default returns the process-wide registry built from the embedded
// table on first use. Select filters descriptors by instrument model
// and subsystem tag and returns fresh copies:
//
//	descs := attributes.Default().Select("NI PXIe-5654", "channel")
//	for _, d := range descs {
//	    bound[d.Name] = d.Bind(conn, "")
//	}
//
// # Value Translation
//
// Attributes with a defined-value set accept and return symbolic
// names: Set("onboard clock") writes the native constant behind the
// symbol, Get translates the native value back. Values outside the
// defined set pass through untranslated in both directions; the
// driver is the validator of last resort.
package attributes
