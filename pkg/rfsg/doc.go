// Package rfsg is the instrument-facing surface of the NI-RFSG
// binding: open a session to a physical or simulated RF signal
// generator, configure it through named attributes grouped into
// subsystems, and start and stop generation.
//
// Open acquires a driver session, queries the connected model, and
// returns a PXIe5654 whose subsystem façades expose the attributes the
// table declares for that model. Every attribute read or write is one
// driver round-trip; nothing is cached.
//
//	gen, err := rfsg.Open("PXI1Slot2",
//		rfsg.WithOptions("Simulate=1,DriverSetup=Model:5654"))
//	if err != nil {
//		return err
//	}
//	defer gen.Close()
//
//	if err := gen.ConfigureRF(1e9, -10); err != nil {
//		return err
//	}
//	if err := gen.Initiate(); err != nil {
//		return err
//	}
//
// # Lifecycle
//
// A device moves between four states: Uninitialized until Open
// succeeds, Configuration while idle, Generating between Initiate and
// Abort, and Closed after Close. Close releases the native session
// exactly once; calling it again is a no-op. Every other operation on
// a closed device fails with ErrClosed.
//
// # Attribute Visibility
//
// Some subsystems list only the attributes meaningful under the
// current configuration: the analog-modulation façade hides the
// sensitivity families of modes other than the selected one, and the
// start-trigger façade hides the parameters of trigger types other
// than the selected one. Hiding affects listing only; a hidden
// attribute remains readable and writable by name.
//
// # Concurrency
//
// The package adds no synchronization. Calls are blocking round-trips
// to the driver, and sharing one device across goroutines is governed
// by the vendor driver's own session rules.
package rfsg
