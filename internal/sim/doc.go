// Package sim is an in-memory NI-RFSG driver used by the test suite
// and by rfsg-shell's -simulate mode.
//
// The simulator implements driver.Library with the same observable
// contract as the vendor DLL: sessions open against registered
// resources or with "Simulate=1" options, attribute reads and writes
// are typed per channel, failures return negative status codes whose
// text decodes through ErrorMessage, and generation state follows
// Initiate/Abort. No hardware, no Windows, no timing.
package sim
