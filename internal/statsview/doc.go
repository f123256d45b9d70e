// Package statsview offers a local HTTP server with graphical runtime
// statistics of the emulator process. It is only built with the statsview
// build tag, otherwise Launch only reports that it is not available.
//
// After launch the statistics are viewable at:
//
//	localhost:12600/debug/statsview
package statsview

// DefaultAddress is the listen address of the statistics server.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"
