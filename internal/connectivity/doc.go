// Package connectivity verifies that the source and destination stores
// accept the collected credentials.
//
// Each check opens the driver for the profile's kind, pings, runs a
// round-trip query and closes the handle. The check is bounded by a hard
// timeout that is enforced here, so a driver that ignores its context
// cannot stall a run.
package connectivity
