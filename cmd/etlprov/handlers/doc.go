// Package handlers executes etlprov commands.
//
// Commands resolve flags into config.Settings and call one handler per
// command. Handlers write operator-facing output to stdout and leave
// diagnostics to the logr logger carried by the context. Collaborators
// are held in package-level function variables so tests can replace them.
package handlers
