// Package acceptance decides whether a secrets document will be accepted by
// the ETL runtime before it is written.
//
// Two checks run in order: built-in rules mirroring the runtime's own
// configuration validation, then optionally the runtime's configuration
// loader itself, executed with the document overlaid on the environment.
package acceptance
