// Package provisioning runs the credential provisioning workflow as a
// sequential pipeline of phases.
//
// # Phases
//
//   - preflight: settings checks that run before any prompt
//   - collect-source, collect-destination: connection profiles
//   - collect-options: runtime options
//   - verify-source, verify-destination: connectivity checks, omitted in the write-only variant
//   - accept: acceptance of the in-memory document
//   - persist: backup and atomic replace of the secrets file
//
// # Core Types
//
// Context carries settings, collaborators, state and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (profiles, options, checks, document, write result).
//
// The first failing phase stops the run. Nothing is written unless every
// earlier phase succeeded.
package provisioning
