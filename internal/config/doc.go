// Package config defines the provisioning data model shared by every
// etlprov subsystem.
//
// A [ConnectionProfile] describes how to reach one backing store: the
// legacy Oracle source or the PostgreSQL destination. [RuntimeOptions]
// holds the pass-through knobs for the external ETL runtime, and
// [Settings] carries the tool's own resolved flags. The error taxonomy
// used to pick exit codes lives in errors.go.
package config
