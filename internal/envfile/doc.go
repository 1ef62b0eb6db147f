// Package envfile builds, renders, parses and persists the dotenv-style
// secrets file consumed by the ETL runtime.
//
// The file is replaced atomically. The previous generation is kept as
// <path>.backup and both files are owner read/write only.
package envfile
