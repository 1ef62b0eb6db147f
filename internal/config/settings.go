package config

// DefaultAcceptanceCommand loads the external runtime's configuration module.
const DefaultAcceptanceCommand = `python3 -c "import config"`

// DefaultPostgresSSLMode is used when no sslmode is configured.
const DefaultPostgresSSLMode = "disable"

// Settings holds the resolved options for one etlprov run. It is built once
// from flags, environment and the optional settings file, then passed down
// explicitly.
type Settings struct {
	OutputPath string

	// SkipVerify selects the write-only variant.
	SkipVerify bool
	Advanced   bool
	Plain      bool

	// AnswersFile switches collection to non-interactive batch mode.
	AnswersFile string

	Paths Paths

	AcceptanceCommand string
	RuntimeDir        string
	SkipAcceptance    bool

	MetricsFile string

	// OracleOptions are go-ora connection options (e.g. SSL, TIMEOUT)
	// handed to the driver configuration, never exported to the environment.
	OracleOptions   map[string]string
	PostgresSSLMode string

	Timeouts Timeouts
}

// DefaultSettings returns settings with every documented default applied.
func DefaultSettings() *Settings {
	timeouts := LoadTimeouts()
	return &Settings{
		OutputPath:        DefaultOutputPath,
		Paths:             DefaultPaths(),
		AcceptanceCommand: DefaultAcceptanceCommand,
		PostgresSSLMode:   DefaultPostgresSSLMode,
		OracleOptions:     map[string]string{},
		Timeouts:          *timeouts,
	}
}
