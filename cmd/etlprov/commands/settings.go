package commands

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/internal/config"
)

// EnvPrefix prefixes the environment variables that mirror flags,
// e.g. ETLPROV_SKIP_VERIFY for --skip-verify.
const EnvPrefix = "ETLPROV"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func addVerifyFlags(fs *pflag.FlagSet, d *config.Settings) {
	fs.Duration("timeout", d.Timeouts.Verify, "Bound for each connectivity check")
	fs.StringToString("oracle-option", nil, "Oracle driver option KEY=VALUE, e.g. SSL=true (repeatable)")
	fs.String("postgres-sslmode", d.PostgresSSLMode, "PostgreSQL sslmode for the connectivity check")
}

func addAcceptanceFlags(fs *pflag.FlagSet, d *config.Settings) {
	fs.String("acceptance-cmd", d.AcceptanceCommand, "Command that loads the ETL runtime configuration")
	fs.String("runtime-dir", d.RuntimeDir, "Working directory of the acceptance command (the ETL runtime checkout)")
	fs.Bool("skip-acceptance", false, "Skip the acceptance command (required keys, ports, and integer ETL_QUERY_TIMEOUT, ETL_BATCH_SIZE, LOG_MAX_FILE_SIZE and LOG_BACKUP_COUNT are still checked)")
}

// resolveSettings builds run settings from defaults, overriding each field
// that is set by flag, environment or settings file.
func resolveSettings(v *viper.Viper) *config.Settings {
	s := config.DefaultSettings()

	setString(v, "output", &s.OutputPath)
	setBool(v, "skip-verify", &s.SkipVerify)
	setBool(v, "advanced", &s.Advanced)
	setBool(v, "plain", &s.Plain)
	setString(v, "answers", &s.AnswersFile)

	setString(v, "env", &s.Paths.Environment)
	setString(v, "sql-scripts-path", &s.Paths.SQLScriptsPath)
	setString(v, "log-directory", &s.Paths.LogDirectory)

	setString(v, "acceptance-cmd", &s.AcceptanceCommand)
	setString(v, "runtime-dir", &s.RuntimeDir)
	setBool(v, "skip-acceptance", &s.SkipAcceptance)
	setString(v, "metrics-file", &s.MetricsFile)

	if v.IsSet("timeout") {
		s.Timeouts.Verify = v.GetDuration("timeout")
	}
	if v.IsSet("oracle-option") {
		s.OracleOptions = v.GetStringMapString("oracle-option")
	}
	setString(v, "postgres-sslmode", &s.PostgresSSLMode)

	return s
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setBool(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}
