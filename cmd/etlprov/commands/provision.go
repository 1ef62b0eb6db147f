package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/cmd/etlprov/handlers"
	"github.com/geodata/etlprov/internal/config"
)

// provisionHandler runs the workflow - can be replaced in tests.
var provisionHandler = handlers.Provision

// Provision returns the command that collects credentials and writes the secrets file.
func Provision(v *viper.Viper) *cobra.Command {
	d := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Collect connection details and write the secrets file",
		Long: `Collect the Oracle source and PostgreSQL destination connection details
and the ETL runtime options, then write them to a private secrets file.

Workflow:
  1. Ask for the Oracle source profile (host, port, service name, user, password)
  2. Ask for the PostgreSQL destination profile
  3. Ask for the runtime options (load strategy, query timeout, batch size, log level)
  4. Check that both stores answer (skipped with --skip-verify)
  5. Check that the ETL runtime accepts the result
  6. Back up the previous file to <output>.backup and write the new one (mode 0600)

Nothing is written when any step fails. Re-running is the only recovery.

Examples:
  # Interactive provisioning into ./.env
  etlprov provision

  # First-time setup before the database network rules are in place
  etlprov provision --skip-verify

  # Batch mode; passwords come from ETLPROV_ORACLE_PASSWORD and ETLPROV_POSTGRES_PASSWORD
  etlprov provision --answers answers.yaml --runtime-dir /opt/etl_geodata`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return provisionHandler(cmd.Context(), resolveSettings(v))
		},
	}

	fs := cmd.Flags()
	fs.StringP("output", "o", d.OutputPath, "Path of the secrets file to write")
	fs.Bool("skip-verify", false, "Write the file without checking connectivity")
	fs.String("answers", "", "Read answers from a YAML file instead of prompting")
	fs.Bool("plain", false, "Use plain line prompts instead of forms")
	fs.BoolP("advanced", "a", false, "Also ask for the extended runtime options")
	fs.String("env", d.Paths.Environment, "Environment tag written as ENV")
	fs.String("sql-scripts-path", d.Paths.SQLScriptsPath, "SQL scripts directory of the ETL runtime")
	fs.String("log-directory", d.Paths.LogDirectory, "Log directory of the ETL runtime")
	fs.String("metrics-file", "", "Write run metrics in Prometheus textfile format to this path")
	addVerifyFlags(fs, d)
	addAcceptanceFlags(fs, d)

	return cmd
}
