package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/cmd/etlprov/handlers"
	"github.com/geodata/etlprov/internal/config"
)

// checkHandler runs acceptance on an existing file - can be replaced in tests.
var checkHandler = handlers.Check

// Check returns the command that runs acceptance against an existing secrets file.
func Check(v *viper.Viper) *cobra.Command {
	d := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the ETL runtime accepts a secrets file",
		Long: `Validate an existing secrets file the way the ETL runtime does: every
required key is present, ports and numeric options are integers, and the
runtime's configuration module loads with the file's values.

Also lists the optional database client tools (sqlplus, psql) found on this host.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkHandler(cmd.Context(), resolveSettings(v), v.GetString("file"))
		},
	}

	cmd.Flags().StringP("file", "f", d.OutputPath, "Path of the secrets file to check")
	addAcceptanceFlags(cmd.Flags(), d)

	return cmd
}
