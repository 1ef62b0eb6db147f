package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/cmd/etlprov/handlers"
	"github.com/geodata/etlprov/internal/config"
)

// verifyHandler checks an existing file - can be replaced in tests.
var verifyHandler = handlers.Verify

// Verify returns the command that checks connectivity for an existing secrets file.
func Verify(v *viper.Viper) *cobra.Command {
	d := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that both stores in a secrets file answer",
		Long: `Open a connection to the Oracle source and the PostgreSQL destination
described by an existing secrets file and fetch the server time from each.

Both stores are checked even when the first one fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return verifyHandler(cmd.Context(), resolveSettings(v), v.GetString("file"))
		},
	}

	cmd.Flags().StringP("file", "f", d.OutputPath, "Path of the secrets file to check")
	addVerifyFlags(cmd.Flags(), d)

	return cmd
}
