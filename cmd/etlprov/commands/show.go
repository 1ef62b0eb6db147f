package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/cmd/etlprov/handlers"
	"github.com/geodata/etlprov/internal/config"
)

// showHandler prints an existing file - can be replaced in tests.
var showHandler = handlers.Show

// Show returns the command that prints a secrets file with passwords masked.
func Show(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a secrets file with passwords masked",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showHandler(v.GetString("file"), v.GetBool("reveal"), v.GetBool("json"))
		},
	}

	cmd.Flags().StringP("file", "f", config.DefaultOutputPath, "Path of the secrets file to print")
	cmd.Flags().Bool("reveal", false, "Print passwords in clear text")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}
