// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Every flag may also be set through an ETLPROV_<FLAG>
// environment variable or a YAML settings file passed with --config; flags
// take precedence over the environment, which takes precedence over the file.
// Command execution is delegated to handler functions in the handlers package.
package commands

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodata/etlprov/internal/logging"
)

// Root returns the root command for the etlprov CLI.
func Root() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "etlprov",
		Short: "Provision the ETL GeoData secrets file",
		Long: `etlprov collects the Oracle source and PostgreSQL destination connection
details for the ETL GeoData runtime, checks that both stores answer, and
writes them with the runtime options into a private .env secrets file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, v)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML settings file")
	cmd.PersistentFlags().String("log-level", logging.LevelInfo, "Diagnostic log level: debug, info or error")
	cmd.PersistentFlags().String("log-format", logging.FormatText, "Diagnostic log format: text or json")

	cmd.AddCommand(Provision(v))
	cmd.AddCommand(Verify(v))
	cmd.AddCommand(Check(v))
	cmd.AddCommand(Show(v))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// setup binds the executing command's flags, reads the settings file and
// installs the diagnostic logger into the command context.
func setup(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	logger, err := logging.New(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-format"))
	if err != nil {
		return err
	}
	cmd.SetContext(logr.NewContext(cmd.Context(), logger))
	return nil
}
