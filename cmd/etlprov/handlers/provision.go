package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/geodata/etlprov/internal/acceptance"
	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/config/wizard"
	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/metrics"
	"github.com/geodata/etlprov/internal/provisioning"
)

// Factory function variables for provision - can be replaced in tests.
var (
	// newSource picks where answers come from.
	newSource = selectSource

	// newVerifier builds the connectivity verifier.
	newVerifier = func(s *config.Settings) provisioning.Verifier {
		return connectivity.NewVerifier(connectivity.Drivers(s), s.Timeouts.Verify)
	}

	// newAcceptor builds the acceptance checker.
	newAcceptor = func(s *config.Settings) provisioning.Acceptor {
		return acceptance.New(s)
	}

	// now stamps the run metrics.
	now = time.Now
)

// selectSource returns an answers file source in batch mode, plain line
// prompts when requested or when stdin is not a terminal, and forms otherwise.
func selectSource(s *config.Settings) (wizard.Source, error) {
	switch {
	case s.AnswersFile != "":
		return wizard.LoadAnswers(s.AnswersFile)
	case s.Plain || !stdinIsTerminal():
		return wizard.NewTerminalSource(os.Stdin, os.Stdout), nil
	default:
		return wizard.NewFormSource(os.Stdin, os.Stdout, false), nil
	}
}

// Provision collects both connection profiles and the runtime options,
// verifies and accepts them, and writes the secrets file.
func Provision(ctx context.Context, s *config.Settings) (err error) {
	logger := logr.FromContextOrDiscard(ctx)
	recorder := metrics.NewRecorder()

	defer func() {
		recorder.RecordRun(ExitCode(err), now())
		if werr := recorder.WriteTextfile(s.MetricsFile); werr != nil {
			logger.Error(werr, "failed to write metrics file", "path", s.MetricsFile)
		}
	}()

	src, err := newSource(s)
	if err != nil {
		return fmt.Errorf("failed to prepare input: %w", err)
	}

	if s.AnswersFile == "" {
		printProvisionWelcome(s)
	}

	observer := provisioning.MultiObserver{
		provisioning.NewLogObserver(logger),
		provisioning.NewMetricsObserver(recorder),
	}
	pctx := provisioning.NewContext(ctx, s, src, newVerifier(s), newAcceptor(s), observer)

	if err := provisioning.NewProvisionPipeline(s).Run(pctx); err != nil {
		return err
	}

	printProvisionSummary(s, pctx.State)
	return nil
}

func printProvisionWelcome(s *config.Settings) {
	fmt.Println()
	fmt.Println(styled(titleStyle, "etlprov - ETL GeoData secrets provisioning"))
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("You will be asked for the Oracle source and PostgreSQL destination")
	fmt.Println("connection details. Press Enter to accept a default.")
	if s.Advanced {
		fmt.Println("Running in advanced mode: extended runtime options are included.")
	}
	if s.SkipVerify {
		fmt.Println(styled(warnStyle, "Connectivity checks are skipped (--skip-verify)."))
	}
	fmt.Println()
}

func printProvisionSummary(s *config.Settings, state *provisioning.State) {
	fmt.Println()
	fmt.Println(styled(titleStyle, "Secrets file written"))
	fmt.Println()
	fmt.Printf("  File:   %s (mode %04o)\n", state.Written.Path, config.SecretsFileMode)
	if state.Written.BackedUp {
		fmt.Printf("  Backup: %s\n", state.Written.BackupPath)
	}
	fmt.Println()

	fmt.Println(styled(sectionStyle, "Connections"))
	if s.SkipVerify {
		fmt.Printf("  %s not checked (--skip-verify)\n", warnMark())
	} else {
		for _, kind := range config.Kinds {
			if res, ok := state.Verifications[kind]; ok {
				printVerification(res)
			}
		}
	}
	fmt.Println()

	fmt.Println(styled(sectionStyle, "Acceptance"))
	if report := state.Acceptance; report != nil {
		for _, w := range report.Warnings {
			fmt.Printf("  %s %s\n", warnMark(), w)
		}
		if report.ExternalRan {
			fmt.Printf("  %s runtime configuration loaded the file\n", okMark())
		} else {
			fmt.Printf("  %s built-in rules passed, runtime check skipped\n", okMark())
		}
	}
	fmt.Println()

	fmt.Println(styled(sectionStyle, "Next Steps"))
	fmt.Printf("  etlprov verify -f %s\n", state.Written.Path)
	fmt.Println(styled(dimStyle, "  Do not commit the secrets file to version control."))
	fmt.Println()
}

func printVerification(res *connectivity.Result) {
	fmt.Printf("  %s %-10s %s  server time %s (%s)\n",
		okMark(),
		res.Kind.StoreName(),
		res.Endpoint,
		res.ServerTime.Format(time.DateTime),
		res.Duration.Round(time.Millisecond),
	)
	if res.Detail != "" {
		fmt.Printf("       %s\n", styled(dimStyle, res.Detail))
	}
}
