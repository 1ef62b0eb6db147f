package handlers

import (
	"context"
	"fmt"

	"github.com/geodata/etlprov/internal/acceptance"
	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/util/prerequisites"
)

// checkTools probes the optional database client tools - can be replaced in tests.
var checkTools = prerequisites.Check

// Check runs acceptance against an existing secrets file and lists the
// optional database client tools found on this host.
func Check(ctx context.Context, s *config.Settings, path string) error {
	values, err := loadSecrets(path)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(styled(titleStyle, "Configuration check: "+path))
	fmt.Println()

	report, err := acceptance.New(s).Accept(ctx, values)
	if err != nil {
		fmt.Printf("  %s %v\n", failMark(), err)
		fmt.Println()
		return err
	}

	for _, w := range report.Warnings {
		fmt.Printf("  %s %s\n", warnMark(), w)
	}
	if report.ExternalRan {
		fmt.Printf("  %s runtime configuration loaded the file\n", okMark())
		if report.Output != "" {
			fmt.Println(styled(dimStyle, joinLines(report.Output, "       ")))
		}
	} else {
		fmt.Printf("  %s built-in rules passed, runtime check skipped\n", okMark())
	}
	fmt.Println()

	printTools(checkTools(ctx, prerequisites.OptionalTools(), true))
	return nil
}

func printTools(results *prerequisites.CheckResults) {
	fmt.Println(styled(sectionStyle, "Database client tools"))
	for _, r := range results.Results {
		if !r.Found {
			fmt.Printf("  %s %-8s not found (%s)\n", warnMark(), r.Tool.Name, r.Tool.InstallURL)
			continue
		}
		version := r.Version
		if version == "" {
			version = "unknown version"
		}
		fmt.Printf("  %s %-8s %s\n", okMark(), r.Tool.Name, styled(dimStyle, version))
	}
	fmt.Println()
}
