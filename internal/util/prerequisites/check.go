// Package prerequisites checks that the external programs etlprov shells out
// to are installed.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Function variable for dependency injection in tests.
var lookPath = exec.LookPath

const versionTimeout = 5 * time.Second

// Tool represents an external program that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH, or a path to it.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// RuntimeTool describes the interpreter of the acceptance command, i.e. the
// first word of the command line.
func RuntimeTool(name string) Tool {
	return Tool{
		Name:        name,
		Required:    true,
		Description: "Runs the ETL runtime's configuration loader to accept the secrets file",
		InstallURL:  "https://www.python.org/downloads/",
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "sqlplus",
			Required:    false,
			Description: "Useful for debugging Oracle source connectivity by hand",
			InstallURL:  "https://www.oracle.com/database/technologies/instant-client/downloads.html",
		},
		{
			Name:        "psql",
			Required:    false,
			Description: "Useful for debugging PostgreSQL destination connectivity by hand",
			InstallURL:  "https://www.postgresql.org/download/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available. Versions are only
// probed when withVersions is set, since it executes each tool.
func Check(ctx context.Context, tools []Tool, withVersions bool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			if withVersions {
				result.Version = getToolVersion(ctx, path)
			}
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// getToolVersion returns the first line of "<tool> --version", or "" when
// the version cannot be determined.
func getToolVersion(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	// #nosec G204 - path was resolved by LookPath from a configured tool name
	output, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
