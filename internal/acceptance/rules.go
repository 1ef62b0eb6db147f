package acceptance

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/geodata/etlprov/internal/config"
)

// Function variable for dependency injection in tests.
var statPath = os.Stat

// integerKeys are read with int() by the runtime. Only keys present in the
// document are checked.
var integerKeys = []string{
	config.KeyQueryTimeout,
	config.KeyBatchSize,
	config.KeyLogMaxFileSize,
	config.KeyLogBackupCount,
}

var portKeys = []string{config.KeyOraclePort, config.KeyPostgresPort}

// Validate applies the built-in rules and returns one message per problem.
func Validate(values map[string]string) []string {
	var problems []string

	missing := lo.Filter(config.RequiredKeys, func(key string, _ int) bool {
		return values[key] == ""
	})
	for _, key := range missing {
		problems = append(problems, fmt.Sprintf("required setting %s is missing", key))
	}

	for _, key := range portKeys {
		if v, ok := values[key]; ok && v != "" {
			if err := config.ValidatePort(v); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			}
		}
	}

	for _, key := range integerKeys {
		if v, ok := values[key]; ok && v != "" {
			if err := config.ValidateInteger(v); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			}
		}
	}

	return problems
}

// Warnings returns conditions the runtime reports but that do not block
// acceptance, e.g. a SQL scripts directory that is not yet deployed.
func Warnings(values map[string]string) []string {
	var warnings []string

	if dir := strings.TrimSpace(values[config.KeySQLScriptsPath]); dir != "" {
		info, err := statPath(dir)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("SQL scripts directory %s does not exist", dir))
		case !info.IsDir():
			warnings = append(warnings, fmt.Sprintf("SQL scripts path %s is not a directory", dir))
		}
	}

	return warnings
}
