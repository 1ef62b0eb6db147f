package wizard

import (
	"fmt"

	"github.com/geodata/etlprov/internal/config"
)

// ProfileQuestions returns the prompts for one connection profile, in order:
// host, port, identifier, user, password.
func ProfileQuestions(kind config.Kind, d config.ProfileDefaults) []Question {
	keys := kind.Keys()
	store := kind.StoreName()

	return []Question{
		{
			Key:         keys.Host,
			Title:       store + " Host",
			Description: fmt.Sprintf("Address of the %s %s server", kind, store),
			Default:     d.Host,
		},
		{
			Key:         keys.Port,
			Title:       store + " Port",
			Description: "TCP port of the listener",
			Default:     d.Port,
			Validate:    validateOptional(config.ValidatePort),
		},
		{
			Key:         keys.Identifier,
			Title:       store + " " + kind.IdentifierLabel(),
			Description: identifierDescription(kind),
			Default:     d.Identifier,
		},
		{
			Key:         keys.User,
			Title:       store + " User",
			Description: "Login used by the ETL runtime",
			Default:     d.User,
		},
		{
			Key:         keys.Password,
			Title:       store + " Password",
			Description: "Required. Input is hidden",
			Secret:      true,
		},
	}
}

func identifierDescription(kind config.Kind) string {
	if kind == config.KindSource {
		return "Oracle service name (not SID)"
	}
	return "Database the ETL loads into"
}

// OptionQuestions returns the prompts for runtime options. The extended
// options are only asked in advanced mode.
func OptionQuestions(d config.RuntimeOptions, advanced bool) []Question {
	qs := []Question{
		{
			Key:         config.KeyLoadStrategy,
			Title:       "Load Strategy",
			Description: "replace (DROP/CREATE) or append (INSERT)",
			Default:     d.LoadStrategy,
		},
		{
			Key:         config.KeyQueryTimeout,
			Title:       "Query Timeout (seconds)",
			Description: "Timeout applied to each extraction query",
			Default:     d.QueryTimeout,
		},
		{
			Key:         config.KeyBatchSize,
			Title:       "Batch Size",
			Description: "Rows per insert batch",
			Default:     d.BatchSize,
		},
		{
			Key:         config.KeyLogLevel,
			Title:       "Log Level",
			Description: "DEBUG, INFO, WARNING, ERROR or CRITICAL",
			Default:     d.LogLevel,
		},
	}

	if !advanced {
		return qs
	}

	return append(qs,
		Question{
			Key:         config.KeyTablePrefix,
			Title:       "Table Prefix",
			Description: "Prepended to every destination table name (optional)",
			Default:     d.TablePrefix,
		},
		Question{
			Key:         config.KeyTableSuffix,
			Title:       "Table Suffix",
			Description: "Appended to every destination table name (optional)",
			Default:     d.TableSuffix,
		},
		Question{
			Key:         config.KeyLogMaxFileSize,
			Title:       "Log Max File Size (bytes)",
			Description: "Size at which the runtime rotates its log file",
			Default:     d.LogMaxFileSize,
		},
		Question{
			Key:         config.KeyLogBackupCount,
			Title:       "Log Backup Count",
			Description: "Rotated log files to keep",
			Default:     d.LogBackupCount,
		},
	)
}

// KnownKeys returns every key a question can be asked for, used to reject
// typos in answers files.
func KnownKeys() map[string]bool {
	known := make(map[string]bool)
	for _, kind := range config.Kinds {
		for _, q := range ProfileQuestions(kind, config.DefaultProfile(kind)) {
			known[q.Key] = true
		}
	}
	for _, q := range OptionQuestions(config.DefaultRuntimeOptions(), true) {
		known[q.Key] = true
	}
	return known
}
