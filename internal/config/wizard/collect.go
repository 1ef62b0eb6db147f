package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/geodata/etlprov/internal/config"
)

// Collect asks for one connection profile. Blank non-secret answers take the
// default. An empty password returns a *config.MissingCredentialError.
func Collect(ctx context.Context, src Source, kind config.Kind, d config.ProfileDefaults) (*config.ConnectionProfile, error) {
	qs := ProfileQuestions(kind, d)

	raw, err := askAll(ctx, src, fmt.Sprintf("%s (%s)", kind.StoreName(), kind), qs)
	if err != nil {
		return nil, fmt.Errorf("%s profile: %w", kind, err)
	}

	answers := resolve(qs, raw)
	keys := kind.Keys()
	profile := &config.ConnectionProfile{
		Kind:       kind,
		Host:       answers[keys.Host],
		Port:       answers[keys.Port],
		Identifier: answers[keys.Identifier],
		User:       answers[keys.User],
		Password:   answers[keys.Password],
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%s profile: %w", kind, err)
	}
	return profile, nil
}

// CollectOptions asks for runtime options. Values are passed through as
// given; the runtime itself interprets them.
func CollectOptions(ctx context.Context, src Source, d config.RuntimeOptions, advanced bool) (*config.RuntimeOptions, error) {
	qs := OptionQuestions(d, advanced)

	raw, err := askAll(ctx, src, "ETL Runtime Options", qs)
	if err != nil {
		return nil, fmt.Errorf("runtime options: %w", err)
	}

	answers := resolve(qs, raw)
	opts := d
	opts.LoadStrategy = answers[config.KeyLoadStrategy]
	opts.QueryTimeout = answers[config.KeyQueryTimeout]
	opts.BatchSize = answers[config.KeyBatchSize]
	opts.LogLevel = answers[config.KeyLogLevel]

	if advanced {
		opts.Extended = true
		opts.TablePrefix = answers[config.KeyTablePrefix]
		opts.TableSuffix = answers[config.KeyTableSuffix]
		opts.LogMaxFileSize = answers[config.KeyLogMaxFileSize]
		opts.LogBackupCount = answers[config.KeyLogBackupCount]
	}
	return &opts, nil
}

// resolve applies default substitution and returns answers keyed by question key.
func resolve(qs []Question, raw []string) map[string]string {
	out := make(map[string]string, len(qs))
	for i, q := range qs {
		var a string
		if i < len(raw) {
			a = raw[i]
		}
		if q.Secret {
			out[q.Key] = a
			continue
		}
		a = strings.TrimSpace(a)
		if a == "" {
			a = q.Default
		}
		out[q.Key] = a
	}
	return out
}
