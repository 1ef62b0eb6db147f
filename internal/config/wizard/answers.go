package wizard

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecretEnvPrefix prefixes environment variables that may carry secrets in batch mode,
// e.g. ETLPROV_ORACLE_PASSWORD.
const SecretEnvPrefix = "ETLPROV_"

// AnswersSource replays answers from a YAML mapping of secrets file keys to values.
// Secret answers may be omitted from the file and supplied via SecretEnvPrefix variables instead.
type AnswersSource struct {
	answers map[string]string
	lookup  func(string) (string, bool)
}

// LoadAnswers reads a YAML answers file.
func LoadAnswers(path string) (*AnswersSource, error) {
	// #nosec G304 - path is an operator-supplied flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes a YAML answers document. Scalar values are taken
// verbatim, so 1521 and "1521" are the same answer.
func ParseAnswers(data []byte) (*AnswersSource, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse answers file: %w", err)
	}

	answers := map[string]string{}
	if len(doc.Content) == 0 {
		return &AnswersSource{answers: answers, lookup: os.LookupEnv}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errAnswersNotMap
	}

	known := KnownKeys()
	var unknown []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("answer for %s must be a scalar", key.Value)
		}
		k := strings.ToUpper(strings.TrimSpace(key.Value))
		if !known[k] {
			unknown = append(unknown, key.Value)
			continue
		}
		answers[k] = val.Value
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", errUnknownAnswerKey, strings.Join(unknown, ", "))
	}

	return &AnswersSource{answers: answers, lookup: os.LookupEnv}, nil
}

// Ask implements Source.
func (a *AnswersSource) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if v, ok := a.answers[q.Key]; ok {
		if q.Validate != nil && strings.TrimSpace(v) != "" && !q.Secret {
			if err := q.Validate(strings.TrimSpace(v)); err != nil {
				return "", fmt.Errorf("%s: %w", q.Key, err)
			}
		}
		return v, nil
	}
	if q.Secret && a.lookup != nil {
		if v, ok := a.lookup(SecretEnvPrefix + q.Key); ok {
			return v, nil
		}
	}
	return "", nil
}
