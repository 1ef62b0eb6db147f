package envfile

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Parse decodes secrets file content the way the ETL runtime's dotenv loader
// reads it: a bare $ is literal and only ${NAME} references expand.
func Parse(data []byte) (map[string]string, error) {
	values, err := godotenv.UnmarshalBytes(escapeBareDollars(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}
	return values, nil
}

// escapeBareDollars backslash-escapes every $ that does not open a ${...}
// reference, so godotenv keeps it. Single-quoted values are literal already
// and are left alone.
func escapeBareDollars(data []byte) []byte {
	if !bytes.ContainsRune(data, '$') {
		return data
	}

	var out bytes.Buffer
	out.Grow(len(data) + 16)

	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		eq := bytes.IndexByte(line, '=')
		trimmed := bytes.TrimLeft(line, " \t")
		if eq < 0 || bytes.HasPrefix(trimmed, []byte("#")) ||
			bytes.HasPrefix(bytes.TrimLeft(line[eq+1:], " \t"), []byte("'")) {
			out.Write(line)
			continue
		}

		out.Write(line[:eq+1])
		value := line[eq+1:]
		for i, b := range value {
			if b == '$' && (i+1 == len(value) || value[i+1] != '{') {
				out.WriteByte('\\')
			}
			out.WriteByte(b)
		}
	}
	return out.Bytes()
}

// Load reads and parses the secrets file at path.
func Load(path string) (map[string]string, error) {
	// #nosec G304 - path is an operator-supplied flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}
	return Parse(data)
}

var commentAfterSpace = regexp.MustCompile(`\s#`)

// UnquotedProblem describes why value would not read back unchanged when
// written unquoted, or returns "" when it is safe.
func UnquotedProblem(value string) string {
	switch {
	case value == "":
		return ""
	case strings.ContainsAny(value, "\r\n"):
		return "contains a line break"
	case strings.TrimSpace(value) != value:
		return "has leading or trailing whitespace"
	case value[0] == '\'' || value[0] == '"':
		return "starts with a quote"
	case strings.Contains(value, "${"):
		return "contains a ${...} reference"
	case commentAfterSpace.MatchString(value):
		return "contains whitespace followed by #"
	}
	return ""
}

// Mismatches returns the keys whose value cannot be written unquoted, either
// because UnquotedProblem reports it or because it reads back differently.
func Mismatches(doc *Document) ([]string, error) {
	parsed, err := Parse(Render(doc, time.Time{}))
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, kv := range doc.Entries() {
		if UnquotedProblem(kv.Value) != "" || parsed[kv.Key] != kv.Value {
			keys = append(keys, kv.Key)
		}
	}
	return keys, nil
}
