package acceptance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/geodata/etlprov/internal/util/prerequisites"
)

// Function variables for dependency injection in tests.
var (
	environ    = os.Environ
	checkTools = prerequisites.Check
)

// waitDelay bounds how long output pipes are drained after the command is killed.
const waitDelay = 2 * time.Second

var errEmptyCommand = errors.New("acceptance command is empty")

// Command runs the runtime's configuration loader as a subprocess.
type Command struct {
	// Line is split with shell quoting rules, e.g. `python3 -c "import config"`.
	Line    string
	Dir     string
	Timeout time.Duration
}

// Run executes the command with values overlaid on the current environment
// and returns its combined output. The runtime prefers existing environment
// variables over its own .env file, so this checks the document without
// writing it.
func (c *Command) Run(ctx context.Context, values map[string]string) (string, error) {
	args, err := shlex.Split(c.Line)
	if err != nil {
		return "", fmt.Errorf("invalid acceptance command %q: %w", c.Line, err)
	}
	if len(args) == 0 {
		return "", errEmptyCommand
	}

	tools := checkTools(ctx, []prerequisites.Tool{prerequisites.RuntimeTool(args[0])}, false)
	if err := tools.Error(); err != nil {
		return "", err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// #nosec G204 - the command line is operator configuration
	cmd := exec.CommandContext(ctx, tools.Results[0].Path, args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = overlayEnv(environ(), values)
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return string(out), fmt.Errorf("acceptance command timed out after %s: %w", c.Timeout, ctx.Err())
	}
	if err != nil {
		return string(out), fmt.Errorf("acceptance command failed: %w", err)
	}
	return string(out), nil
}

// overlayEnv replaces or appends KEY=value entries. Appended keys are sorted
// so the child sees a stable environment.
func overlayEnv(base []string, values map[string]string) []string {
	env := make([]string, 0, len(base)+len(values))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := values[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+values[k])
	}
	return env
}
