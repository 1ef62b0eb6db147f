package acceptance

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/envfile"
)

func defaultDocument() *envfile.Document {
	source := &config.ConnectionProfile{
		Kind: config.KindSource, Host: "192.168.10.243", Port: "1521",
		Identifier: "ORCL", User: "GEODATA", Password: "oracleSecret1",
	}
	destination := &config.ConnectionProfile{
		Kind: config.KindDestination, Host: "localhost", Port: "5432",
		Identifier: "postgres", User: "postgres", Password: "pgSecret1",
	}
	opts := config.DefaultRuntimeOptions()
	return envfile.NewDocument(source, destination, &opts, config.DefaultPaths())
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh available")
	}
}

func TestValidate_DefaultsAccepted(t *testing.T) {
	assert.Empty(t, Validate(defaultDocument().Values()))
}

func TestValidate_Problems(t *testing.T) {
	values := defaultDocument().Values()
	values[config.KeyOraclePassword] = ""
	delete(values, config.KeyLogDirectory)
	values[config.KeyPostgresPort] = "54x2"
	values[config.KeyBatchSize] = "1k"
	values[config.KeyLogBackupCount] = "five"

	assert.Equal(t, []string{
		"required setting ORACLE_PASSWORD is missing",
		"required setting LOG_DIRECTORY is missing",
		"POSTGRES_PORT: port must be a number between 1 and 65535",
		`ETL_BATCH_SIZE: "1k" is not an integer`,
		`LOG_BACKUP_COUNT: "five" is not an integer`,
	}, Validate(values))
}

func TestWarnings(t *testing.T) {
	saved := statPath
	t.Cleanup(func() { statPath = saved })

	statPath = func(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }
	assert.Equal(t, []string{"SQL scripts directory /opt/etl_geodata/sql_scripts does not exist"},
		Warnings(defaultDocument().Values()))

	dir := t.TempDir()
	statPath = os.Stat
	values := defaultDocument().Values()
	values[config.KeySQLScriptsPath] = dir
	assert.Empty(t, Warnings(values))
}

func TestOverlayEnv(t *testing.T) {
	env := overlayEnv(
		[]string{"PATH=/usr/bin", "ORACLE_HOST=stale", "HOME=/root"},
		map[string]string{"ORACLE_HOST": "fresh", "ENV": "production"},
	)

	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root", "ENV=production", "ORACLE_HOST=fresh"}, env)
}

func TestCommand_SeesDocument(t *testing.T) {
	requireShell(t)

	c := &Command{Line: `sh -c 'echo "$ORACLE_SERVICE_NAME/$POSTGRES_DATABASE"'`, Dir: t.TempDir(), Timeout: 10 * time.Second}
	out, err := c.Run(context.Background(), defaultDocument().Values())
	require.NoError(t, err)
	assert.Equal(t, "ORCL/postgres\n", out)
}

func TestCommand_Failure(t *testing.T) {
	requireShell(t)

	c := &Command{Line: `sh -c 'echo "ValueError: missing fields" >&2; exit 1'`}
	out, err := c.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, out, "ValueError: missing fields")
	assert.Contains(t, err.Error(), "acceptance command failed")
}

func TestCommand_Timeout(t *testing.T) {
	requireShell(t)

	c := &Command{Line: "sh -c 'exec sleep 10'", Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := c.Run(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestCommand_MissingInterpreter(t *testing.T) {
	c := &Command{Line: "nonexistent-python-xyz123 -c 'import config'"}
	_, err := c.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required tools")
}

func TestCommand_BadLine(t *testing.T) {
	_, err := (&Command{Line: "   "}).Run(context.Background(), nil)
	assert.ErrorIs(t, err, errEmptyCommand)

	_, err = (&Command{Line: `python3 -c "import config`}).Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestAcceptor_SkipExternal(t *testing.T) {
	s := config.DefaultSettings()
	s.SkipAcceptance = true

	report, err := New(s).AcceptDocument(context.Background(), defaultDocument())
	require.NoError(t, err)
	assert.False(t, report.ExternalRan)
}

func TestAcceptor_RulesRunEvenWhenSkipped(t *testing.T) {
	s := config.DefaultSettings()
	s.SkipAcceptance = true

	values := defaultDocument().Values()
	values[config.KeyQueryTimeout] = "soon"

	_, err := New(s).Accept(context.Background(), values)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrAcceptance)

	var aerr *config.AcceptanceError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, []string{`ETL_QUERY_TIMEOUT: "soon" is not an integer`}, aerr.Problems)
}

func TestAcceptor_External(t *testing.T) {
	requireShell(t)

	s := config.DefaultSettings()
	s.RuntimeDir = t.TempDir()

	s.AcceptanceCommand = `sh -c 'test "$POSTGRES_PASSWORD" = pgSecret1 && echo ok'`
	report, err := New(s).AcceptDocument(context.Background(), defaultDocument())
	require.NoError(t, err)
	assert.True(t, report.ExternalRan)
	assert.Equal(t, "ok", report.Output)

	s.AcceptanceCommand = `sh -c 'echo rejected; exit 2'`
	_, err = New(s).AcceptDocument(context.Background(), defaultDocument())
	require.Error(t, err)

	var aerr *config.AcceptanceError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "rejected", aerr.Output)
	assert.True(t, errors.Is(err, config.ErrAcceptance))
}

func TestAcceptor_UnquotableValue(t *testing.T) {
	s := config.DefaultSettings()
	s.SkipAcceptance = true

	doc := defaultDocument()
	doc.Sections[1].Entries[4].Value = "pg #secret"

	_, err := New(s).AcceptDocument(context.Background(), doc)
	require.Error(t, err)

	var aerr *config.AcceptanceError
	require.ErrorAs(t, err, &aerr)
	require.Len(t, aerr.Problems, 1)
	assert.Contains(t, aerr.Problems[0], config.KeyPostgresPassword)
	assert.NotContains(t, err.Error(), "pg #secret")
}

func TestAcceptor_DollarValues(t *testing.T) {
	s := config.DefaultSettings()
	s.SkipAcceptance = true

	doc := defaultDocument()
	doc.Sections[0].Entries[4].Value = "Secret$1"
	doc.Sections[1].Entries[4].Value = "pa$WORD"

	_, err := New(s).AcceptDocument(context.Background(), doc)
	require.NoError(t, err)

	doc.Sections[1].Entries[4].Value = "pa${WORD}"
	_, err = New(s).AcceptDocument(context.Background(), doc)

	var aerr *config.AcceptanceError
	require.ErrorAs(t, err, &aerr)
	require.Len(t, aerr.Problems, 1)
	assert.Contains(t, aerr.Problems[0], config.KeyPostgresPassword)
	assert.Contains(t, aerr.Problems[0], "${...}")
}
