package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodata/etlprov/internal/config"
)

func defaultDocument(t *testing.T) *Document {
	t.Helper()

	source := &config.ConnectionProfile{
		Kind: config.KindSource, Host: "192.168.10.243", Port: "1521",
		Identifier: "ORCL", User: "GEODATA", Password: "oracleSecret1",
	}
	destination := &config.ConnectionProfile{
		Kind: config.KindDestination, Host: "localhost", Port: "5432",
		Identifier: "postgres", User: "postgres", Password: "pgSecret1",
	}
	opts := config.DefaultRuntimeOptions()
	return NewDocument(source, destination, &opts, config.DefaultPaths())
}

func TestRender(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	out := string(Render(defaultDocument(t), now))

	assert.True(t, strings.HasPrefix(out, "# ETL GeoData secrets file\n"))
	assert.Contains(t, out, "# Generated at: 2026-03-14T09:26:53Z\n")
	assert.Contains(t, out, "# Environment: production\n")
	assert.Contains(t, out, "Do not commit")
	assert.Contains(t, out, "\n# Oracle (source)\nORACLE_HOST=192.168.10.243\n")
	assert.Contains(t, out, "\n# PostgreSQL (destination)\nPOSTGRES_HOST=localhost\n")
	assert.Contains(t, out, "ORACLE_PASSWORD=oracleSecret1\n")
	assert.Contains(t, out, "POSTGRES_PASSWORD=pgSecret1\n")
	assert.Contains(t, out, "ETL_LOAD_STRATEGY=replace\n")
	assert.Contains(t, out, "SQL_SCRIPTS_PATH=/opt/etl_geodata/sql_scripts\n")
	assert.Contains(t, out, "ENV=production\n")
	assert.NotContains(t, out, "ETL_TABLE_PREFIX", "advanced options are only written on request")
}

func TestRender_ParsesBack(t *testing.T) {
	t.Parallel()

	doc := defaultDocument(t)
	values, err := Parse(Render(doc, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, doc.Values(), values)
	assert.Len(t, values, len(config.RequiredKeys))
}

func TestDocument_Get(t *testing.T) {
	t.Parallel()

	doc := defaultDocument(t)
	v, ok := doc.Get(config.KeyPostgresDatabase)
	assert.True(t, ok)
	assert.Equal(t, "postgres", v)

	_, ok = doc.Get("NOPE")
	assert.False(t, ok)
}

func TestMismatches(t *testing.T) {
	t.Parallel()

	doc := defaultDocument(t)
	keys, err := Mismatches(doc)
	require.NoError(t, err)
	assert.Empty(t, keys)

	doc.Sections[0].Entries[4].Value = "Secret$1"
	doc.Sections[1].Entries[4].Value = "pa$WORD"
	keys, err = Mismatches(doc)
	require.NoError(t, err)
	assert.Empty(t, keys, "a bare $ is stored literally")

	doc.Sections[0].Entries[4].Value = "abc #def"
	doc.Sections[1].Entries[4].Value = "pa${HOME}"
	keys, err = Mismatches(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{config.KeyOraclePassword, config.KeyPostgresPassword}, keys)
}

func TestUnquotedProblem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"Secret$1", ""},
		{"pa$WORD", ""},
		{"GEo,D4tA0525#!", ""},
		{"a'b\"c", ""},
		{"pa${HOME}", "contains a ${...} reference"},
		{"abc #def", "contains whitespace followed by #"},
		{"abc\t#def", "contains whitespace followed by #"},
		{" lead", "has leading or trailing whitespace"},
		{"trail ", "has leading or trailing whitespace"},
		{"'quoted'", "starts with a quote"},
		{"\"quoted\"", "starts with a quote"},
		{"two\nlines", "contains a line break"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UnquotedProblem(tt.value), "value %q", tt.value)
	}
}

func TestParse_DollarSigns(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Join([]string{
		"# budget $5 per run",
		"ORACLE_PASSWORD=Secret$1",
		"POSTGRES_PASSWORD=pa$WORD",
		"TRAILING=end$",
		"ESCAPED=a\\$b",
		"SINGLE='lit$X'",
		"DOUBLE=\"dq$1\"",
		"BASE=x",
		"REF=${BASE}y",
		"",
	}, "\n"))

	values, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ORACLE_PASSWORD":   "Secret$1",
		"POSTGRES_PASSWORD": "pa$WORD",
		"TRAILING":          "end$",
		"ESCAPED":           "a\\$b",
		"SINGLE":            "lit$X",
		"DOUBLE":            "dq$1",
		"BASE":              "x",
		"REF":               "xy",
	}, values)
}

func TestLoad_DollarInPassword(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ORACLE_PASSWORD=Secret$1\n"), 0o600))

	values, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Secret$1", values[config.KeyOraclePassword])
}

func TestOrdered(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"ZZZ_EXTRA":                "1",
		config.KeyEnvironment:      "production",
		config.KeyOracleHost:       "h",
		"AAA_EXTRA":                "2",
		config.KeyTablePrefix:      "stg_",
		config.KeyPostgresPassword: "pw",
	}

	var keys []string
	for _, kv := range Ordered(values) {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{
		config.KeyOracleHost, config.KeyPostgresPassword, config.KeyTablePrefix,
		config.KeyEnvironment, "AAA_EXTRA", "ZZZ_EXTRA",
	}, keys)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nORACLE_HOST=db\nEMPTY=\n"), 0o600))

	values, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ORACLE_HOST": "db", "EMPTY": ""}, values)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWrite_NewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	res, err := Write(path, []byte("A=1\n"))
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.False(t, res.BackedUp)
	assert.NoFileExists(t, res.BackupPath)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_BackupRotation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEN=0\n"), 0o644))

	res, err := Write(path, []byte("GEN=1\n"))
	require.NoError(t, err)
	assert.True(t, res.BackedUp)
	assert.Equal(t, path+".backup", res.BackupPath)

	_, err = Write(path, []byte("GEN=2\n"))
	require.NoError(t, err)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GEN=2\n", string(current))

	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "GEN=1\n", string(backup), "backup holds exactly the prior generation")

	for _, p := range []string{path, res.BackupPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), p)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files or extra backups are left behind")
}

func TestWrite_RenameFailure(t *testing.T) {
	saved := renameFile
	t.Cleanup(func() { renameFile = saved })
	renameFile = func(string, string) error { return errors.New("disk full") }

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OLD=1\n"), 0o600))

	_, err := Write(path, []byte("NEW=1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrPersistence)

	var perr *config.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "back up", perr.Op)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "OLD=1\n", string(current), "the existing file is untouched")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", ".env")
	_, err := Write(path, []byte("A=1\n"))
	require.Error(t, err)

	var perr *config.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "write", perr.Op)
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/etc/etl/.env.backup", BackupPath("/etc/etl/.env"))
}
