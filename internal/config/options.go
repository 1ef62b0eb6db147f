package config

// RuntimeOptions are opaque knobs passed through to the external ETL runtime.
// Only the basic four are always written; the extended ones are written when
// Extended is set (collected in advanced mode).
type RuntimeOptions struct {
	LoadStrategy string
	QueryTimeout string
	BatchSize    string
	LogLevel     string

	Extended       bool
	TablePrefix    string
	TableSuffix    string
	LogMaxFileSize string
	LogBackupCount string
}

// DefaultRuntimeOptions returns the defaults the runtime itself would assume.
func DefaultRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{
		LoadStrategy:   DefaultLoadStrategy,
		QueryTimeout:   DefaultQueryTimeout,
		BatchSize:      DefaultBatchSize,
		LogLevel:       DefaultLogLevel,
		LogMaxFileSize: DefaultLogMaxFileSize,
		LogBackupCount: DefaultLogBackupCount,
	}
}

// Values returns the options as secrets file entries in file order.
func (o *RuntimeOptions) Values() []KeyValue {
	values := []KeyValue{
		{Key: KeyLoadStrategy, Value: o.LoadStrategy},
		{Key: KeyQueryTimeout, Value: o.QueryTimeout},
		{Key: KeyBatchSize, Value: o.BatchSize},
		{Key: KeyLogLevel, Value: o.LogLevel},
	}
	if o.Extended {
		values = append(values,
			KeyValue{Key: KeyTablePrefix, Value: o.TablePrefix},
			KeyValue{Key: KeyTableSuffix, Value: o.TableSuffix},
			KeyValue{Key: KeyLogMaxFileSize, Value: o.LogMaxFileSize},
			KeyValue{Key: KeyLogBackupCount, Value: o.LogBackupCount},
		)
	}
	return values
}

// Paths holds the fixed path constants and environment tag of a secrets file.
type Paths struct {
	SQLScriptsPath string
	LogDirectory   string
	Environment    string
}

// DefaultPaths returns the default path constants.
func DefaultPaths() Paths {
	return Paths{
		SQLScriptsPath: DefaultSQLScriptsPath,
		LogDirectory:   DefaultLogDirectory,
		Environment:    DefaultEnvironment,
	}
}

// Values returns the path constants as secrets file entries.
func (p *Paths) Values() []KeyValue {
	return []KeyValue{
		{Key: KeySQLScriptsPath, Value: p.SQLScriptsPath},
		{Key: KeyLogDirectory, Value: p.LogDirectory},
		{Key: KeyEnvironment, Value: p.Environment},
	}
}
