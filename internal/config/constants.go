package config

// Secrets file keys for the Oracle source store.
const (
	KeyOracleHost        = "ORACLE_HOST"
	KeyOraclePort        = "ORACLE_PORT"
	KeyOracleServiceName = "ORACLE_SERVICE_NAME"
	KeyOracleUser        = "ORACLE_USER"
	KeyOraclePassword    = "ORACLE_PASSWORD"
)

// Secrets file keys for the PostgreSQL destination store.
const (
	KeyPostgresHost     = "POSTGRES_HOST"
	KeyPostgresPort     = "POSTGRES_PORT"
	KeyPostgresDatabase = "POSTGRES_DATABASE"
	KeyPostgresUser     = "POSTGRES_USER"
	KeyPostgresPassword = "POSTGRES_PASSWORD"
)

// Secrets file keys for runtime options and path constants.
const (
	KeyLoadStrategy   = "ETL_LOAD_STRATEGY"
	KeyQueryTimeout   = "ETL_QUERY_TIMEOUT"
	KeyBatchSize      = "ETL_BATCH_SIZE"
	KeyLogLevel       = "ETL_LOG_LEVEL"
	KeyTablePrefix    = "ETL_TABLE_PREFIX"
	KeyTableSuffix    = "ETL_TABLE_SUFFIX"
	KeyLogMaxFileSize = "LOG_MAX_FILE_SIZE"
	KeyLogBackupCount = "LOG_BACKUP_COUNT"
	KeySQLScriptsPath = "SQL_SCRIPTS_PATH"
	KeyLogDirectory   = "LOG_DIRECTORY"
	KeyEnvironment    = "ENV"
)

// Oracle source defaults.
const (
	DefaultOracleHost    = "192.168.10.243"
	DefaultOraclePort    = "1521"
	DefaultOracleService = "ORCL"
	DefaultOracleUser    = "GEODATA"
)

// PostgreSQL destination defaults.
const (
	DefaultPostgresHost     = "localhost"
	DefaultPostgresPort     = "5432"
	DefaultPostgresDatabase = "postgres"
	DefaultPostgresUser     = "postgres"
)

// Runtime option defaults, matching what the ETL runtime assumes when a key is absent.
const (
	DefaultLoadStrategy   = "replace"
	DefaultQueryTimeout   = "300"
	DefaultBatchSize      = "1000"
	DefaultLogLevel       = "INFO"
	DefaultLogMaxFileSize = "10485760"
	DefaultLogBackupCount = "5"
)

// Path and environment defaults written verbatim into every secrets file.
const (
	DefaultSQLScriptsPath = "/opt/etl_geodata/sql_scripts"
	DefaultLogDirectory   = "/opt/etl_geodata/logs"
	DefaultEnvironment    = "production"
	DefaultOutputPath     = ".env"
)

// BackupSuffix is appended to the secrets file path to name its single backup generation.
const BackupSuffix = ".backup"

// SecretsFileMode restricts the secrets file and its backup to the owner.
const SecretsFileMode = 0o600

// RequiredKeys lists the keys every secrets file must carry with a non-empty value.
var RequiredKeys = []string{
	KeyOracleHost, KeyOraclePort, KeyOracleServiceName, KeyOracleUser, KeyOraclePassword,
	KeyPostgresHost, KeyPostgresPort, KeyPostgresDatabase, KeyPostgresUser, KeyPostgresPassword,
	KeyLoadStrategy, KeyQueryTimeout, KeyBatchSize, KeyLogLevel,
	KeySQLScriptsPath, KeyLogDirectory, KeyEnvironment,
}

// SecretKeys lists the keys whose values must never be logged or shown unmasked.
var SecretKeys = []string{KeyOraclePassword, KeyPostgresPassword}

// IsSecretKey reports whether key holds a credential secret.
func IsSecretKey(key string) bool {
	for _, k := range SecretKeys {
		if k == key {
			return true
		}
	}
	return false
}
