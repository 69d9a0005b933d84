package config

// EnvPrefix is handed to envconfig; every field carries its full variable name.
const EnvPrefix = "KITCHENBOARD"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "KITCHENBOARD_APP_ENV"
	EnvPort     = "KITCHENBOARD_APP_PORT"
	EnvLogLvl   = "KITCHENBOARD_LOG_LEVEL"
	EnvUseSQL   = "KITCHENBOARD_USE_SQLITE"
	EnvDBDSN    = "KITCHENBOARD_DB_DSN"
	EnvDBHost   = "KITCHENBOARD_DB_HOST"
	EnvDBUser   = "KITCHENBOARD_DB_USER"
	EnvDBName   = "KITCHENBOARD_DB_NAME"
	EnvDBDrv    = "KITCHENBOARD_DB_DRIVER"
	EnvRedisURL = "KITCHENBOARD_REDIS_URL"

	EnvJWTSecret = "KITCHENBOARD_JWT_SECRET"
	EnvJWTIssuer = "KITCHENBOARD_JWT_ISSUER"

	EnvBackendURL   = "KITCHENBOARD_BACKEND_URL"
	EnvBackendToken = "KITCHENBOARD_BACKEND_TOKEN"

	EnvRefreshInterval    = "KITCHENBOARD_REFRESH_INTERVAL"
	EnvPrintInterval      = "KITCHENBOARD_PRINT_INTERVAL"
	EnvStatusInterval     = "KITCHENBOARD_STATUS_INTERVAL"
	EnvModificationWindow = "KITCHENBOARD_MODIFICATION_WINDOW"
	EnvDefaultAutoStatus  = "KITCHENBOARD_DEFAULT_AUTO_STATUS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
