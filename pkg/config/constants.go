package config

// EnvPrefix namespaces every environment variable this service reads.
const EnvPrefix = "GREENACRES"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv     = "GREENACRES_APP_ENV"
	EnvPort       = "GREENACRES_APP_PORT"
	EnvDBDSN      = "GREENACRES_DB_DSN"
	EnvDBHost     = "GREENACRES_DB_HOST"
	EnvDBUser     = "GREENACRES_DB_USER"
	EnvDBName     = "GREENACRES_DB_NAME"
	EnvRedisURL   = "GREENACRES_REDIS_URL"
	EnvJWTSecret  = "GREENACRES_JWT_SECRET"
	EnvJWTIssuer  = "GREENACRES_JWT_ISSUER"
	EnvJWTExpMins = "GREENACRES_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
