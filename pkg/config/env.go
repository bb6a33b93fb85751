package config

// EnvPrefix is applied by envconfig when resolving unprefixed struct fields.
const EnvPrefix = "GLOW"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "GLOW_APP_ENV"
	EnvPort       = "GLOW_APP_PORT"
	EnvDBDSN      = "GLOW_DB_DSN"
	EnvDBHost     = "GLOW_DB_HOST"
	EnvDBUser     = "GLOW_DB_USER"
	EnvDBName     = "GLOW_DB_NAME"
	EnvRedisURL   = "GLOW_REDIS_URL"
	EnvJWTSecret  = "GLOW_JWT_SECRET"
	EnvJWTIssuer  = "GLOW_JWT_ISSUER"
	EnvJWTExpMins = "GLOW_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
