package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"GLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GLOW_DB_DSN"`
	Driver string `envconfig:"GLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"GLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GLOW_DB_USER"`
	LegacyPassword string `envconfig:"GLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"GLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"GLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GLOW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GLOW_REDIS_ADDR"`
	Password     string        `envconfig:"GLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"GLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GLOW_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GLOW_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GLOW_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CheckoutConfig tunes the simulated payment progression.
type CheckoutConfig struct {
	StepCadence time.Duration `envconfig:"GLOW_CHECKOUT_STEP_CADENCE" default:"1s"`
	SessionTTL  time.Duration `envconfig:"GLOW_CHECKOUT_SESSION_TTL" default:"30m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GLOW_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GLOW_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GLOW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
