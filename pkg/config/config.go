package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "wearhaus"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Catalog      CatalogConfig
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
	Env          string `envconfig:"WEARHAUS_APP_ENV" required:"true"`
	Port         string `envconfig:"WEARHAUS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WEARHAUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WEARHAUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WEARHAUS_DB_DSN"`

	Host     string `envconfig:"WEARHAUS_DB_HOST"`
	Port     int    `envconfig:"WEARHAUS_DB_PORT" default:"5432"`
	User     string `envconfig:"WEARHAUS_DB_USER"`
	Password string `envconfig:"WEARHAUS_DB_PASSWORD"`
	Name     string `envconfig:"WEARHAUS_DB_NAME"`
	SSLMode  string `envconfig:"WEARHAUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WEARHAUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WEARHAUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WEARHAUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WEARHAUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from the discrete parts when WEARHAUS_DB_DSN
// is not set directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either WEARHAUS_DB_DSN or WEARHAUS_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"WEARHAUS_REDIS_URL"`
	Address      string        `envconfig:"WEARHAUS_REDIS_ADDR"`
	Password     string        `envconfig:"WEARHAUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WEARHAUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WEARHAUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WEARHAUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WEARHAUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WEARHAUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WEARHAUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WEARHAUS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WEARHAUS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WEARHAUS_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"WEARHAUS_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WEARHAUS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WEARHAUS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WEARHAUS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WEARHAUS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WEARHAUS_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	SuggestionLimit int    `envconfig:"WEARHAUS_SUGGESTION_LIMIT" default:"6"`
	ProductURLBase  string `envconfig:"WEARHAUS_PRODUCT_URL_BASE" default:"/product"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WEARHAUS_AUTO_MIGRATE" default:"false"`
}
