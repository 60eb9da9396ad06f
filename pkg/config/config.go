package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Mailtrap      MailtrapConfig
	Inquiry       InquiryConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"GREENACRES_APP_ENV" required:"true"`
	Port         string `envconfig:"GREENACRES_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GREENACRES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GREENACRES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GREENACRES_DB_DSN"`
	Driver string `envconfig:"GREENACRES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GREENACRES_DB_HOST"`
	LegacyPort     int    `envconfig:"GREENACRES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GREENACRES_DB_USER"`
	LegacyPassword string `envconfig:"GREENACRES_DB_PASSWORD"`
	LegacyName     string `envconfig:"GREENACRES_DB_NAME"`
	LegacySSLMode  string `envconfig:"GREENACRES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GREENACRES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GREENACRES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GREENACRES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GREENACRES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GREENACRES_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GREENACRES_REDIS_ADDR"`
	Password     string        `envconfig:"GREENACRES_REDIS_PASSWORD"`
	DB           int           `envconfig:"GREENACRES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GREENACRES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GREENACRES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GREENACRES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GREENACRES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GREENACRES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GREENACRES_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GREENACRES_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GREENACRES_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GREENACRES_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GREENACRES_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GREENACRES_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GREENACRES_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GREENACRES_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GREENACRES_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"GREENACRES_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"GREENACRES_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"GREENACRES_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"GREENACRES_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"GREENACRES_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GREENACRES_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GREENACRES_AUTO_MIGRATE" default:"false"`
}

// MailtrapConfig configures the two underlying mail transports. When sandbox
// SMTP credentials are present they take priority over the send API token.
type MailtrapConfig struct {
	SMTPUser  string `envconfig:"GREENACRES_MAILTRAP_SMTP_USER"`
	SMTPPass  string `envconfig:"GREENACRES_MAILTRAP_SMTP_PASS"`
	SMTPHost  string `envconfig:"GREENACRES_MAILTRAP_SMTP_HOST" default:"sandbox.smtp.mailtrap.io"`
	SMTPPort  int    `envconfig:"GREENACRES_MAILTRAP_SMTP_PORT" default:"2525"`
	APIToken  string `envconfig:"GREENACRES_MAILTRAP_API_TOKEN"`
	APIURL    string `envconfig:"GREENACRES_MAILTRAP_API_URL" default:"https://send.api.mailtrap.io/api/send"`
	FromEmail string `envconfig:"GREENACRES_MAILTRAP_FROM_EMAIL" default:"hello@greenacrescoffee.com"`
	FromName  string `envconfig:"GREENACRES_MAILTRAP_FROM_NAME" default:"Greenacres Coffee"`
}

// HasSandbox reports whether sandbox SMTP credentials are configured.
func (m MailtrapConfig) HasSandbox() bool {
	return m.SMTPUser != "" && m.SMTPPass != ""
}

// HasAPI reports whether the production API token is configured.
func (m MailtrapConfig) HasAPI() bool {
	return m.APIToken != ""
}

type InquiryConfig struct {
	AdminEmail       string `envconfig:"GREENACRES_INQUIRY_ADMIN_EMAIL" default:"ethiocof@greenacrescoffee.com"`
	DashboardBaseURL string `envconfig:"GREENACRES_DASHBOARD_BASE_URL" default:"https://greenacrescoffee.com"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GREENACRES_CORS_ALLOWED_ORIGINS" default:"*"`
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
