package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for every setting below.
const EnvPrefix = "LANDREC"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Upload       UploadConfig
	Storage      StorageConfig
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
	Env          string `envconfig:"LANDREC_APP_ENV" required:"true"`
	Port         string `envconfig:"LANDREC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LANDREC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LANDREC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"LANDREC_DB_DSN"`

	Host     string `envconfig:"LANDREC_DB_HOST"`
	Port     int    `envconfig:"LANDREC_DB_PORT" default:"5432"`
	User     string `envconfig:"LANDREC_DB_USER"`
	Password string `envconfig:"LANDREC_DB_PASSWORD"`
	Name     string `envconfig:"LANDREC_DB_NAME"`
	SSLMode  string `envconfig:"LANDREC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LANDREC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LANDREC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LANDREC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LANDREC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LANDREC_REDIS_URL" required:"true"`
	Password     string        `envconfig:"LANDREC_REDIS_PASSWORD"`
	DB           int           `envconfig:"LANDREC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LANDREC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LANDREC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LANDREC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LANDREC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LANDREC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LANDREC_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LANDREC_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"LANDREC_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"LANDREC_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LANDREC_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LANDREC_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LANDREC_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LANDREC_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LANDREC_ARGON_KEY_LEN" default:"32"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"LANDREC_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured limit into bytes.
func (u UploadConfig) MaxUploadBytes() int64 {
	return int64(u.MaxUploadMB) << 20
}

type StorageConfig struct {
	Backend string `envconfig:"LANDREC_STORAGE_BACKEND" default:"fs"`

	// Filesystem backend.
	LocalDir string `envconfig:"LANDREC_STORAGE_LOCAL_DIR" default:"./documents"`

	// S3-compatible backend (AWS, MinIO, DO Spaces, R2).
	S3Region    string `envconfig:"LANDREC_S3_REGION"`
	S3Bucket    string `envconfig:"LANDREC_S3_BUCKET"`
	S3AccessKey string `envconfig:"LANDREC_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"LANDREC_S3_SECRET_KEY"`
	S3Endpoint  string `envconfig:"LANDREC_S3_ENDPOINT"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LANDREC_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"LANDREC_DB_HOST": db.Host,
		"LANDREC_DB_USER": db.User,
		"LANDREC_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either LANDREC_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
