package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/pkg/config"
	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
)

// ServiceName selects configs/{env}/qms.yaml and the QMS_ env prefix.
const ServiceName = "qms"

// Config is the application configuration.
type Config struct {
	Service struct {
		Name    string
		Version string
		BaseURL string
	}

	Server struct {
		HTTP struct {
			Port        string
			Timeout     int
			Debug       bool
			CORSOrigins []string
		}
		GRPC struct {
			Port    string
			Timeout int
		}
	}

	Database DatabaseConfig

	Redis struct {
		Enabled       bool
		Host          string
		Port          int
		Password      string
		DB            int
		MembershipTTL time.Duration
	}

	JWT struct {
		Secret string
		Expiry time.Duration
	}

	Storage struct {
		Region         string
		Bucket         string
		AccessKey      string
		SecretKey      string
		Endpoint       string
		MaxUploadBytes int64
		URLCacheSize   int
		URLCacheTTL    time.Duration
	}

	OIDC struct {
		Issuer             string
		ClientID           string
		ClientSecret       string
		RedirectURL        string
		PostLoginRedirect  string
		PostLogoutRedirect string
		Scopes             []string
	}

	Session struct {
		Store  string
		Secret string
		MaxAge int
		Secure bool
	}

	Log struct {
		Level    string
		Format   string
		Output   string
		FilePath string
	}

	Seed struct {
		BusinessAreasFile string
	}

	Logger *zap.Logger
}

// DatabaseConfig describes the primary database.
type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        string
}

// RedisAddr returns host:port.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// DriverName resolves the effective driver, honouring a mysql:// URL.
func (d DatabaseConfig) DriverName() string {
	if strings.HasPrefix(d.URL, "mysql://") {
		return "mysql"
	}
	if d.Driver == "" {
		return "postgres"
	}
	return d.Driver
}

func envBindings() []config.Option {
	return []config.Option{
		config.WithEnvBinding("database.url", "DATABASE_URL"),
		config.WithEnvBinding("jwt.secret", "JWT_SECRET"),
		config.WithEnvBinding("storage.region", "S3_REGION"),
		config.WithEnvBinding("storage.bucket", "S3_BUCKET_NAME"),
		config.WithEnvBinding("storage.access_key", "S3_ACCESS_KEY_ID"),
		config.WithEnvBinding("storage.secret_key", "S3_SECRET_ACCESS_KEY"),
		config.WithEnvBinding("oidc.client_id", "OKTA_CLIENT_ID"),
		config.WithEnvBinding("oidc.client_secret", "OKTA_CLIENT_SECRET"),
		config.WithEnvBinding("oidc.issuer", "OKTA_ISSUER"),
		config.WithEnvBinding("session.secret", "SESSION_SECRET"),

		config.WithDefault("service.name", "qms"),
		config.WithDefault("server.http.port", "8080"),
		config.WithDefault("server.http.timeout", 30),
		config.WithDefault("database.driver", "postgres"),
		config.WithDefault("database.max_open_conns", 25),
		config.WithDefault("database.max_idle_conns", 5),
		config.WithDefault("database.conn_max_lifetime", "5m"),
		config.WithDefault("database.slow_threshold", "200ms"),
		config.WithDefault("database.log_level", "warn"),
		config.WithDefault("redis.port", 6379),
		config.WithDefault("redis.membership_ttl", "5m"),
		config.WithDefault("jwt.expiry", "8h"),
		config.WithDefault("storage.region", "us-east-1"),
		config.WithDefault("storage.max_upload_bytes", int64(50<<20)),
		config.WithDefault("storage.url_cache_size", 1024),
		config.WithDefault("storage.url_cache_ttl", "50m"),
		config.WithDefault("oidc.scopes", []string{"openid", "profile", "email"}),
		config.WithDefault("session.store", "cookie"),
		config.WithDefault("session.max_age", 3600),
		config.WithDefault("log.level", "info"),
		config.WithDefault("log.format", "json"),
		config.WithDefault("log.output", "stdout"),
	}
}

// Load reads configuration and builds the logger.
func Load() (*Config, error) {
	cfg, err := config.Load(ServiceName, envBindings()...)
	if err != nil {
		return nil, err
	}

	appConfig := FromSource(cfg)

	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	appConfig.Logger, err = logger.NewZapLogger(logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		FilePath:    appConfig.Log.FilePath,
		Development: appConfig.Server.HTTP.Debug,
		Service:     appConfig.Service.Name,
	})
	if err != nil {
		return nil, err
	}

	return appConfig, nil
}

// FromSource maps raw settings onto Config.
func FromSource(cfg config.Config) *Config {
	appConfig := &Config{}

	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.BaseURL = cfg.GetString("service.base_url")

	appConfig.Server.HTTP.Port = cfg.GetString("server.http.port")
	appConfig.Server.HTTP.Timeout = cfg.GetInt("server.http.timeout")
	appConfig.Server.HTTP.Debug = cfg.GetBool("server.http.debug")
	appConfig.Server.HTTP.CORSOrigins = cfg.GetStringSlice("server.http.cors_origins")
	appConfig.Server.GRPC.Port = cfg.GetString("server.grpc.port")
	appConfig.Server.GRPC.Timeout = cfg.GetInt("server.grpc.timeout")

	appConfig.Database = DatabaseConfig{
		Driver:          cfg.GetString("database.driver"),
		URL:             cfg.GetString("database.url"),
		Host:            cfg.GetString("database.host"),
		Port:            cfg.GetInt("database.port"),
		Name:            cfg.GetString("database.name"),
		User:            cfg.GetString("database.user"),
		Password:        cfg.GetString("database.password"),
		SSLMode:         cfg.GetString("database.sslmode"),
		MaxOpenConns:    cfg.GetInt("database.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: cfg.GetDuration("database.conn_max_lifetime"),
		SlowThreshold:   cfg.GetDuration("database.slow_threshold"),
		LogLevel:        cfg.GetString("database.log_level"),
	}

	appConfig.Redis.Enabled = cfg.GetBool("redis.enabled")
	appConfig.Redis.Host = cfg.GetString("redis.host")
	appConfig.Redis.Port = cfg.GetInt("redis.port")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.DB = cfg.GetInt("redis.db")
	appConfig.Redis.MembershipTTL = cfg.GetDuration("redis.membership_ttl")

	appConfig.JWT.Secret = cfg.GetString("jwt.secret")
	appConfig.JWT.Expiry = cfg.GetDuration("jwt.expiry")

	appConfig.Storage.Region = cfg.GetString("storage.region")
	appConfig.Storage.Bucket = cfg.GetString("storage.bucket")
	appConfig.Storage.AccessKey = cfg.GetString("storage.access_key")
	appConfig.Storage.SecretKey = cfg.GetString("storage.secret_key")
	appConfig.Storage.Endpoint = cfg.GetString("storage.endpoint")
	appConfig.Storage.MaxUploadBytes = cfg.GetInt64("storage.max_upload_bytes")
	appConfig.Storage.URLCacheSize = cfg.GetInt("storage.url_cache_size")
	appConfig.Storage.URLCacheTTL = cfg.GetDuration("storage.url_cache_ttl")

	appConfig.OIDC.Issuer = strings.TrimSuffix(cfg.GetString("oidc.issuer"), "/")
	appConfig.OIDC.ClientID = cfg.GetString("oidc.client_id")
	appConfig.OIDC.ClientSecret = cfg.GetString("oidc.client_secret")
	appConfig.OIDC.RedirectURL = cfg.GetString("oidc.redirect_url")
	appConfig.OIDC.PostLoginRedirect = cfg.GetString("oidc.post_login_redirect")
	appConfig.OIDC.PostLogoutRedirect = cfg.GetString("oidc.post_logout_redirect")
	appConfig.OIDC.Scopes = cfg.GetStringSlice("oidc.scopes")

	appConfig.Session.Store = cfg.GetString("session.store")
	appConfig.Session.Secret = cfg.GetString("session.secret")
	appConfig.Session.MaxAge = cfg.GetInt("session.max_age")
	appConfig.Session.Secure = cfg.GetBool("session.secure")

	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")
	appConfig.Log.FilePath = cfg.GetString("log.file_path")

	appConfig.Seed.BusinessAreasFile = cfg.GetString("seed.business_areas_file")

	return appConfig
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		errs = append(errs, errors.New("database.url (DATABASE_URL) or database.host is required"))
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket (S3_BUCKET_NAME) is required"))
	}
	if c.Storage.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("storage.max_upload_bytes must be positive"))
	}
	if c.Session.Store == "redis" && !c.Redis.Enabled {
		errs = append(errs, errors.New("session.store=redis requires redis.enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// OIDCEnabled reports whether single sign-on is configured.
func (c *Config) OIDCEnabled() bool {
	return c.OIDC.Issuer != "" && c.OIDC.ClientID != ""
}
