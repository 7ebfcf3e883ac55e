package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ferdismit7/qmstool-sub002/internal/config"
	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
)

// NewConnection opens the database named by cfg and configures the pool.
func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLog := logger.NewGormLogger(log, gormLogLevel(cfg.LogLevel), cfg.SlowThreshold, true)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLog,
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("driver", cfg.DriverName()),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)

	return db, nil
}

// Dialector picks the gorm driver for cfg.
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.DriverName() {
	case "postgres", "postgresql":
		return postgres.Open(PostgresDSN(cfg)), nil
	case "mysql":
		dsn, err := MySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// PostgresDSN returns the URL as-is or builds a keyword DSN from parts.
func PostgresDSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

// MySQLDSN converts a mysql:// URL (or discrete settings) into the
// go-sql-driver format user:pass@tcp(host:port)/db?parseTime=true.
func MySQLDSN(cfg *config.DatabaseConfig) (string, error) {
	user, password, host, name := cfg.User, cfg.Password, fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.Name
	params := url.Values{}

	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "mysql" {
			return "", fmt.Errorf("unexpected scheme %q for mysql", u.Scheme)
		}
		user = u.User.Username()
		password, _ = u.User.Password()
		host = u.Host
		if u.Port() == "" {
			host += ":3306"
		}
		name = strings.TrimPrefix(u.Path, "/")
		params = u.Query()
	}

	params.Set("parseTime", "true")
	if params.Get("charset") == "" {
		params.Set("charset", "utf8mb4")
	}
	if params.Get("loc") == "" {
		params.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, password, host, name, params.Encode()), nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Close closes the database connection
func Close(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Info("Database connection closed")
	return nil
}
