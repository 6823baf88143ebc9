package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the driver-specific connection string for cfg.
func DSN(cfg Config) (string, error) {
	timeout := timeoutSeconds(cfg)

	switch driver(cfg) {
	case DriverPostgres:
		dsn := cfg.URL
		if dsn == "" {
			q := url.Values{}
			if cfg.SSLMode != "" {
				q.Set("sslmode", cfg.SSLMode)
			}
			q.Set("connect_timeout", strconv.Itoa(timeout))
			u := url.URL{
				Scheme:   "postgres",
				User:     url.UserPassword(cfg.User, cfg.Password),
				Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
				Path:     "/" + cfg.Name,
				RawQuery: q.Encode(),
			}
			dsn = u.String()
		}
		if _, err := pgx.ParseConfig(dsn); err != nil {
			return "", fmt.Errorf("invalid postgres connection string: %w", err)
		}
		return dsn, nil

	case DriverMySQL:
		if cfg.URL != "" {
			return cfg.URL, nil
		}
		// Special characters in the password must be URL encoded.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout), nil
	}

	return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Connect opens the connection pool described by cfg and verifies it with a ping.
func Connect(cfg Config) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if driver(cfg) == DriverMySQL {
		dialector = mysql.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}
	return Open(dialector, cfg)
}

// Open wraps an already chosen dialector with the pool settings from cfg.
func Open(dialector gorm.Dialector, cfg Config) (*gorm.DB, error) {
	// Suppress GORM logging; callers log through zap
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Pinged below with the configured timeout
		DisableAutomaticPing: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	lifetime := cfg.ConnMaxLifetimeSeconds
	if lifetime <= 0 {
		lifetime = 3600
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds(cfg))*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// WithConn acquires a dedicated connection from the pool, runs fn with it and
// always returns the connection to the pool, including when fn fails or panics.
func WithConn(ctx context.Context, db *gorm.DB, fn func(conn *sql.Conn) error) (err error) {
	if db == nil {
		return errors.New("database is not configured")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to release connection: %w", cerr)
		}
	}()

	return fn(conn)
}

func driver(cfg Config) string {
	if cfg.Driver == "" {
		return DriverPostgres
	}
	return cfg.Driver
}

func timeoutSeconds(cfg Config) int {
	if cfg.TimeoutSeconds <= 0 {
		return 30
	}
	return cfg.TimeoutSeconds
}
