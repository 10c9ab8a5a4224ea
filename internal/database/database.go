package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mindspark/internal/config"
	"mindspark/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	go_ora "github.com/sijms/go-ora/v2"
	"go.uber.org/zap"
)

const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
)

func init() {
	// go-ora registers itself as "oracle", which sqlx does not know.
	// Queries are written with '?' and rebound to :argN.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SQLDriverName maps a configured dialect onto its database/sql driver name.
func SQLDriverName(driver string) string {
	if driver == DriverPostgres {
		return "pgx"
	}
	return "oracle"
}

// DSN builds the connection string for the configured dialect.
func DSN(cfg config.DBConfig) string {
	if cfg.Driver == DriverPostgres {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
			Path:   "/" + cfg.DBName,
		}
		q := u.Query()
		if cfg.SSLMode != "" {
			q.Set("sslmode", cfg.SSLMode)
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.DBName, cfg.User, cfg.Password, nil)
}

// NewSQLXDB opens and pings a pool for the configured dialect.
//
// Model structs carry upper-case db tags matching Oracle's column names.
// Postgres folds unquoted identifiers to lower case, so its mapper lowers the tags.
func NewSQLXDB(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(SQLDriverName(cfg.Driver), DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverPostgres {
		db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToLower, strings.ToLower)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("name", cfg.DBName),
	)
	return db, nil
}
