package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	pgxslog "github.com/mcosta74/pgx-slog"
)

const (
	DefaultMaxConns        = 16
	DefaultMinConns        = 0
	DefaultLogLevel        = tracelog.LogLevelError
	DefaultApplicationName = "public-sale"

	// DefaultLockTimeout bounds how long a transaction waits for the sale lock.
	DefaultLockTimeout = 10 * time.Second
)

type Config struct {
	Host     string `mapstructure:"host"`     // Default is 127.0.0.1
	Port     string `mapstructure:"port"`     // Default is 5432
	User     string `mapstructure:"user"`     // Default is empty
	Password string `mapstructure:"password"` // Default is empty
	DBName   string `mapstructure:"db_name"`  // Default is postgres
	SSLMode  string `mapstructure:"ssl_mode"` // Default is prefer
	URL      string `mapstructure:"url"`      // If URL is provided, other fields are ignored

	MaxConns int32 `mapstructure:"max_conns"` // Default is 16
	MinConns int32 `mapstructure:"min_conns"` // Default is 0

	ApplicationName string        `mapstructure:"application_name"` // Default is public-sale
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`     // Default is 10s

	Debug bool `mapstructure:"debug"`
}

// NewPool creates a new connection pool to the database
func NewPool(ctx context.Context, conf Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(conf.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config to create a new connection pool")
	}
	connConfig.MaxConns = utils.Default(conf.MaxConns, DefaultMaxConns)
	connConfig.MinConns = utils.Default(conf.MinConns, DefaultMinConns)
	connConfig.ConnConfig.Tracer = conf.QueryTracer()
	for key, value := range conf.RuntimeParams() {
		connConfig.ConnConfig.RuntimeParams[key] = value
	}

	connPool, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a new connection pool")
	}

	if err := connPool.Ping(ctx); err != nil {
		connPool.Close()
		return nil, errors.Wrap(err, "failed to connect to the database")
	}

	return connPool, nil
}

// String returns the connection string (DSN format or URL format)
func (conf Config) String() string {
	if conf.URL != "" {
		return conf.URL
	}

	fields := []string{
		"host=" + utils.Default(conf.Host, "127.0.0.1"),
		"dbname=" + utils.Default(conf.DBName, "postgres"),
		"port=" + utils.Default(conf.Port, "5432"),
		"sslmode=" + utils.Default(conf.SSLMode, "prefer"),
	}
	if conf.User != "" {
		fields = append(fields, "user="+conf.User)
	}
	if conf.Password != "" {
		fields = append(fields, "password="+conf.Password)
	}
	return strings.Join(fields, " ")
}

// RuntimeParams are the session settings applied to every pooled connection.
func (conf Config) RuntimeParams() map[string]string {
	return map[string]string{
		"application_name": utils.Default(conf.ApplicationName, DefaultApplicationName),
		"lock_timeout":     fmt.Sprintf("%dms", utils.Default(conf.LockTimeout, DefaultLockTimeout).Milliseconds()),
	}
}

func (conf Config) QueryTracer() pgx.QueryTracer {
	loglevel := DefaultLogLevel
	if conf.Debug {
		loglevel = tracelog.LogLevelTrace
	}
	return &tracelog.TraceLog{
		Logger:   pgxslog.NewLogger(logger.With("package", "postgres")),
		LogLevel: loglevel,
	}
}
