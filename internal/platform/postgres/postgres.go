// Package postgres opens connections to the PostgreSQL destination through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/lib/pq" // registers the postgres driver

	"github.com/geodata/etlprov/internal/config"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// ApplicationName is reported to the server in pg_stat_activity.
const ApplicationName = "etlprov"

const (
	roundTripQuery = "SELECT NOW()"
	detailQuery    = "SELECT version()"
)

// Config is the explicit driver configuration for one PostgreSQL connection.
type Config struct {
	Host           string
	Port           int
	Database       string
	User           string
	Password       string
	SSLMode        string
	ConnectTimeout time.Duration
}

// ConfigFromProfile builds a Config from a destination profile.
func ConfigFromProfile(p *config.ConnectionProfile, sslMode string, timeout time.Duration) Config {
	if sslMode == "" {
		sslMode = config.DefaultPostgresSSLMode
	}
	return Config{
		Host:           p.Host,
		Port:           p.PortNumber(),
		Database:       p.Identifier,
		User:           p.User,
		Password:       p.Password,
		SSLMode:        sslMode,
		ConnectTimeout: timeout,
	}
}

// DSN returns a postgres:// URL for lib/pq. It contains the password.
func (c Config) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("application_name", ApplicationName)
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open returns a handle for c. No connection is made until first use.
func Open(c Config) (*sql.DB, error) {
	db, err := sql.Open(DriverName, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres driver unavailable: %w", err)
	}
	return db, nil
}

// Querier is satisfied by *sql.DB and *sql.Conn.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Result is what a successful probe learned about the server.
type Result struct {
	ServerTime time.Time
	Detail     string
}

// Probe runs a round-trip query and, best effort, reads the server version.
func Probe(ctx context.Context, q Querier) (*Result, error) {
	res := &Result{}
	if err := q.QueryRowContext(ctx, roundTripQuery).Scan(&res.ServerTime); err != nil {
		return nil, fmt.Errorf("round-trip query failed: %w", err)
	}

	var version string
	if err := q.QueryRowContext(ctx, detailQuery).Scan(&version); err == nil {
		res.Detail = version
	}
	return res, nil
}
