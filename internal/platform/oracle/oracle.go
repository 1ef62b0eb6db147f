// Package oracle opens connections to the Oracle source through the pure Go
// go-ora driver, so no Instant Client installation is needed.
package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/geodata/etlprov/internal/config"
)

// DriverName is the database/sql driver registered by go-ora.
const DriverName = "oracle"

const (
	roundTripQuery = "SELECT SYSDATE FROM DUAL"
	detailQuery    = "SELECT COUNT(*) FROM USER_TABLES"
)

// Config is the explicit driver configuration for one Oracle connection.
// Options are go-ora URL options such as SSL or TIMEOUT.
type Config struct {
	Host     string
	Port     int
	Service  string
	User     string
	Password string
	Options  map[string]string
}

// ConfigFromProfile builds a Config from a source profile and driver options.
func ConfigFromProfile(p *config.ConnectionProfile, options map[string]string) Config {
	opts := make(map[string]string, len(options))
	for k, v := range options {
		opts[strings.ToUpper(k)] = v
	}
	return Config{
		Host:     p.Host,
		Port:     p.PortNumber(),
		Service:  p.Identifier,
		User:     p.User,
		Password: p.Password,
		Options:  opts,
	}
}

// URL returns the go-ora connection URL. It contains the password.
func (c Config) URL() string {
	return go_ora.BuildUrl(c.Host, c.Port, c.Service, c.User, c.Password, maps.Clone(c.Options))
}

// Open returns a handle for c. No connection is made until first use.
func Open(c Config) (*sql.DB, error) {
	db, err := sql.Open(DriverName, c.URL())
	if err != nil {
		return nil, fmt.Errorf("oracle driver unavailable: %w", err)
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

// Probe runs a round-trip query and, best effort, counts the tables visible
// to the connecting user.
func Probe(ctx context.Context, q Querier) (*Result, error) {
	res := &Result{}
	if err := q.QueryRowContext(ctx, roundTripQuery).Scan(&res.ServerTime); err != nil {
		return nil, fmt.Errorf("round-trip query failed: %w", err)
	}

	var tables int64
	if err := q.QueryRowContext(ctx, detailQuery).Scan(&tables); err == nil {
		res.Detail = fmt.Sprintf("%d user tables", tables)
	}
	return res, nil
}
