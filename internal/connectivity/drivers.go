package connectivity

import (
	"context"
	"database/sql"
	"time"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/platform/oracle"
	"github.com/geodata/etlprov/internal/platform/postgres"
)

// Driver opens and probes one kind of store.
type Driver struct {
	Open  func(p *config.ConnectionProfile) (*sql.DB, error)
	Probe func(ctx context.Context, db *sql.DB) (serverTime time.Time, detail string, err error)
}

// Drivers returns the production drivers, configured from settings.
func Drivers(s *config.Settings) map[config.Kind]Driver {
	return map[config.Kind]Driver{
		config.KindSource: {
			Open: func(p *config.ConnectionProfile) (*sql.DB, error) {
				return oracle.Open(oracle.ConfigFromProfile(p, s.OracleOptions))
			},
			Probe: func(ctx context.Context, db *sql.DB) (time.Time, string, error) {
				res, err := oracle.Probe(ctx, db)
				if err != nil {
					return time.Time{}, "", err
				}
				return res.ServerTime, res.Detail, nil
			},
		},
		config.KindDestination: {
			Open: func(p *config.ConnectionProfile) (*sql.DB, error) {
				return postgres.Open(postgres.ConfigFromProfile(p, s.PostgresSSLMode, s.Timeouts.Verify))
			},
			Probe: func(ctx context.Context, db *sql.DB) (time.Time, string, error) {
				res, err := postgres.Probe(ctx, db)
				if err != nil {
					return time.Time{}, "", err
				}
				return res.ServerTime, res.Detail, nil
			},
		},
	}
}
