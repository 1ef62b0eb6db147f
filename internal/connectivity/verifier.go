package connectivity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/geodata/etlprov/internal/config"
)

// Result is the outcome of a successful check. It is shown to the operator
// and never persisted.
type Result struct {
	Kind       config.Kind
	Endpoint   string
	ServerTime time.Time
	Detail     string
	Duration   time.Duration
}

// Verifier runs connectivity checks.
type Verifier struct {
	drivers map[config.Kind]Driver
	timeout time.Duration
}

// NewVerifier returns a Verifier using drivers, bounding each check by timeout.
// A non-positive timeout falls back to config.DefaultVerifyTimeout.
func NewVerifier(drivers map[config.Kind]Driver, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = config.DefaultVerifyTimeout
	}
	return &Verifier{drivers: drivers, timeout: timeout}
}

// Timeout returns the per-check bound.
func (v *Verifier) Timeout() time.Duration {
	return v.timeout
}

// Verify checks one profile. Every failure is a *config.ConnectionError; a
// timeout also matches context.DeadlineExceeded.
func (v *Verifier) Verify(ctx context.Context, p *config.ConnectionProfile) (*Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("kind", p.Kind, "endpoint", p.Endpoint())
	fail := func(err error) error {
		return &config.ConnectionError{Kind: p.Kind, Endpoint: p.Endpoint(), Err: err}
	}

	d, ok := v.drivers[p.Kind]
	if !ok {
		return nil, fail(fmt.Errorf("no driver registered for %s", p.Kind))
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	logger.V(1).Info("verifying connection", "timeout", v.timeout)
	start := time.Now()

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := check(ctx, d, p)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no response within %s: %w", v.timeout, err)
		}
		logger.Info("connection check abandoned", "reason", err.Error())
		return nil, fail(err)
	case o := <-done:
		if o.err != nil {
			logger.V(1).Info("connection check failed", "reason", o.err.Error())
			return nil, fail(o.err)
		}
		o.res.Duration = time.Since(start)
		logger.V(1).Info("connection verified", "duration", o.res.Duration)
		return o.res, nil
	}
}

// check runs in its own goroutine and may outlive Verify when the driver
// ignores ctx.
func check(ctx context.Context, d Driver, p *config.ConnectionProfile) (*Result, error) {
	db, err := d.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	serverTime, detail, err := d.Probe(ctx, db)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:       p.Kind,
		Endpoint:   p.Endpoint(),
		ServerTime: serverTime,
		Detail:     detail,
	}, nil
}
