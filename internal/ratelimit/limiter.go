// Package ratelimit wraps the core's three named token-bucket limiters —
// RPC query, simulation, and MEV fire — with consistent naming so metrics
// and logs tag them the same way (spec §5).
package ratelimit

import (
	"context"

	uberrl "go.uber.org/ratelimit"
	"golang.org/x/time/rate"
)

// Named is a rate limiter tagged with the name it should appear under in
// logs and metrics.
type Named struct {
	name    string
	limiter *rate.Limiter
}

// NewNamed builds a token-bucket limiter with the given steady rate and
// burst capacity, backed by golang.org/x/time/rate.
func NewNamed(name string, ratePerSec float64, burst int) *Named {
	return &Named{name: name, limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst)}
}

// Name returns the limiter's identifier.
func (n *Named) Name() string { return n.name }

// Wait blocks until a token is available or ctx is done.
func (n *Named) Wait(ctx context.Context) error {
	return n.limiter.Wait(ctx)
}

// Allow reports whether a token is available right now, consuming it if so.
func (n *Named) Allow() bool {
	return n.limiter.Allow()
}

// Fire is the MEV-submission limiter. It is built on go.uber.org/ratelimit
// instead of x/time/rate because submissions are issued from a single
// blocking call site (the trigger evaluator) rather than awaited concurrently,
// and uber's leaky-bucket Take() gives that call site a plain blocking
// primitive with no context threading needed.
type Fire struct {
	limiter uberrl.Limiter
}

// NewFire builds the MEV-fire limiter at ratePerSec with the given burst
// (slack), per spec §5's 5-8/s, burst 10 guidance.
func NewFire(ratePerSec int, burst int) *Fire {
	return &Fire{limiter: uberrl.New(ratePerSec, uberrl.WithSlack(burst))}
}

// Take blocks until the next send is permitted.
func (f *Fire) Take() {
	f.limiter.Take()
}

// Set groups the core's three named limiters so callers thread one value
// instead of three.
type Set struct {
	RPCQuery   *Named
	Simulation *Named
	Fire       *Fire
}

// DefaultSet builds the core's limiters at their spec-mandated defaults:
// RPC query ~50/s burst 70, simulation ~20/s burst 30, MEV fire 5-8/s
// burst 10.
func DefaultSet() *Set {
	return &Set{
		RPCQuery:   NewNamed("rpc_query", 50, 70),
		Simulation: NewNamed("simulation", 20, 30),
		Fire:       NewFire(6, 10),
	}
}
