package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Pinger is the liveness probe a backing store exposes, pgx pools among
// them.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker reports healthy while the backing store answers pings.
type PingHealthChecker struct {
	pinger Pinger
}

func NewPingHealthChecker(pinger Pinger) *PingHealthChecker {
	return &PingHealthChecker{pinger: pinger}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	return hc.pinger.Ping(ctx) == nil
}

// OkHealthChecker always reports healthy, for backends with no liveness
// probe.
type OkHealthChecker struct{}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}
