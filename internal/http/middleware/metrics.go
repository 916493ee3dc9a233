package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Limiter names used as the "limiter" label
const (
	limiterAPI  = "api"
	limiterSpin = "spin"
	limiterIP   = "ip"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Requests let through by a rate limiter",
		},
		[]string{"limiter", "endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests, RLBlocked)
}
