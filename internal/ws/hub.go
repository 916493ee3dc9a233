package ws

import (
	"context"
	"sync"
	"time"

	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/wheel"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

var liveSessions = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "wheel_live_sessions",
		Help: "Open WebSocket wheel sessions",
	},
	[]string{"wheel"},
)

func init() {
	prometheus.MustRegister(liveSessions)
}

// HubConfig tunes live sessions
type HubConfig struct {
	FrameInterval  time.Duration
	SpinsPerSecond float64
	IdleTimeout    time.Duration
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	wheels  *service.WheelService
	cfg     HubConfig
}

func NewHub(wheels *service.WheelService, cfg HubConfig) *Hub {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	if cfg.SpinsPerSecond <= 0 {
		cfg.SpinsPerSecond = 1
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	return &Hub{
		clients: make(map[string]*Client),
		wheels:  wheels,
		cfg:     cfg,
	}
}

// Serve attaches a live wheel session to an upgraded connection and blocks
// until it closes.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, wheelID string) error {
	burst := int(h.cfg.SpinsPerSecond)
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		ID:       uuid.NewString(),
		Wheel:    wheelID,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
		Hub:      h,
		limiter:  rate.NewLimiter(rate.Limit(h.cfg.SpinsPerSecond), burst),
		frame:    h.cfg.FrameInterval,
		commands: make(chan string, 16),
		done:     make(chan struct{}),
	}
	c.log = logger.With("session_id", c.ID, "wheel", wheelID)
	c.touch()

	session, catalog, err := h.wheels.NewSession(ctx, wheelID, clientEmitter{c: c}, wheel.WithRandom(wheel.CryptoSource{}))
	if err != nil {
		_ = conn.Close()
		return err
	}
	c.session = session
	c.catalog = catalog

	h.register(c)
	defer h.unregister(c)

	c.log.Info("live session opened")
	c.Run()
	c.log.Info("live session closed")
	return nil
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	liveSessions.WithLabelValues(c.Wheel).Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.ID]
	delete(h.clients, c.ID)
	h.mu.Unlock()
	if ok {
		liveSessions.WithLabelValues(c.Wheel).Dec()
	}
}

// Count returns the number of open sessions per wheel
func (h *Hub) Count() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]int)
	for _, c := range h.clients {
		out[c.Wheel]++
	}
	return out
}

// StartCleanup closes sessions that have been idle too long, until ctx is done.
func (h *Hub) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				h.cleanupIdle(now)
			}
		}
	}()
}

func (h *Hub) cleanupIdle(now time.Time) int {
	h.mu.RLock()
	var stale []*Client
	for _, c := range h.clients {
		if c.IdleFor(now) > h.cfg.IdleTimeout {
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		c.log.Info("closing idle session")
		c.Close()
	}
	return len(stale)
}

// Shutdown closes every open session
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Close()
	}
}
