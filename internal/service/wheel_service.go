package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/feedback"
	"rewards_wheel/internal/game"
	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/wheel"
)

var ErrInvalidSeed = errors.New("server seed and client seed are required")

// CatalogStore is where wheel catalogs are kept. repository.CatalogRepository implements it.
type CatalogStore interface {
	List(ctx context.Context) ([]domain.Catalog, error)
	Get(ctx context.Context, id string) (*domain.Catalog, error)
}

// Seed makes a spin reproducible.
type Seed struct {
	ServerSeed string
	ClientSeed string
	Nonce      uint64
}

// SpinOptions tune a one-shot spin
type SpinOptions struct {
	PreviousAngleDeg float64
	Seed             *Seed
}

// SpinResult is a fully resolved spin
type SpinResult struct {
	WheelID string
	Plan    wheel.SpinPlan
	Prize   domain.Prize
	Ticks   int
}

// WheelService resolves catalogs and runs spins
type WheelService struct {
	store   CatalogStore
	factory *game.Factory
	log     *slog.Logger
}

// NewWheelService creates a wheel service. store may be nil, in which case
// only the built-in catalogs are served.
func NewWheelService(store CatalogStore, factory *game.Factory) *WheelService {
	return &WheelService{
		store:   store,
		factory: factory,
		log:     logger.With("component", "wheel_service"),
	}
}

// Settings returns the spin settings sessions are created with
func (s *WheelService) Settings() game.Settings {
	return s.factory.Settings()
}

// Catalogs returns the built-in catalogs overlaid with the stored ones
func (s *WheelService) Catalogs(ctx context.Context) ([]domain.Catalog, error) {
	catalogs := game.DefaultCatalogs()
	if s.store == nil {
		return catalogs, nil
	}

	stored, err := s.store.List(ctx)
	if err != nil {
		s.log.Warn("catalog store unavailable, serving built-in wheels", "error", err)
		return catalogs, nil
	}

	index := make(map[string]int, len(catalogs))
	for i, c := range catalogs {
		index[c.ID] = i
	}
	for _, c := range stored {
		if i, ok := index[c.ID]; ok {
			catalogs[i] = c
			continue
		}
		index[c.ID] = len(catalogs)
		catalogs = append(catalogs, c)
	}

	return catalogs, nil
}

// Catalog looks up a wheel by id, falling back to the built-ins
func (s *WheelService) Catalog(ctx context.Context, id string) (*domain.Catalog, error) {
	if s.store != nil {
		c, err := s.store.Get(ctx, id)
		switch {
		case err == nil:
			return c, nil
		case errors.Is(err, domain.ErrCatalogNotFound):
		default:
			s.log.Warn("catalog lookup failed, trying built-in wheels", "wheel", id, "error", err)
		}
	}

	if c, ok := game.DefaultCatalog(id); ok {
		return c, nil
	}
	return nil, domain.ErrCatalogNotFound
}

// NewSession creates an idle live session for the wheel. Metrics and debug
// logging are attached in front of the given emitter.
func (s *WheelService) NewSession(ctx context.Context, id string, emitter wheel.Emitter, opts ...wheel.Option) (*wheel.Session, *domain.Catalog, error) {
	c, err := s.Catalog(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	fanout := feedback.NewFanout(s.log, feedback.NewLog(s.log.With("wheel", id)))
	if emitter != nil {
		fanout.Add(emitter)
	}

	all := append([]wheel.Option{wheel.WithEmitter(fanout)}, opts...)
	session, err := s.factory.CreateSession(c, all...)
	if err != nil {
		return nil, nil, err
	}
	fanout.Add(feedback.NewMetrics(id, session.Table()))

	return session, c, nil
}

// Spin resolves a complete spin in one call: draw, plan and run to settlement.
func (s *WheelService) Spin(ctx context.Context, id string, opts SpinOptions) (*SpinResult, error) {
	var random wheel.RandomSource = wheel.CryptoSource{}
	if opts.Seed != nil {
		if opts.Seed.ServerSeed == "" || opts.Seed.ClientSeed == "" {
			return nil, ErrInvalidSeed
		}
		random = wheel.NewSeededSource(opts.Seed.ServerSeed, opts.Seed.ClientSeed, opts.Seed.Nonce)
	}

	session, c, err := s.NewSession(ctx, id, nil,
		wheel.WithRandom(random),
		wheel.WithStartAngle(opts.PreviousAngleDeg),
	)
	if err != nil {
		return nil, err
	}

	plan, err := session.RequestSpin()
	if err != nil {
		return nil, err
	}
	session.FastForward()

	prize, ok := c.Prize(plan.SelectedIndex)
	if !ok {
		return nil, fmt.Errorf("wheel %s: no prize at index %d", id, plan.SelectedIndex)
	}

	return &SpinResult{
		WheelID: c.ID,
		Plan:    plan,
		Prize:   prize,
		Ticks:   session.Ticks(),
	}, nil
}
