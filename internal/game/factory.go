package game

import (
	"fmt"

	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/wheel"
)

type Factory struct {
	settings Settings
}

func NewFactory(settings Settings) *Factory {
	return &Factory{settings: settings}
}

func (f *Factory) Settings() Settings {
	return f.settings
}

// CreateSession builds an idle session for the catalog. opts are applied after
// the factory settings, so callers can override the random source, emitter or
// start angle.
func (f *Factory) CreateSession(c *domain.Catalog, opts ...wheel.Option) (*wheel.Session, error) {
	table, err := c.Table()
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", c.ID, err)
	}

	all := append(f.settings.options(), opts...)
	return wheel.NewSession(table, all...)
}
