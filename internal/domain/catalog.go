package domain

import (
	"errors"

	"rewards_wheel/internal/wheel"
)

var ErrCatalogNotFound = errors.New("wheel catalog not found")

// Brand - which venue a wheel belongs to
type Brand string

const (
	BrandGreenGarden   Brand = "green_garden"   // bar & grill, rewards menu
	BrandDomingoCrudon Brand = "domingo_crudon" // Sunday birria pop-up
)

// Prize - one slice of a wheel as configured. A nil weight means 1.
type Prize struct {
	Label  string   `json:"label"`
	Weight *float64 `json:"weight,omitempty"`
	Color  string   `json:"color,omitempty"`
}

// EffectiveWeight returns the weight used for selection.
func (p Prize) EffectiveWeight() float64 {
	if p.Weight == nil {
		return 1
	}
	return *p.Weight
}

// Catalog - an ordered prize list for one wheel
type Catalog struct {
	ID     string  `json:"id"`
	Brand  Brand   `json:"brand"`
	Name   string  `json:"name"`
	Prizes []Prize `json:"prizes"`
}

// Table validates the catalog and converts it to an outcome table.
func (c *Catalog) Table() (*wheel.Table, error) {
	segments := make([]wheel.Segment, len(c.Prizes))
	for i, p := range c.Prizes {
		segments[i] = wheel.Segment{Label: p.Label, Weight: p.EffectiveWeight()}
	}
	return wheel.NewTable(segments)
}

// Prize returns the prize at index i.
func (c *Catalog) Prize(i int) (Prize, bool) {
	if i < 0 || i >= len(c.Prizes) {
		return Prize{}, false
	}
	return c.Prizes[i], true
}

// Weight is a helper for literal catalogs.
func Weight(w float64) *float64 {
	return &w
}
