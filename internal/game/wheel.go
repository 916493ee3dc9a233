package game

import "rewards_wheel/internal/domain"

const (
	WheelPremios = "premios"
	WheelConsumo = "consumo"
)

// DefaultCatalogs returns the wheels shipped with the service
func DefaultCatalogs() []domain.Catalog {
	return []domain.Catalog{
		{
			ID:    WheelPremios,
			Brand: domain.BrandGreenGarden,
			Name:  "Ruleta de Premios",
			Prizes: []domain.Prize{
				{Label: "Shot de la casa", Weight: domain.Weight(3), Color: "#f39c12"},
				{Label: "Cerveza gratis", Weight: domain.Weight(2), Color: "#2ecc71"},
				{Label: "10% de descuento", Weight: domain.Weight(3), Color: "#3498db"},
				{Label: "Alitas (6 pzas)", Weight: domain.Weight(1), Color: "#e74c3c"},
				{Label: "Michelada", Weight: domain.Weight(1.5), Color: "#9b59b6"},
				{Label: "Sigue participando", Weight: domain.Weight(4), Color: "#4a4a4a"},
				{Label: "Postre gratis", Weight: domain.Weight(1), Color: "#e67e22"},
				{Label: "Ronda para la mesa", Weight: domain.Weight(0.5), Color: "#f1c40f"},
			},
		},
		{
			ID:    WheelConsumo,
			Brand: domain.BrandGreenGarden,
			Name:  "Ruleta de Consumo",
			// equal odds
			Prizes: []domain.Prize{
				{Label: "Toma 1", Color: "#2ecc71"},
				{Label: "Toma 2", Color: "#3498db"},
				{Label: "Reparte 2", Color: "#9b59b6"},
				{Label: "Todos toman", Color: "#e74c3c"},
				{Label: "Cascada", Color: "#f39c12"},
				{Label: "Reto", Color: "#e67e22"},
				{Label: "Verdad", Color: "#1abc9c"},
				{Label: "Te salvas", Color: "#4a4a4a"},
			},
		},
	}
}

// DefaultCatalog looks up a built-in catalog by id.
func DefaultCatalog(id string) (*domain.Catalog, bool) {
	for _, c := range DefaultCatalogs() {
		if c.ID == id {
			return &c, true
		}
	}
	return nil, false
}
