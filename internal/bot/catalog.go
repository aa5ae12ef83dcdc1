package bot

import "pedebot/internal/models"

// DishGroup is a complement group attached to a dish, with the per-dish
// required flag resolved.
type DishGroup struct {
	Group      models.ComplementGroup `json:"group"`
	IsRequired bool                   `json:"is_required"`
}

// Catalog is the read-only menu snapshot the engine works against for one
// turn. Dishes and group lists keep catalog order; matching ties break on
// iteration order.
type Catalog struct {
	Categories []models.Category
	Dishes     []models.Dish
	Groups     map[uint][]DishGroup // dish id -> ordered complement groups
}

// ActiveDishes returns the dishes available for matching, in catalog order.
func (c *Catalog) ActiveDishes() []models.Dish {
	out := make([]models.Dish, 0, len(c.Dishes))
	for _, d := range c.Dishes {
		if d.Active {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) DishByID(id uint) *models.Dish {
	for i := range c.Dishes {
		if c.Dishes[i].ID == id {
			return &c.Dishes[i]
		}
	}
	return nil
}

func (c *Catalog) CategoryName(id uint) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}

// ActiveGroups returns the dish's complement groups in catalog order,
// skipping groups with zero active options.
func (c *Catalog) ActiveGroups(dishID uint) []DishGroup {
	var out []DishGroup
	for _, dg := range c.Groups[dishID] {
		if len(activeOptions(dg.Group)) > 0 {
			out = append(out, dg)
		}
	}
	return out
}

func activeOptions(g models.ComplementGroup) []models.ComplementOption {
	var out []models.ComplementOption
	for _, o := range g.Options {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

// Store is the per-store configuration snapshot consumed by the engine.
type Store struct {
	Slug            string
	Name            string
	Address         string
	Phone           string
	OpeningHours    string
	DeliveryFeeFlat float64
	CrossSell       CrossSellConfig
}

// DeliveryFeeFunc computes the delivery fee for a neighborhood. The actual
// rule (zone table, distance, flat fee) lives outside the engine.
type DeliveryFeeFunc func(neighborhood string) float64
