package repository

import (
	"fmt"

	"gorm.io/gorm"

	"pedebot/internal/bot"
	"pedebot/internal/models"
)

// CatalogRepository loads the read-only menu snapshot the engine works
// against. The engine never writes to the catalog.
type CatalogRepository interface {
	Snapshot() (*bot.Catalog, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Snapshot() (*bot.Catalog, error) {
	var categories []models.Category
	if err := r.db.Where("active = ?", true).Order("position asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var dishes []models.Dish
	if err := r.db.Order("category_id asc, id asc").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}

	var links []models.DishComplementGroup
	if err := r.db.Order("dish_id asc, position asc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load dish complement links: %w", err)
	}

	var groups []models.ComplementGroup
	if err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to load complement groups: %w", err)
	}

	groupByID := make(map[uint]models.ComplementGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}

	dishGroups := make(map[uint][]bot.DishGroup)
	for _, link := range links {
		g, ok := groupByID[link.GroupID]
		if !ok {
			continue
		}
		dishGroups[link.DishID] = append(dishGroups[link.DishID], bot.DishGroup{
			Group:      g,
			IsRequired: link.IsRequired,
		})
	}

	return &bot.Catalog{
		Categories: categories,
		Dishes:     dishes,
		Groups:     dishGroups,
	}, nil
}
