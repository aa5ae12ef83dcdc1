package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pedebot/internal/bot"
	"pedebot/internal/models"
)

// ErrZoneNotFound means no delivery zone matched the neighborhood; callers
// fall back to the store's flat fee.
var ErrZoneNotFound = errors.New("delivery zone not found")

// StoreRepository supplies the store configuration snapshot and the
// neighborhood delivery-fee table.
type StoreRepository interface {
	Snapshot(slug string) (bot.Store, error)
	DeliveryFee(neighborhood string) (float64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Snapshot(slug string) (bot.Store, error) {
	var settings models.StoreSettings
	if err := r.db.Where("slug = ?", slug).First(&settings).Error; err != nil {
		return bot.Store{}, fmt.Errorf("failed to load store settings: %w", err)
	}

	return bot.Store{
		Slug:            settings.Slug,
		Name:            settings.Name,
		Address:         settings.Address,
		Phone:           settings.Phone,
		OpeningHours:    settings.OpeningHours,
		DeliveryFeeFlat: settings.DeliveryFeeFlat,
		CrossSell:       bot.ParseCrossSellConfig(settings.CrossSellConfig),
	}, nil
}

func (r *storeRepository) DeliveryFee(neighborhood string) (float64, error) {
	var zones []models.DeliveryZone
	if err := r.db.Find(&zones).Error; err != nil {
		return 0, fmt.Errorf("failed to load delivery zones: %w", err)
	}

	target := bot.Normalize(neighborhood)
	if target == "" {
		return 0, ErrZoneNotFound
	}
	for _, z := range zones {
		zn := bot.Normalize(z.Neighborhood)
		if zn == target || strings.Contains(target, zn) || strings.Contains(zn, target) {
			return z.Fee, nil
		}
	}
	return 0, ErrZoneNotFound
}
