package models

// StoreSettings holds the per-store configuration the bot reads every turn.
// CrossSellConfig is a JSON document parsed by the bot package.
type StoreSettings struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Slug            string  `json:"slug" gorm:"unique;not null"`
	Name            string  `json:"name" gorm:"not null"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	OpeningHours    string  `json:"opening_hours"`
	DeliveryFeeFlat float64 `json:"delivery_fee_flat"`
	CrossSellConfig string  `json:"cross_sell_config" gorm:"type:text"`
}

type DeliveryZone struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Neighborhood string  `json:"neighborhood" gorm:"not null"`
	Fee          float64 `json:"fee" gorm:"not null"`
}
