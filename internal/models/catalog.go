package models

// DishType classifies a dish for cross-sell trigger evaluation.
type DishType string

const (
	DishPizza    DishType = "pizza"
	DishBeverage DishType = "beverage"
	DishDessert  DishType = "dessert"
	DishCombo    DishType = "combo"
	DishOther    DishType = "other"
)

type Category struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	Position int    `json:"position"`
	Active   bool   `json:"active" gorm:"default:true"`
}

type Dish struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	CategoryID  uint    `json:"category_id" gorm:"index"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Type        string  `json:"type" gorm:"default:'other'"`
	Active      bool    `json:"active" gorm:"default:true"`
}

type ComplementGroup struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Name         string             `json:"name" gorm:"not null"`
	MaxSelection int                `json:"max_selection" gorm:"default:1"`
	Options      []ComplementOption `json:"options" gorm:"foreignKey:GroupID"`
}

type ComplementOption struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	GroupID  uint    `json:"group_id" gorm:"index;not null"`
	Name     string  `json:"name" gorm:"not null"`
	Price    float64 `json:"price"`
	Active   bool    `json:"active" gorm:"default:true"`
	Position int     `json:"position"`
}

// DishComplementGroup links a dish to a complement group. IsRequired is
// per-dish: the same group can be required for one dish and optional for
// another.
type DishComplementGroup struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	DishID     uint `json:"dish_id" gorm:"index;not null"`
	GroupID    uint `json:"group_id" gorm:"not null"`
	IsRequired bool `json:"is_required"`
	Position   int  `json:"position"`
}
