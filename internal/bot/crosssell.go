package bot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CrossSellConfig carries the three independent upsell rules of a store.
// Evaluation order is fixed: beverage, then dessert, then combo.
type CrossSellConfig struct {
	Beverage BeverageRule `json:"beverage"`
	Dessert  DessertRule  `json:"dessert"`
	Combo    ComboRule    `json:"combo"`
}

type BeverageRule struct {
	Enabled         bool     `json:"enabled"`
	DishID          uint     `json:"dish_id"`
	TriggerTypes    []string `json:"trigger_types"`
	DiscountPercent float64  `json:"discount_percent"`
	Message         string   `json:"message"`
}

type DessertRule struct {
	Enabled         bool    `json:"enabled"`
	DishID          uint    `json:"dish_id"`
	MinSubtotal     float64 `json:"min_subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	Message         string  `json:"message"`
}

type ComboRule struct {
	Enabled         bool     `json:"enabled"`
	DishID          uint     `json:"dish_id"`
	MinPizzas       int      `json:"min_pizzas"`
	DiscountPercent *float64 `json:"discount_percent"`
	Message         string   `json:"message"`
}

// CrossSellOffer is a single evaluated upsell. Offers never stack: at most
// one is surfaced per turn.
type CrossSellOffer struct {
	Type       string  `json:"type"` // "beverage" | "dessert" | "combo"
	DishID     uint    `json:"dish_id"`
	DishName   string  `json:"dish_name"`
	Price      float64 `json:"price"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Suggestion string  `json:"suggestion"`
}

// ParseCrossSellConfig decodes the store's JSON config. Invalid or empty
// config yields a zero value (all rules disabled).
func ParseCrossSellConfig(raw string) CrossSellConfig {
	var cfg CrossSellConfig
	if raw == "" {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return CrossSellConfig{}
	}
	return cfg
}

// EvaluateCrossSell returns the first applicable offer for the cart, or nil.
// The cart may be tentative (current cart plus an item about to be added).
func EvaluateCrossSell(cart []CartItem, catalog *Catalog, cfg CrossSellConfig) *CrossSellOffer {
	if offer := evalBeverage(cart, catalog, cfg.Beverage); offer != nil {
		return offer
	}
	if offer := evalDessert(cart, catalog, cfg.Dessert); offer != nil {
		return offer
	}
	return evalCombo(cart, catalog, cfg.Combo)
}

func evalBeverage(cart []CartItem, catalog *Catalog, rule BeverageRule) *CrossSellOffer {
	if !rule.Enabled || cartHasDish(cart, rule.DishID) {
		return nil
	}
	triggers := rule.TriggerTypes
	if len(triggers) == 0 {
		triggers = []string{"pizza"}
	}
	triggered := false
	for _, item := range cart {
		if item.Type == "beverage" {
			return nil
		}
		for _, t := range triggers {
			if item.Type == t {
				triggered = true
			}
		}
	}
	if !triggered {
		return nil
	}
	return buildOffer("beverage", "Que tal uma bebida gelada? 🥤", rule.DishID, rule.DiscountPercent, rule.Message, catalog)
}

func evalDessert(cart []CartItem, catalog *Catalog, rule DessertRule) *CrossSellOffer {
	if !rule.Enabled || cartHasDish(cart, rule.DishID) {
		return nil
	}
	min := rule.MinSubtotal
	if min == 0 {
		min = 40
	}
	if Subtotal(cart) < min {
		return nil
	}
	return buildOffer("dessert", "Uma sobremesa para fechar? 🍮", rule.DishID, rule.DiscountPercent, rule.Message, catalog)
}

func evalCombo(cart []CartItem, catalog *Catalog, rule ComboRule) *CrossSellOffer {
	if !rule.Enabled || cartHasDish(cart, rule.DishID) {
		return nil
	}
	min := rule.MinPizzas
	if min == 0 {
		min = 2
	}
	pizzas := 0
	for _, item := range cart {
		if item.Type == "pizza" {
			pizzas += item.Quantity
		}
	}
	if pizzas < min {
		return nil
	}
	// Combo reward is free unless the store configured a discount.
	discount := 100.0
	if rule.DiscountPercent != nil {
		discount = *rule.DiscountPercent
	}
	return buildOffer("combo", "Você ganhou um brinde! 🎁", rule.DishID, discount, rule.Message, catalog)
}

func buildOffer(offerType, title string, dishID uint, discount float64, message string, catalog *Catalog) *CrossSellOffer {
	dish := catalog.DishByID(dishID)
	if dish == nil || !dish.Active {
		return nil
	}
	price := dish.Price * (1 - discount/100)
	if message == "" {
		if price == 0 {
			message = fmt.Sprintf("%s Leve **%s** de graça!", title, dish.Name)
		} else {
			message = fmt.Sprintf("%s Adicione **%s** por apenas %s!", title, dish.Name, FormatPrice(price))
		}
	} else {
		message = strings.ReplaceAll(message, "{dish}", dish.Name)
		message = strings.ReplaceAll(message, "{price}", FormatPrice(price))
	}
	return &CrossSellOffer{
		Type:       offerType,
		DishID:     dish.ID,
		DishName:   dish.Name,
		Price:      price,
		Title:      title,
		Message:    message,
		Suggestion: "Adicionar " + dish.Name,
	}
}

func cartHasDish(cart []CartItem, dishID uint) bool {
	for _, item := range cart {
		if item.DishID == dishID {
			return true
		}
	}
	return false
}
