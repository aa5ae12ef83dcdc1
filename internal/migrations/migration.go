package migrations

import (
	"encoding/json"

	"gorm.io/gorm"

	"pedebot/internal/bot"
	"pedebot/internal/database"
	"pedebot/internal/models"
)

// RunMigrations creates the catalog schema and seeds a demo menu when the
// store is empty, so a fresh install answers "cardápio" out of the box.
func RunMigrations(db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	return seedDefaultData(db)
}

// Reset drops and recreates every catalog table, then reseeds. Used by the
// reseed script only; never called by the server.
func Reset(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&models.Category{},
		&models.Dish{},
		&models.ComplementGroup{},
		&models.ComplementOption{},
		&models.DishComplementGroup{},
		&models.StoreSettings{},
		&models.DeliveryZone{},
	)
	if err != nil {
		return err
	}
	return RunMigrations(db)
}

func seedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Dish{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Pizzas", Position: 1, Active: true},
		{Name: "Bebidas", Position: 2, Active: true},
		{Name: "Sobremesas", Position: 3, Active: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	dishes := []models.Dish{
		{CategoryID: categories[0].ID, Name: "Pizza Calabresa", Description: "Calabresa, cebola e mussarela", Price: 42.90, Type: "pizza", Active: true},
		{CategoryID: categories[0].ID, Name: "Pizza Marguerita", Description: "Mussarela, tomate e manjericão", Price: 39.90, Type: "pizza", Active: true},
		{CategoryID: categories[0].ID, Name: "Pizza Quatro Queijos", Description: "Mussarela, provolone, gorgonzola e parmesão", Price: 46.90, Type: "pizza", Active: true},
		{CategoryID: categories[1].ID, Name: "Refrigerante 2L", Description: "Garrafa 2 litros", Price: 12.00, Type: "beverage", Active: true},
		{CategoryID: categories[1].ID, Name: "Suco de Laranja", Description: "Copo 500ml", Price: 9.00, Type: "beverage", Active: true},
		{CategoryID: categories[2].ID, Name: "Pudim", Description: "Fatia de pudim de leite", Price: 10.00, Type: "dessert", Active: true},
	}
	if err := db.Create(&dishes).Error; err != nil {
		return err
	}

	borda := models.ComplementGroup{Name: "Borda", MaxSelection: 1}
	extras := models.ComplementGroup{Name: "Extras", MaxSelection: 3}
	talheres := models.ComplementGroup{Name: "Guardanapos e talheres", MaxSelection: 1}
	for _, g := range []*models.ComplementGroup{&borda, &extras, &talheres} {
		if err := db.Create(g).Error; err != nil {
			return err
		}
	}

	options := []models.ComplementOption{
		{GroupID: borda.ID, Name: "Catupiry", Price: 6.00, Active: true, Position: 1},
		{GroupID: borda.ID, Name: "Cheddar", Price: 5.00, Active: true, Position: 2},
		{GroupID: extras.ID, Name: "Bacon", Price: 4.00, Active: true, Position: 1},
		{GroupID: extras.ID, Name: "Cebola caramelizada", Price: 3.00, Active: true, Position: 2},
		{GroupID: extras.ID, Name: "Azeitona", Price: 2.50, Active: true, Position: 3},
		{GroupID: talheres.ID, Name: "Sim", Price: 0, Active: true, Position: 1},
		{GroupID: talheres.ID, Name: "Não", Price: 0, Active: true, Position: 2},
	}
	if err := db.Create(&options).Error; err != nil {
		return err
	}

	links := []models.DishComplementGroup{
		{DishID: dishes[0].ID, GroupID: borda.ID, IsRequired: false, Position: 1},
		{DishID: dishes[0].ID, GroupID: extras.ID, IsRequired: false, Position: 2},
		{DishID: dishes[0].ID, GroupID: talheres.ID, IsRequired: false, Position: 3},
		{DishID: dishes[1].ID, GroupID: borda.ID, IsRequired: false, Position: 1},
		{DishID: dishes[2].ID, GroupID: borda.ID, IsRequired: false, Position: 1},
		{DishID: dishes[2].ID, GroupID: extras.ID, IsRequired: false, Position: 2},
	}
	if err := db.Create(&links).Error; err != nil {
		return err
	}

	crossSell, err := json.Marshal(bot.CrossSellConfig{
		Beverage: bot.BeverageRule{
			Enabled:         true,
			DishID:          dishes[3].ID,
			TriggerTypes:    []string{"pizza"},
			DiscountPercent: 10,
		},
		Dessert: bot.DessertRule{
			Enabled:     true,
			DishID:      dishes[5].ID,
			MinSubtotal: 40,
		},
	})
	if err != nil {
		return err
	}

	settings := models.StoreSettings{
		Slug:            "pizzaria-demo",
		Name:            "Pizzaria Demo",
		Address:         "Rua das Flores, 123 - Centro",
		Phone:           "(11) 99999-0000",
		OpeningHours:    "Ter a Dom, 18h às 23h",
		DeliveryFeeFlat: 8.00,
		CrossSellConfig: string(crossSell),
	}
	if err := db.Create(&settings).Error; err != nil {
		return err
	}

	zones := []models.DeliveryZone{
		{Neighborhood: "Centro", Fee: 5.00},
		{Neighborhood: "Jardim América", Fee: 8.00},
		{Neighborhood: "Vila Nova", Fee: 10.00},
	}
	return db.Create(&zones).Error
}
