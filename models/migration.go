package models

import (
	"log"

	"github.com/epiceriemtl/epicerie_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Commerce{}, &Categorie{}, &Produit{},
		&Circulaire{}, &Prix{}, &PrixConfirmation{},
		&User{}, &Profile{}, &Report{},
		&InventoryCategory{}, &InventoryItem{},
		&ShoppingListItem{}, &Recipe{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
