package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategorieNom is assigned to imported products that arrive without a
// category.
const DefaultCategorieNom = "Divers"

type Categorie struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Nom       string    `gorm:"size:100;not null;unique" json:"nom" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func getOrCreateCategorie(tx *gorm.DB, nom string) (*Categorie, error) {
	if nom == "" {
		nom = DefaultCategorieNom
	}
	var categorie Categorie
	err := tx.Where("nom = ?", nom).First(&categorie).Error
	if err == nil {
		return &categorie, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	categorie = Categorie{Nom: nom}
	if err := tx.Create(&categorie).Error; err != nil {
		return nil, err
	}
	return &categorie, nil
}
