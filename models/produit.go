package models

import (
	"context"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"gorm.io/gorm"
)

// Produit is a generic catalog product, independent of where it is sold.
type Produit struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Nom         string     `gorm:"size:255;not null" json:"nom" binding:"required"`
	Marque      string     `gorm:"size:100" json:"marque"`
	CategorieId *int       `json:"categorie_id"`
	Categorie   *Categorie `json:"categorie,omitempty"`
	CodeBarres  *string    `gorm:"size:50;unique" json:"code_barres,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduit struct {
	Nom         string `json:"nom" binding:"required"`
	Marque      string `json:"marque"`
	CategorieId *int   `json:"categorie_id"`
}

// SearchProduits returns catalog products whose name or brand contains the
// query, case-insensitively. An empty query returns an empty list rather than
// the whole catalog.
func SearchProduits(ctx context.Context, query string) ([]*Produit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*Produit{}, nil
	}

	db := config.GetDB()
	var results []*Produit
	pattern := "%" + strings.ToLower(query) + "%"
	err := db.WithContext(ctx).
		Preload("Categorie").
		Where("LOWER(nom) LIKE ? OR LOWER(marque) LIKE ?", pattern, pattern).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CreateProduit adds a product to the global catalog. A product with the same
// name and brand (case-insensitive) is a duplicate.
func CreateProduit(ctx context.Context, input *NewProduit) (*Produit, error) {
	db := config.GetDB()

	var count int64
	err := db.WithContext(ctx).Model(&Produit{}).
		Where("LOWER(nom) = ? AND LOWER(marque) = ?", strings.ToLower(input.Nom), strings.ToLower(input.Marque)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewConflictError("Ce produit existe déjà.")
	}

	if input.CategorieId != nil {
		var catCount int64
		if err := db.WithContext(ctx).Model(&Categorie{}).Where("id = ?", *input.CategorieId).Count(&catCount).Error; err != nil {
			return nil, err
		}
		if catCount == 0 {
			return nil, utils.ErrorRecordNotFound
		}
	}

	produit := Produit{
		Nom:         strings.TrimSpace(input.Nom),
		Marque:      strings.TrimSpace(input.Marque),
		CategorieId: input.CategorieId,
	}
	if err := db.WithContext(ctx).Create(&produit).Error; err != nil {
		return nil, err
	}
	return &produit, nil
}

// getOrCreateProduit looks a product up by case-insensitive (name, brand) and
// creates it on miss. When the product exists and arrives under a different
// category, the category is updated (re-imports win).
func getOrCreateProduit(tx *gorm.DB, nom string, marque string, categorie *Categorie) (*Produit, error) {
	nom = strings.TrimSpace(nom)
	marque = strings.TrimSpace(marque)

	var produit Produit
	err := tx.Where("LOWER(nom) = ? AND LOWER(marque) = ?", strings.ToLower(nom), strings.ToLower(marque)).
		First(&produit).Error
	if err == nil {
		if categorie != nil && (produit.CategorieId == nil || *produit.CategorieId != categorie.ID) {
			if err := tx.Model(&produit).Update("categorie_id", categorie.ID).Error; err != nil {
				return nil, err
			}
			produit.CategorieId = &categorie.ID
		}
		return &produit, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	produit = Produit{Nom: nom, Marque: marque}
	if categorie != nil {
		produit.CategorieId = &categorie.ID
	}
	if err := tx.Create(&produit).Error; err != nil {
		return nil, err
	}
	return &produit, nil
}
