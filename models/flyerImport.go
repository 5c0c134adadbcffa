package models

import (
	"context"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FlyerImport is the structured payload of one parsed store flyer.
type FlyerImport struct {
	Store      string                `json:"store" binding:"required"`
	Address    string                `json:"address"`
	Website    string                `json:"website"`
	DateDebut  string                `json:"date_debut" binding:"required"`
	DateFin    string                `json:"date_fin" binding:"required"`
	Categories []*FlyerCategoryInput `json:"categories" binding:"required"`
}

type FlyerCategoryInput struct {
	CategoryName string            `json:"category_name"`
	Items        []*FlyerItemInput `json:"items"`
}

type FlyerItemInput struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       string `json:"price"`
	SinglePrice string `json:"single_price"`
}

// FlyerImportResult summarizes what one import touched.
type FlyerImportResult struct {
	CommerceNom   string `json:"commerce_nom"`
	CirculaireId  int    `json:"circulaire_id"`
	ImportedCount int    `json:"imported_count"`
	SkippedCount  int    `json:"skipped_count"`
}

// ImportFlyer upserts a whole flyer in one transaction: the commerce, the
// flyer window, every category and product, and one flyer-classed price per
// item. A missing unit price falls back to zero; an item with no name or an
// unparseable price is counted and skipped rather than failing the whole
// flyer. Re-importing the same flyer refreshes prices instead of duplicating
// them.
func ImportFlyer(ctx context.Context, payload *FlyerImport) (*FlyerImportResult, error) {
	dateDebut, err := time.Parse("2006-01-02", payload.DateDebut)
	if err != nil {
		return nil, utils.NewValidationError("date_debut", "format attendu AAAA-MM-JJ")
	}
	dateFin, err := time.Parse("2006-01-02", payload.DateFin)
	if err != nil {
		return nil, utils.NewValidationError("date_fin", "format attendu AAAA-MM-JJ")
	}
	if dateFin.Before(dateDebut) {
		return nil, utils.NewValidationError("date_fin", "doit suivre date_debut")
	}
	if strings.TrimSpace(payload.Store) == "" {
		return nil, utils.NewValidationError("store", "store est requis")
	}

	db := config.GetDB()
	result := FlyerImportResult{CommerceNom: strings.TrimSpace(payload.Store)}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commerce, err := getOrCreateCommerce(tx, result.CommerceNom, payload.Address, payload.Website)
		if err != nil {
			return err
		}
		circulaire, err := getOrCreateCirculaire(tx, commerce.ID, dateDebut, dateFin)
		if err != nil {
			return err
		}
		result.CirculaireId = circulaire.ID

		for _, category := range payload.Categories {
			categorie, err := getOrCreateCategorie(tx, strings.TrimSpace(category.CategoryName))
			if err != nil {
				return err
			}
			for _, item := range category.Items {
				if strings.TrimSpace(item.Name) == "" {
					result.SkippedCount++
					continue
				}
				value := decimal.Zero
				if raw := strings.TrimSpace(item.SinglePrice); raw != "" {
					value, err = decimal.NewFromString(raw)
					if err != nil {
						result.SkippedCount++
						continue
					}
				}
				produit, err := getOrCreateProduit(tx, item.Name, item.Brand, categorie)
				if err != nil {
					return err
				}

				var existing Prix
				err = tx.Where("produit_id = ? AND commerce_id = ? AND circulaire_id = ?",
					produit.ID, commerce.ID, circulaire.ID).First(&existing).Error
				if err == nil {
					updates := map[string]interface{}{
						"prix":         value.Round(2),
						"details_prix": item.Price,
					}
					if err := tx.Model(&existing).Updates(updates).Error; err != nil {
						return err
					}
					result.ImportedCount++
					continue
				}
				if err != gorm.ErrRecordNotFound {
					return err
				}

				prix := Prix{
					ProduitId:    produit.ID,
					CommerceId:   commerce.ID,
					CirculaireId: &circulaire.ID,
					Prix:         value.Round(2),
					DetailsPrix:  item.Price,
				}
				if err := tx.Create(&prix).Error; err != nil {
					return err
				}
				result.ImportedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
