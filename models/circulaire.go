package models

import (
	"context"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"gorm.io/gorm"
)

// Circulaire is a store flyer with an inclusive validity window. Prices
// attached to a flyer live and die with this window.
type Circulaire struct {
	ID         int       `gorm:"primary_key" json:"id"`
	CommerceId int       `gorm:"not null;index" json:"commerce_id"`
	Commerce   Commerce  `json:"commerce"`
	DateDebut  time.Time `gorm:"type:date;not null" json:"date_debut"`
	DateFin    time.Time `gorm:"type:date;not null" json:"date_fin"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Covers reports whether the window contains the given day, boundaries
// included.
func (c *Circulaire) Covers(today time.Time) bool {
	day := DateOnly(today)
	return !day.Before(DateOnly(c.DateDebut)) && !day.After(DateOnly(c.DateFin))
}

// DateOnly truncates a timestamp to midnight UTC so date-window comparisons
// ignore the time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func getOrCreateCirculaire(tx *gorm.DB, commerceId int, dateDebut time.Time, dateFin time.Time) (*Circulaire, error) {
	var circulaire Circulaire
	err := tx.Where("commerce_id = ? AND date_debut = ? AND date_fin = ?",
		commerceId, DateOnly(dateDebut), DateOnly(dateFin)).First(&circulaire).Error
	if err == nil {
		return &circulaire, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	circulaire = Circulaire{
		CommerceId: commerceId,
		DateDebut:  DateOnly(dateDebut),
		DateFin:    DateOnly(dateFin),
	}
	if err := tx.Create(&circulaire).Error; err != nil {
		return nil, err
	}
	return &circulaire, nil
}

// Active-flyer projection: flyers valid today, grouped per commerce then per
// product category. Shape mirrors the import payload so a client can re-feed
// it.
type FlyerItemView struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       string `json:"price"`
	SinglePrice string `json:"single_price"`
}

type FlyerCategoryView struct {
	CategoryName string           `json:"category_name"`
	Items        []*FlyerItemView `json:"items"`
}

type FlyerCommerceView struct {
	Categories []*FlyerCategoryView `json:"categories"`
}

func GetActiveCirculaires(ctx context.Context, today time.Time) (map[string]*FlyerCommerceView, error) {
	db := config.GetDB()
	day := DateOnly(today)

	var circulaires []*Circulaire
	err := db.WithContext(ctx).
		Preload("Commerce").
		Where("date_debut <= ? AND date_fin >= ?", day, day).
		Find(&circulaires).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]*FlyerCommerceView, len(circulaires))
	for _, circulaire := range circulaires {
		var prices []*Prix
		err := db.WithContext(ctx).
			Preload("Produit").Preload("Produit.Categorie").
			Where("circulaire_id = ?", circulaire.ID).
			Find(&prices).Error
		if err != nil {
			return nil, err
		}

		view := result[circulaire.Commerce.Nom]
		if view == nil {
			view = &FlyerCommerceView{}
			result[circulaire.Commerce.Nom] = view
		}

		byCategory := make(map[string]*FlyerCategoryView)
		for _, category := range view.Categories {
			byCategory[category.CategoryName] = category
		}
		for _, prix := range prices {
			categoryName := DefaultCategorieNom
			if prix.Produit.Categorie != nil {
				categoryName = prix.Produit.Categorie.Nom
			}
			category := byCategory[categoryName]
			if category == nil {
				category = &FlyerCategoryView{CategoryName: categoryName}
				byCategory[categoryName] = category
				view.Categories = append(view.Categories, category)
			}
			category.Items = append(category.Items, &FlyerItemView{
				Name:        prix.Produit.Nom,
				Brand:       prix.Produit.Marque,
				Price:       prix.DetailsPrix,
				SinglePrice: prix.Prix.StringFixed(2),
			})
		}
	}
	return result, nil
}
