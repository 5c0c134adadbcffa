package models

import (
	"context"
	"fmt"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prix is one observed price for a product at a store. A row either belongs
// to a flyer (CirculaireId set) or was submitted by the community
// (CirculaireId nil); resolution tags it with the matching PriceClass instead
// of branching on the nullable reference downstream.
type Prix struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ProduitId     int             `gorm:"not null;index" json:"produit_id"`
	Produit       Produit         `json:"produit"`
	CommerceId    int             `gorm:"not null;index" json:"commerce_id"`
	Commerce      Commerce        `json:"commerce"`
	CirculaireId  *int            `gorm:"index" json:"circulaire_id"`
	Circulaire    *Circulaire     `json:"circulaire,omitempty"`
	Prix          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"prix"`
	DetailsPrix   string          `gorm:"size:100" json:"details_prix"`
	SubmittedById *int            `gorm:"index" json:"submitted_by_id"`
	SubmittedBy   *User           `json:"submitted_by,omitempty"`
	DateMiseAJour time.Time       `gorm:"autoUpdateTime" json:"date_mise_a_jour"`
}

func (Prix) TableName() string {
	return "prix"
}

// PrixConfirmation records one user's endorsement of one price. The composite
// unique index is what makes confirmation idempotent under concurrency.
type PrixConfirmation struct {
	ID        int       `gorm:"primary_key" json:"id"`
	PrixId    int       `gorm:"not null;uniqueIndex:idx_prix_confirmation" json:"prix_id"`
	UserId    int       `gorm:"not null;uniqueIndex:idx_prix_confirmation" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ActivePrice is a price that passed validity resolution, tagged with the
// class that made it valid.
type ActivePrice struct {
	Class PriceClass
	Prix  *Prix
}

// SubmitterUsername returns the submitter's username or "" for imported rows.
func (a *ActivePrice) SubmitterUsername() string {
	if a.Prix.SubmittedBy == nil {
		return ""
	}
	return a.Prix.SubmittedBy.Username
}

// CommunityPriceFresh reports whether a community price last modified at the
// given time is still inside the recency window at `now`. The window start is
// inclusive, mirroring the flyer window's boundaries.
func CommunityPriceFresh(lastModified time.Time, now time.Time) bool {
	return !lastModified.Before(communityWindowStart(now))
}

func communityWindowStart(now time.Time) time.Time {
	return now.Add(-config.CommunityPriceWindow())
}

// ResolveActivePrices returns every currently-valid price at stores whose
// name contains any of the given fragments.
//
// Validity is per class: flyer prices live inside their flyer's inclusive
// date window; community prices live for a rolling window after their last
// modification. An empty selector set resolves to nothing, never to an
// implicit "all stores". `now` is injected so both windows are deterministic
// under test.
func ResolveActivePrices(ctx context.Context, selectors []string, now time.Time) ([]*ActivePrice, error) {
	normalized := NormalizeSelectors(selectors)
	if len(normalized) == 0 {
		return []*ActivePrice{}, nil
	}

	db := config.GetDB()
	today := DateOnly(now)
	windowStart := communityWindowStart(now)

	var flyerPrices []*Prix
	err := db.WithContext(ctx).
		Preload("Produit").Preload("Produit.Categorie").
		Preload("Commerce").Preload("Circulaire").Preload("SubmittedBy").
		Joins("JOIN circulaires ON circulaires.id = prix.circulaire_id").
		Where("circulaires.date_debut <= ? AND circulaires.date_fin >= ?", today, today).
		Find(&flyerPrices).Error
	if err != nil {
		return nil, err
	}

	var communityPrices []*Prix
	err = db.WithContext(ctx).
		Preload("Produit").Preload("Produit.Categorie").
		Preload("Commerce").Preload("SubmittedBy").
		Where("circulaire_id IS NULL AND date_mise_a_jour >= ?", windowStart).
		Find(&communityPrices).Error
	if err != nil {
		return nil, err
	}

	results := make([]*ActivePrice, 0, len(flyerPrices)+len(communityPrices))
	seen := make(map[int]struct{}, len(flyerPrices)+len(communityPrices))
	appendMatching := func(prices []*Prix, class PriceClass) {
		for _, prix := range prices {
			if _, ok := seen[prix.ID]; ok {
				continue
			}
			if !NameMatchesAnySelector(prix.Commerce.Nom, normalized) {
				continue
			}
			seen[prix.ID] = struct{}{}
			results = append(results, &ActivePrice{Class: class, Prix: prix})
		}
	}
	appendMatching(flyerPrices, PriceClassFlyer)
	appendMatching(communityPrices, PriceClassCommunity)

	return results, nil
}

// FormatFlyerDetails renders the promotional details line shown for
// flyer-bound prices.
func FormatFlyerDetails(prix *Prix) string {
	base := prix.DetailsPrix
	if base == "" {
		base = prix.Prix.StringFixed(2) + " $"
	}
	details := "🔥 " + base
	if prix.SubmittedBy != nil {
		details += fmt.Sprintf(" (Ajouté par 👤 %s)", prix.SubmittedBy.Username)
	}
	return details
}

// FormatCommunityDetails renders the details line shown for community prices,
// with the live confirmation count when there is one.
func FormatCommunityDetails(prix *Prix, confirmations int64) string {
	details := "👥 " + prix.Prix.StringFixed(2) + " $"
	if confirmations > 0 {
		details += fmt.Sprintf(" (%d ✓)", confirmations)
	}
	if prix.SubmittedBy != nil {
		details += fmt.Sprintf(" (Ajouté par 👤 %s)", prix.SubmittedBy.Username)
	}
	return details
}

// ActivePriceView is one row of the read-only price projections.
type ActivePriceView struct {
	PriceId             int     `json:"price_id"`
	ProduitNom          string  `json:"produit_nom"`
	CommerceNom         string  `json:"commerce_nom"`
	CategorieNom        string  `json:"categorie_nom,omitempty"`
	DetailsPrix         string  `json:"details_prix"`
	Prix                string  `json:"prix"`
	SubmittedByUsername *string `json:"submitted_by_username"`
}

// ActiveFlyerPrices projects every flyer-bound price whose flyer covers
// today. Validity is re-derived on each call; nothing is cached.
func ActiveFlyerPrices(ctx context.Context, now time.Time) ([]*ActivePriceView, error) {
	db := config.GetDB()
	today := DateOnly(now)

	var prices []*Prix
	err := db.WithContext(ctx).
		Preload("Produit").Preload("Produit.Categorie").
		Preload("Commerce").Preload("SubmittedBy").
		Joins("JOIN circulaires ON circulaires.id = prix.circulaire_id").
		Where("circulaires.date_debut <= ? AND circulaires.date_fin >= ?", today, today).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	views := make([]*ActivePriceView, 0, len(prices))
	for _, prix := range prices {
		categorieNom := "Non classé"
		if prix.Produit.Categorie != nil {
			categorieNom = prix.Produit.Categorie.Nom
		}
		var submitter *string
		if prix.SubmittedBy != nil {
			submitter = &prix.SubmittedBy.Username
		}
		views = append(views, &ActivePriceView{
			PriceId:             prix.ID,
			ProduitNom:          prix.Produit.Nom,
			CommerceNom:         prix.Commerce.Nom,
			CategorieNom:        categorieNom,
			DetailsPrix:         FormatFlyerDetails(prix),
			Prix:                prix.Prix.StringFixed(2),
			SubmittedByUsername: submitter,
		})
	}
	return views, nil
}

// ActiveCommunityPrices projects every community price still inside the
// recency window, annotated with its live confirmation count.
func ActiveCommunityPrices(ctx context.Context, now time.Time) ([]*ActivePriceView, error) {
	db := config.GetDB()
	windowStart := communityWindowStart(now)

	var prices []*Prix
	err := db.WithContext(ctx).
		Preload("Produit").Preload("Commerce").Preload("SubmittedBy").
		Where("circulaire_id IS NULL AND date_mise_a_jour >= ?", windowStart).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	views := make([]*ActivePriceView, 0, len(prices))
	for _, prix := range prices {
		var confirmations int64
		if err := db.WithContext(ctx).Model(&PrixConfirmation{}).
			Where("prix_id = ?", prix.ID).Count(&confirmations).Error; err != nil {
			return nil, err
		}
		var submitter *string
		if prix.SubmittedBy != nil {
			submitter = &prix.SubmittedBy.Username
		}
		views = append(views, &ActivePriceView{
			PriceId:             prix.ID,
			ProduitNom:          prix.Produit.Nom,
			CommerceNom:         prix.Commerce.Nom,
			DetailsPrix:         FormatCommunityDetails(prix, confirmations),
			Prix:                prix.Prix.StringFixed(2),
			SubmittedByUsername: submitter,
		})
	}
	return views, nil
}

type NewPrix struct {
	ProduitId   int    `json:"produit_id" binding:"required"`
	CommerceId  int    `json:"commerce_id" binding:"required"`
	Prix        string `json:"prix" binding:"required"`
	DetailsPrix string `json:"details_prix"`
}

// SubmitCommunityPrice records a price observed in store by the session user.
// No flyer is attached, so the entry is community-classed and subject to the
// recency window.
func SubmitCommunityPrice(ctx context.Context, userId int, input *NewPrix) (*Prix, error) {
	value, err := decimal.NewFromString(input.Prix)
	if err != nil {
		return nil, utils.NewValidationError("prix", "montant invalide")
	}

	db := config.GetDB()
	if _, err := utils.FetchSingleModel[Produit](ctx, input.ProduitId); err != nil {
		return nil, err
	}
	if _, err := utils.FetchSingleModel[Commerce](ctx, input.CommerceId); err != nil {
		return nil, err
	}

	prix := Prix{
		ProduitId:     input.ProduitId,
		CommerceId:    input.CommerceId,
		Prix:          value.Round(2),
		DetailsPrix:   input.DetailsPrix,
		SubmittedById: &userId,
	}
	if err := db.WithContext(ctx).Create(&prix).Error; err != nil {
		return nil, err
	}
	return &prix, nil
}

type NewDeal struct {
	ProductName  string `json:"product_name" binding:"required"`
	Brand        string `json:"brand"`
	CommerceId   int    `json:"commerce_id" binding:"required"`
	PriceDetails string `json:"price_details" binding:"required"`
	SinglePrice  string `json:"single_price" binding:"required"`
	DateDebut    string `json:"date_debut" binding:"required"`
	DateFin      string `json:"date_fin" binding:"required"`
}

// SubmitDeal lets a user file a single flyer deal: the product and the flyer
// window are created on the fly when missing, and the resulting price is
// flyer-classed but still credited to its submitter.
func SubmitDeal(ctx context.Context, userId int, input *NewDeal) (*Prix, error) {
	value, err := decimal.NewFromString(input.SinglePrice)
	if err != nil {
		return nil, utils.NewValidationError("single_price", "montant invalide")
	}
	dateDebut, err := time.Parse("2006-01-02", input.DateDebut)
	if err != nil {
		return nil, utils.NewValidationError("date_debut", "format attendu AAAA-MM-JJ")
	}
	dateFin, err := time.Parse("2006-01-02", input.DateFin)
	if err != nil {
		return nil, utils.NewValidationError("date_fin", "format attendu AAAA-MM-JJ")
	}
	if dateFin.Before(dateDebut) {
		return nil, utils.NewValidationError("date_fin", "doit suivre date_debut")
	}

	db := config.GetDB()
	var commerce Commerce
	if err := db.WithContext(ctx).First(&commerce, input.CommerceId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	var result Prix
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		produit, err := getOrCreateProduit(tx, input.ProductName, input.Brand, nil)
		if err != nil {
			return err
		}
		circulaire, err := getOrCreateCirculaire(tx, commerce.ID, dateDebut, dateFin)
		if err != nil {
			return err
		}
		result = Prix{
			ProduitId:     produit.ID,
			CommerceId:    commerce.ID,
			CirculaireId:  &circulaire.ID,
			Prix:          value.Round(2),
			DetailsPrix:   input.PriceDetails,
			SubmittedById: &userId,
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
