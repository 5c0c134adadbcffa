package workflow

import (
	"context"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/models"
)

// OptimizeRequest carries the shopping list and the store-name fragments to
// shop at.
type OptimizeRequest struct {
	Items  []OptimizeItemInput `json:"items" binding:"required"`
	Stores []string            `json:"stores" binding:"required"`
}

type OptimizeItemInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// DealView is one candidate deal for one list entry.
type DealView struct {
	Type                models.PriceClass `json:"type"`
	PriceId             int               `json:"price_id"`
	Store               string            `json:"store"`
	Name                string            `json:"name"`
	Price               string            `json:"price"`
	Details             string            `json:"details"`
	SubmittedByUsername *string           `json:"submitted_by_username"`
}

// OptimizedItem is one list entry with its candidate deals. SelectedDeal and
// SelectedPrice belong to the client; the server always hands them back
// unselected.
type OptimizedItem struct {
	Name          string      `json:"name"`
	Quantity      string      `json:"quantity"`
	Deals         []*DealView `json:"deals"`
	SelectedDeal  interface{} `json:"selectedDeal"`
	SelectedPrice string      `json:"selectedPrice"`
}

// OptimizeShoppingList matches every list entry against the prices currently
// valid at the selected stores. Prices are resolved once per call; each entry
// then runs through the two-phase matcher. Blank entries are dropped from the
// response entirely.
func OptimizeShoppingList(ctx context.Context, request *OptimizeRequest, now time.Time) ([]*OptimizedItem, error) {
	candidates, err := models.ResolveActivePrices(ctx, request.Stores, now)
	if err != nil {
		return nil, err
	}
	cfg := DefaultMatchConfig()
	db := config.GetDB()

	results := make([]*OptimizedItem, 0, len(request.Items))
	for _, item := range request.Items {
		if NormalizeItemName(item.Name) == "" {
			continue
		}
		optimized := &OptimizedItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			Deals:         []*DealView{},
			SelectedDeal:  nil,
			SelectedPrice: "",
		}
		for _, match := range MatchPrices(item.Name, candidates, cfg) {
			prix := match.Prix
			var details string
			if match.Class == models.PriceClassFlyer {
				details = models.FormatFlyerDetails(prix)
			} else {
				var confirmations int64
				if err := db.WithContext(ctx).Model(&models.PrixConfirmation{}).
					Where("prix_id = ?", prix.ID).Count(&confirmations).Error; err != nil {
					return nil, err
				}
				details = models.FormatCommunityDetails(prix, confirmations)
			}
			var submitter *string
			if prix.SubmittedBy != nil {
				submitter = &prix.SubmittedBy.Username
			}
			optimized.Deals = append(optimized.Deals, &DealView{
				Type:                match.Class,
				PriceId:             prix.ID,
				Store:               prix.Commerce.Nom,
				Name:                prix.Produit.Nom,
				Price:               prix.Prix.StringFixed(2),
				Details:             details,
				SubmittedByUsername: submitter,
			})
		}
		results = append(results, optimized)
	}
	return results, nil
}
