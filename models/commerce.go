package models

import (
	"context"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"gorm.io/gorm"
)

// Commerce is a store or grocery chain location prices are attached to.
type Commerce struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Nom       string    `gorm:"size:200;not null;unique" json:"nom" binding:"required"`
	Adresse   string    `json:"adresse"`
	SiteWeb   string    `gorm:"size:255" json:"site_web"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NormalizeSelectors lowercases, trims and deduplicates store-name fragments.
// Blank fragments are dropped.
func NormalizeSelectors(selectors []string) []string {
	out := make([]string, 0, len(selectors))
	seen := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NameMatchesAnySelector reports whether a store name contains any of the
// normalized fragments as a case-insensitive substring ("iga" matches
// "IGA Extra"). Selector matching is an explicit predicate rather than SQL so
// the rule stays in one place.
func NameMatchesAnySelector(name string, normalizedSelectors []string) bool {
	lowered := strings.ToLower(name)
	for _, fragment := range normalizedSelectors {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}

func GetCommerces(ctx context.Context) ([]*Commerce, error) {
	db := config.GetDB()
	var results []*Commerce
	if err := db.WithContext(ctx).Order("nom").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// getOrCreateCommerce finds a commerce by exact name or creates it. When it
// already exists, address/website are refreshed from the incoming payload if
// provided.
func getOrCreateCommerce(tx *gorm.DB, nom string, adresse string, siteWeb string) (*Commerce, error) {
	var commerce Commerce
	err := tx.Where("nom = ?", nom).First(&commerce).Error
	if err == nil {
		updates := map[string]interface{}{}
		if adresse != "" && adresse != commerce.Adresse {
			updates["adresse"] = adresse
		}
		if siteWeb != "" && siteWeb != commerce.SiteWeb {
			updates["site_web"] = siteWeb
		}
		if len(updates) > 0 {
			if err := tx.Model(&commerce).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &commerce, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	commerce = Commerce{Nom: nom, Adresse: adresse, SiteWeb: siteWeb}
	if err := tx.Create(&commerce).Error; err != nil {
		return nil, err
	}
	return &commerce, nil
}
