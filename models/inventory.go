package models

import (
	"context"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"gorm.io/gorm"
)

// InventoryCategory is one user-defined shelf in the personal pantry. The
// position drives display order and is dense per user.
type InventoryCategory struct {
	ID        int       `gorm:"primary_key" json:"id"`
	UserId    int       `gorm:"not null;index" json:"user_id"`
	Nom       string    `gorm:"size:100;not null" json:"nom" binding:"required"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// InventoryItem is one pantry entry. Quantity is free-form text ("2 boîtes").
type InventoryItem struct {
	ID         int                `gorm:"primary_key" json:"id"`
	UserId     int                `gorm:"not null;index" json:"user_id"`
	CategoryId *int               `gorm:"index" json:"category_id"`
	Category   *InventoryCategory `json:"category,omitempty"`
	Nom        string             `gorm:"size:255;not null" json:"nom" binding:"required"`
	Quantite   string             `gorm:"size:50" json:"quantite"`
	Notes      string             `gorm:"size:500" json:"notes"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryCategory struct {
	Nom string `json:"nom" binding:"required"`
}

type NewInventoryItem struct {
	CategoryId *int   `json:"category_id"`
	Nom        string `json:"nom" binding:"required"`
	Quantite   string `json:"quantite"`
	Notes      string `json:"notes"`
}

func GetInventoryCategories(ctx context.Context, userId int) ([]*InventoryCategory, error) {
	db := config.GetDB()
	var results []*InventoryCategory
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("position, id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CreateInventoryCategory appends a category at the end of the user's order.
func CreateInventoryCategory(ctx context.Context, userId int, input *NewInventoryCategory) (*InventoryCategory, error) {
	db := config.GetDB()
	var category InventoryCategory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&InventoryCategory{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
			return err
		}
		category = InventoryCategory{
			UserId:   userId,
			Nom:      strings.TrimSpace(input.Nom),
			Position: int(count),
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ReorderInventoryCategories rewrites positions from the given id order.
// Every id must belong to the user; unknown ids fail the whole reorder.
func ReorderInventoryCategories(ctx context.Context, userId int, orderedIds []int) error {
	if len(orderedIds) == 0 {
		return utils.NewValidationError("ordered_ids", "liste vide")
	}
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIds {
			result := tx.Model(&InventoryCategory{}).
				Where("id = ? AND user_id = ?", id, userId).
				Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return utils.ErrorRecordNotFound
			}
		}
		return nil
	})
}

func DeleteInventoryCategory(ctx context.Context, userId int, id int) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category InventoryCategory
		if err := tx.Where("id = ? AND user_id = ?", id, userId).First(&category).Error; err != nil {
			return utils.ErrorRecordNotFound
		}
		// orphaned items fall back to the uncategorized bucket
		if err := tx.Model(&InventoryItem{}).
			Where("category_id = ? AND user_id = ?", id, userId).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func GetInventoryItems(ctx context.Context, userId int) ([]*InventoryItem, error) {
	db := config.GetDB()
	var results []*InventoryItem
	err := db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userId).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func CreateInventoryItem(ctx context.Context, userId int, input *NewInventoryItem) (*InventoryItem, error) {
	db := config.GetDB()
	if input.CategoryId != nil {
		if _, err := utils.FetchOwnedModel[InventoryCategory](ctx, userId, *input.CategoryId); err != nil {
			return nil, err
		}
	}
	item := InventoryItem{
		UserId:     userId,
		CategoryId: input.CategoryId,
		Nom:        strings.TrimSpace(input.Nom),
		Quantite:   input.Quantite,
		Notes:      input.Notes,
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInventoryItem(ctx context.Context, userId int, id int, input *NewInventoryItem) (*InventoryItem, error) {
	db := config.GetDB()
	item, err := utils.FetchOwnedModel[InventoryItem](ctx, userId, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryId != nil {
		if _, err := utils.FetchOwnedModel[InventoryCategory](ctx, userId, *input.CategoryId); err != nil {
			return nil, err
		}
	}
	if err := db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"category_id": input.CategoryId,
		"nom":         strings.TrimSpace(input.Nom),
		"quantite":    input.Quantite,
		"notes":       input.Notes,
	}).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func DeleteInventoryItem(ctx context.Context, userId int, id int) error {
	db := config.GetDB()
	item, err := utils.FetchOwnedModel[InventoryItem](ctx, userId, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(item).Error
}

// InventoryImport is a whole-pantry bulk load grouped by category name.
type InventoryImport struct {
	Categories []*InventoryImportCategory `json:"categories" binding:"required"`
}

type InventoryImportCategory struct {
	Nom   string                 `json:"nom" binding:"required"`
	Items []*InventoryImportItem `json:"items"`
}

type InventoryImportItem struct {
	Nom      string `json:"nom" binding:"required"`
	Quantite string `json:"quantite"`
	Notes    string `json:"notes"`
}

// ImportInventory loads categories and items in bulk. Categories are matched
// by name per user; items are always appended, never merged.
func ImportInventory(ctx context.Context, userId int, payload *InventoryImport) (int, error) {
	db := config.GetDB()
	imported := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&InventoryCategory{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
			return err
		}
		nextPosition := int(count)

		for _, categoryInput := range payload.Categories {
			nom := strings.TrimSpace(categoryInput.Nom)
			if nom == "" {
				continue
			}
			var category InventoryCategory
			err := tx.Where("user_id = ? AND nom = ?", userId, nom).First(&category).Error
			if err == gorm.ErrRecordNotFound {
				category = InventoryCategory{UserId: userId, Nom: nom, Position: nextPosition}
				if err := tx.Create(&category).Error; err != nil {
					return err
				}
				nextPosition++
			} else if err != nil {
				return err
			}

			for _, itemInput := range categoryInput.Items {
				if strings.TrimSpace(itemInput.Nom) == "" {
					continue
				}
				item := InventoryItem{
					UserId:     userId,
					CategoryId: &category.ID,
					Nom:        strings.TrimSpace(itemInput.Nom),
					Quantite:   itemInput.Quantite,
					Notes:      itemInput.Notes,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				imported++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
