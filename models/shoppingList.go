package models

import (
	"context"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
)

// ShoppingListItem is one line of a user's shopping list. Checked lines stay
// on the list until cleared so the user sees what was already picked up.
type ShoppingListItem struct {
	ID        int       `gorm:"primary_key" json:"id"`
	UserId    int       `gorm:"not null;index" json:"user_id"`
	Nom       string    `gorm:"size:255;not null" json:"nom" binding:"required"`
	Quantite  string    `gorm:"size:50" json:"quantite"`
	Checked   *bool     `gorm:"not null;default:false" json:"checked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewShoppingListItem struct {
	Nom      string `json:"nom" binding:"required"`
	Quantite string `json:"quantite"`
}

func GetShoppingList(ctx context.Context, userId int) ([]*ShoppingListItem, error) {
	db := config.GetDB()
	var results []*ShoppingListItem
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func AddShoppingListItem(ctx context.Context, userId int, input *NewShoppingListItem) (*ShoppingListItem, error) {
	db := config.GetDB()
	item := ShoppingListItem{
		UserId:   userId,
		Nom:      strings.TrimSpace(input.Nom),
		Quantite: input.Quantite,
		Checked:  utils.NewFalse(),
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func ToggleShoppingListItem(ctx context.Context, userId int, id int, checked bool) (*ShoppingListItem, error) {
	db := config.GetDB()
	item, err := utils.FetchOwnedModel[ShoppingListItem](ctx, userId, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(item).Update("checked", checked).Error; err != nil {
		return nil, err
	}
	item.Checked = &checked
	return item, nil
}

func DeleteShoppingListItem(ctx context.Context, userId int, id int) error {
	db := config.GetDB()
	item, err := utils.FetchOwnedModel[ShoppingListItem](ctx, userId, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(item).Error
}

// ClearCheckedShoppingListItems removes every checked line and returns how
// many were removed.
func ClearCheckedShoppingListItems(ctx context.Context, userId int) (int64, error) {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("user_id = ? AND checked = ?", userId, true).
		Delete(&ShoppingListItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
