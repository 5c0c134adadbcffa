package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"gorm.io/gorm"
)

// Profile carries per-user community state: the reputation score fed by
// confirmations, and the saved dashboard layouts keyed by page name.
type Profile struct {
	ID         int             `gorm:"primary_key" json:"id"`
	UserId     int             `gorm:"not null;unique" json:"user_id"`
	User       User            `json:"user"`
	Reputation int             `gorm:"not null;default:0" json:"reputation"`
	Layouts    json.RawMessage `gorm:"type:json" json:"layouts"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetProfile(ctx context.Context, userId int) (*Profile, error) {
	db := config.GetDB()
	var profile Profile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userId).First(&profile).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	profile.User.PrepareGive()
	return &profile, nil
}

// AddReputation credits points to a user's profile. The increment runs in SQL
// so concurrent confirmations never lose updates.
func AddReputation(tx *gorm.DB, userId int, points int) error {
	result := tx.Model(&Profile{}).Where("user_id = ?", userId).
		Update("reputation", gorm.Expr("reputation + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// GetLayout returns the saved widget layout for one page, or nil when the
// user never saved that page.
func GetLayout(ctx context.Context, userId int, page string) (json.RawMessage, error) {
	profile, err := GetProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(profile.Layouts) == 0 {
		return nil, nil
	}
	var layouts map[string]json.RawMessage
	if err := json.Unmarshal(profile.Layouts, &layouts); err != nil {
		return nil, err
	}
	return layouts[page], nil
}

// SaveLayout stores the widget layout for one page, preserving the other
// pages' layouts.
func SaveLayout(ctx context.Context, userId int, page string, layout json.RawMessage) error {
	if page == "" {
		return utils.NewValidationError("page", "page est requis")
	}
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile Profile
		if err := tx.Where("user_id = ?", userId).First(&profile).Error; err != nil {
			return utils.ErrorRecordNotFound
		}
		layouts := map[string]json.RawMessage{}
		if len(profile.Layouts) > 0 {
			if err := json.Unmarshal(profile.Layouts, &layouts); err != nil {
				return err
			}
		}
		layouts[page] = layout
		merged, err := json.Marshal(layouts)
		if err != nil {
			return err
		}
		return tx.Model(&profile).Update("layouts", json.RawMessage(merged)).Error
	})
}
