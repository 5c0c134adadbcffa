package models

import (
	"context"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
)

// Report is a user's claim that a community price is wrong. Reports start
// PENDING and wait for moderation; they never alter the price row itself.
type Report struct {
	ID         int          `gorm:"primary_key" json:"id"`
	PrixId     int          `gorm:"not null;uniqueIndex:idx_report_prix_user" json:"prix_id"`
	Prix       Prix         `json:"prix"`
	ReporterId int          `gorm:"not null;uniqueIndex:idx_report_prix_user" json:"reporter_id"`
	Reporter   User         `json:"reporter"`
	Reason     ReportReason `gorm:"size:30;not null" json:"reason"`
	Comment    string       `gorm:"size:500" json:"comment"`
	Status     ReportStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

type NewReport struct {
	Reason  string `json:"reason" binding:"required"`
	Comment string `json:"comment"`
}

// ReportPrice files a report against a price. A second report by the same
// user on the same price is absorbed: the original report is returned and
// `created` is false so the handler can answer 200 instead of 201.
func ReportPrice(ctx context.Context, userId int, prixId int, input *NewReport) (*Report, bool, error) {
	reason := ReportReason(input.Reason)
	if !reason.Valid() {
		return nil, false, utils.NewValidationError("reason", "motif de signalement invalide")
	}

	db := config.GetDB()
	var prix Prix
	if err := db.WithContext(ctx).First(&prix, prixId).Error; err != nil {
		return nil, false, utils.ErrorRecordNotFound
	}

	var existing Report
	err := db.WithContext(ctx).
		Where("prix_id = ? AND reporter_id = ?", prixId, userId).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}

	report := Report{
		PrixId:     prixId,
		ReporterId: userId,
		Reason:     reason,
		Comment:    input.Comment,
		Status:     ReportStatusPending,
	}
	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, false, err
	}
	return &report, true, nil
}
