package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"gorm.io/gorm"
)

// ConfirmResult reports what one confirmation attempt did.
type ConfirmResult struct {
	PrixId        int   `json:"prix_id"`
	Confirmations int64 `json:"confirmations"`
	Created       bool  `json:"created"`
}

// RegisterReputationUpdater subscribes the handler that credits a submitter's
// reputation when their price is confirmed. Imported prices have no submitter
// and earn nothing.
func RegisterReputationUpdater() {
	RegisterPriceConfirmedHandler(func(tx *gorm.DB, event PriceConfirmedEvent) error {
		if event.SubmitterId == 0 {
			return nil
		}
		return models.AddReputation(tx, event.SubmitterId, config.ReputationPerConfirmation())
	})
}

// ConfirmPrice records one user's endorsement of a community price.
//
// A submitter cannot confirm their own price. A repeat confirmation by the
// same user is absorbed: Created is false and nothing is written. Otherwise
// the confirmation row and every event handler's writes commit in one
// transaction, serialized per price by an advisory lock. A redis lock fronts
// the database lock to shed redundant contenders early; losing it is not an
// error.
func ConfirmPrice(ctx context.Context, userId int, prixId int) (*ConfirmResult, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	var prix models.Prix
	if err := db.WithContext(ctx).First(&prix, prixId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if prix.SubmittedById != nil && *prix.SubmittedById == userId {
		return nil, utils.NewForbiddenError("vous ne pouvez pas confirmer votre propre prix")
	}

	// best-effort redis lock, the advisory lock below is authoritative
	locker := config.GetRedisLock()
	if locker != nil {
		lockKey := fmt.Sprintf("confirm:%d", prixId)
		lock, err := locker.Obtain(ctx, lockKey, 10*time.Second, nil)
		if err == nil {
			defer func() {
				_ = lock.Release(ctx)
			}()
		} else if !errors.Is(err, redislock.ErrNotObtained) {
			config.LogError(logger, "workflow", "ConfirmPrice", "redis lock", prixId, err)
		}
	}

	result := ConfirmResult{PrixId: prixId}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquirePriceLock(tx, prixId); err != nil {
			return err
		}
		defer ReleasePriceLock(tx, prixId)

		var existing int64
		err := tx.Model(&models.PrixConfirmation{}).
			Where("prix_id = ? AND user_id = ?", prixId, userId).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			result.Created = false
			return nil
		}

		confirmation := models.PrixConfirmation{PrixId: prixId, UserId: userId}
		if err := tx.Create(&confirmation).Error; err != nil {
			return err
		}
		result.Created = true

		event := PriceConfirmedEvent{
			PrixId:      prixId,
			ConfirmerId: userId,
			OccurredAt:  time.Now(),
		}
		if prix.SubmittedById != nil {
			event.SubmitterId = *prix.SubmittedById
		}
		return dispatchPriceConfirmed(tx, event)
	})
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&models.PrixConfirmation{}).
		Where("prix_id = ?", prixId).Count(&result.Confirmations).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
