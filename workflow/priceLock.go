package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquirePriceLock serializes trust writes per price across instances using
// MySQL advisory locks.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that will do the confirmation transaction.
func AcquirePriceLock(tx *gorm.DB, prixId int) error {
	lockName := fmt.Sprintf("price:%d", prixId)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire price lock for prix_id=%d", prixId)
	}
	return nil
}

func ReleasePriceLock(tx *gorm.DB, prixId int) {
	lockName := fmt.Sprintf("price:%d", prixId)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
