package workflow

import (
	"time"

	"gorm.io/gorm"
)

// PriceConfirmedEvent is emitted once per newly recorded confirmation, never
// for an absorbed repeat.
type PriceConfirmedEvent struct {
	PrixId      int
	SubmitterId int
	ConfirmerId int
	OccurredAt  time.Time
}

// PriceConfirmedHandler consumes a confirmation event inside the emitting
// transaction, so its writes commit or roll back with the confirmation row.
type PriceConfirmedHandler func(tx *gorm.DB, event PriceConfirmedEvent) error

var priceConfirmedHandlers []PriceConfirmedHandler

// RegisterPriceConfirmedHandler subscribes a handler. Registration happens at
// startup, before the server accepts traffic.
func RegisterPriceConfirmedHandler(handler PriceConfirmedHandler) {
	priceConfirmedHandlers = append(priceConfirmedHandlers, handler)
}

func dispatchPriceConfirmed(tx *gorm.DB, event PriceConfirmedEvent) error {
	for _, handler := range priceConfirmedHandlers {
		if err := handler(tx, event); err != nil {
			return err
		}
	}
	return nil
}
