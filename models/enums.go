package models

// PriceClass tags a resolved price with how its validity was established.
// The tag is derived at resolution time, never stored.
type PriceClass string

const (
	// PriceClassFlyer: validity comes from the flyer's date window.
	PriceClassFlyer PriceClass = "rabais"
	// PriceClassCommunity: validity comes from the recency of the submission.
	PriceClassCommunity PriceClass = "communautaire"
)

type ReportReason string

const (
	ReportReasonIncorrectPrice ReportReason = "INCORRECT_PRICE"
	ReportReasonWrongProduct   ReportReason = "WRONG_PRODUCT"
	ReportReasonExpiredDeal    ReportReason = "EXPIRED_DEAL"
	ReportReasonOther          ReportReason = "OTHER"
)

func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonIncorrectPrice, ReportReasonWrongProduct, ReportReasonExpiredDeal, ReportReasonOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusReviewed ReportStatus = "REVIEWED"
	ReportStatusResolved ReportStatus = "RESOLVED"
)
