package domain

import "github.com/shopspring/decimal"

// Segmentation groups clients that share a commission discount.
type Segmentation struct {
	SegmentationID  string          `json:"segmentationID"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent"` // 0-100
	Status          Status          `json:"status"`
	AuditFields
}

// IsActive reports whether the discount of this segmentation may be applied.
func (s Segmentation) IsActive() bool {
	return s.Status == StatusActive
}
