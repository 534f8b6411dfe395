package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSegmentationRequest defines a new client segmentation.
type CreateSegmentationRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"nonnegative_decimal"`
	Status          *string         `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateSegmentationRequest defines the updatable fields of a segmentation.
type UpdateSegmentationRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	Status          *string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type SegmentationResponse struct {
	SegmentationID  string          `json:"segmentationID"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

func ToSegmentationResponse(seg *domain.Segmentation) SegmentationResponse {
	return SegmentationResponse{
		SegmentationID:  seg.SegmentationID,
		Name:            seg.Name,
		DiscountPercent: seg.DiscountPercent,
		Status:          string(seg.Status),
		CreatedAt:       seg.CreatedAt,
		LastUpdatedAt:   seg.LastUpdatedAt,
	}
}

func ToListSegmentationResponse(segs []domain.Segmentation) []SegmentationResponse {
	res := make([]SegmentationResponse, len(segs))
	for i := range segs {
		res[i] = ToSegmentationResponse(&segs[i])
	}
	return res
}
