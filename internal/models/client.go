package models

import "github.com/shopspring/decimal"

// Segmentation is a row of the segmentations table.
type Segmentation struct {
	SegmentationID  string          `db:"segmentation_id"`
	Name            string          `db:"name"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	Status          string          `db:"status"`
	AuditFields
}

// Client is a row of the clients table joined with its segmentation.
// The Seg* columns are NULL when the client has no segmentation.
type Client struct {
	ClientID       string  `db:"client_id"`
	Name           string  `db:"name"`
	DocumentID     *string `db:"document_id"`
	Email          string  `db:"email"`
	Phone          *string `db:"phone"`
	SegmentationID *string `db:"segmentation_id"`
	Status         string  `db:"status"`
	AuditFields

	SegName            *string             `db:"seg_name"`
	SegDiscountPercent decimal.NullDecimal `db:"seg_discount_percent"`
	SegStatus          *string             `db:"seg_status"`
}
