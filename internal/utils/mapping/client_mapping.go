package mapping

import (
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/models"
)

// ToModelSegmentation converts a domain Segmentation to a model Segmentation
func ToModelSegmentation(d domain.Segmentation) models.Segmentation {
	return models.Segmentation{
		SegmentationID:  d.SegmentationID,
		Name:            d.Name,
		DiscountPercent: d.DiscountPercent,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSegmentation converts a model Segmentation to a domain Segmentation
func ToDomainSegmentation(m models.Segmentation) domain.Segmentation {
	return domain.Segmentation{
		SegmentationID:  m.SegmentationID,
		Name:            m.Name,
		DiscountPercent: m.DiscountPercent,
		Status:          domain.Status(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelClient converts a domain Client to a model Client. The joined segmentation columns are left empty.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:       d.ClientID,
		Name:           d.Name,
		DocumentID:     d.DocumentID,
		Email:          d.Email,
		Phone:          d.Phone,
		SegmentationID: d.SegmentationID,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client, attaching the joined segmentation when present.
func ToDomainClient(m models.Client) domain.Client {
	c := domain.Client{
		ClientID:       m.ClientID,
		Name:           m.Name,
		DocumentID:     m.DocumentID,
		Email:          m.Email,
		Phone:          m.Phone,
		SegmentationID: m.SegmentationID,
		Status:         domain.Status(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.SegmentationID != nil && m.SegName != nil {
		seg := domain.Segmentation{
			SegmentationID:  *m.SegmentationID,
			Name:            *m.SegName,
			DiscountPercent: m.SegDiscountPercent.Decimal,
		}
		if m.SegStatus != nil {
			seg.Status = domain.Status(*m.SegStatus)
		}
		c.Segmentation = &seg
	}
	return c
}

// ToDomainClientSlice converts a slice of model Clients to a slice of domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
