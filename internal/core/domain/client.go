package domain

// Client is a customer the exchange house operates for.
type Client struct {
	ClientID       string        `json:"clientID"`
	Name           string        `json:"name"`
	DocumentID     *string       `json:"documentID,omitempty"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone,omitempty"`
	SegmentationID *string       `json:"segmentationID,omitempty"`
	Segmentation   *Segmentation `json:"segmentation,omitempty"` // populated on reads
	Status         Status        `json:"status"`
	AuditFields
}

// IsActive reports whether the client can be operated on.
func (c Client) IsActive() bool {
	return c.Status == StatusActive
}
