package domain

// PaymentMethodType classifies how a client pays the exchange house.
type PaymentMethodType string

const (
	PaymentTransfer PaymentMethodType = "TRANSFER"
	PaymentCard     PaymentMethodType = "CARD"
	PaymentWallet   PaymentMethodType = "WALLET"
	PaymentCash     PaymentMethodType = "CASH"
)

// IsValid reports whether t is a known payment method type.
func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentTransfer, PaymentCard, PaymentWallet, PaymentCash:
		return true
	}
	return false
}

// PaymentMethod is an entry of the payment method catalog.
type PaymentMethod struct {
	PaymentMethodID string            `json:"paymentMethodID"`
	Name            string            `json:"name"`
	Type            PaymentMethodType `json:"type"`
	IsActive        bool              `json:"isActive"`
	AuditFields
}
