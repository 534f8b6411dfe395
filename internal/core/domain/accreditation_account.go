package domain

// AccreditationAccountType classifies where proceeds are credited to a client.
type AccreditationAccountType string

const (
	AccountBank       AccreditationAccountType = "BANK_ACCOUNT"
	AccountWallet     AccreditationAccountType = "WALLET"
	AccountCashPickup AccreditationAccountType = "CASH_PICKUP"
)

// IsValid reports whether t is a known account type.
func (t AccreditationAccountType) IsValid() bool {
	switch t {
	case AccountBank, AccountWallet, AccountCashPickup:
		return true
	}
	return false
}

// AccreditationAccount is a destination account registered for a client.
type AccreditationAccount struct {
	AccountID     string                   `json:"accountID"`
	ClientID      string                   `json:"clientID"`
	Type          AccreditationAccountType `json:"type"`
	Provider      string                   `json:"provider"`
	AccountNumber string                   `json:"accountNumber"`
	HolderName    string                   `json:"holderName"`
	CurrencyCode  string                   `json:"currencyCode"`
	IsActive      bool                     `json:"isActive"`
	AuditFields
}
