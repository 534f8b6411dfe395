package domain

import "time"

// NotificationSubscription records whether a user wants rate change notifications for a currency.
// Unique per (UserID, CurrencyCode).
type NotificationSubscription struct {
	UserID       string    `json:"userID"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CurrencyPreference is the subscription flag of one currency as seen by its user.
type CurrencyPreference struct {
	CurrencyCode string
	Active       bool
}

// NotificationPreferences is the full notification configuration of a user.
type NotificationPreferences struct {
	Enabled    bool
	Currencies []CurrencyPreference
}
