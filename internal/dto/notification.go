package dto

import (
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CurrencyToggle is one currency entry of the notification configuration.
type CurrencyToggle struct {
	Moneda string `json:"moneda" binding:"required"`
	Activa bool   `json:"activa"`
}

// NotificationConfigRequest replaces the caller's subscription flags.
// Notificaciones is optional; when present it sets the global toggle.
type NotificationConfigRequest struct {
	Monedas        []CurrencyToggle `json:"monedas" binding:"dive"`
	Notificaciones *bool            `json:"notificaciones"`
}

// StatusResponse is the envelope used by the notification configuration endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NotificationConfigResponse reports the caller's current configuration.
type NotificationConfigResponse struct {
	Status         string           `json:"status"`
	Monedas        []CurrencyToggle `json:"monedas"`
	Notificaciones bool             `json:"notificaciones"`
}

// ToCurrencyPreferences converts request toggles into domain preferences with normalized codes.
func ToCurrencyPreferences(toggles []CurrencyToggle) []domain.CurrencyPreference {
	prefs := make([]domain.CurrencyPreference, len(toggles))
	for i, t := range toggles {
		code := strings.ToUpper(strings.TrimSpace(t.Moneda))
		prefs[i] = domain.CurrencyPreference{CurrencyCode: code, Active: t.Activa}
	}
	return prefs
}

func ToNotificationConfigResponse(prefs *domain.NotificationPreferences) NotificationConfigResponse {
	toggles := make([]CurrencyToggle, len(prefs.Currencies))
	for i, p := range prefs.Currencies {
		toggles[i] = CurrencyToggle{Moneda: p.CurrencyCode, Activa: p.Active}
	}
	return NotificationConfigResponse{
		Status:         StatusOK,
		Monedas:        toggles,
		Notificaciones: prefs.Enabled,
	}
}
