package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Push message types sent over the notification channel.
const (
	PushTypeConnected   = "conexion"
	PushTypeRateChanged = "notificar_cambio_tasa"
)

// PushMessage is the JSON object written to a live notification connection.
type PushMessage struct {
	Type             string           `json:"type"`
	Message          string           `json:"message,omitempty"`
	Moneda           string           `json:"moneda,omitempty"`
	PrecioAnterior   *decimal.Decimal `json:"precio_anterior,omitempty"`
	PrecioNuevo      *decimal.Decimal `json:"precio_nuevo,omitempty"`
	PorcentajeCambio *decimal.Decimal `json:"porcentaje_cambio,omitempty"`
	Timestamp        *time.Time       `json:"timestamp,omitempty"`
}

// NewConnectedMessage is sent once when a connection opens.
func NewConnectedMessage(text string) PushMessage {
	return PushMessage{Type: PushTypeConnected, Message: text}
}

// NewRateChangedMessage builds the notification for change. The percentage is rounded to 2 places.
func NewRateChangedMessage(change RateChange) PushMessage {
	previous := change.PreviousPrice
	current := change.NewPrice
	pct := change.PercentDelta.Round(2)
	at := change.DetectedAt.UTC()
	return PushMessage{
		Type:             PushTypeRateChanged,
		Moneda:           change.CurrencyCode,
		PrecioAnterior:   &previous,
		PrecioNuevo:      &current,
		PorcentajeCambio: &pct,
		Timestamp:        &at,
	}
}

// UserGroup is the name of the connection group holding every live connection of userID.
func UserGroup(userID string) string {
	return "user_" + userID
}
