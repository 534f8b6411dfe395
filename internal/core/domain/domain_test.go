package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Operation
		ok   bool
	}{
		{"BUY", domain.OperationBuy, true},
		{"sell", domain.OperationSell, true},
		{" compra ", domain.OperationBuy, true},
		{"Venta", domain.OperationSell, true},
		{"", "", false},
		{"SWAP", "", false},
	}
	for _, tt := range tests {
		got, ok := domain.ParseOperation(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.TransactionPending.CanTransitionTo(domain.TransactionCompleted))
	assert.True(t, domain.TransactionPending.CanTransitionTo(domain.TransactionCancelled))
	assert.False(t, domain.TransactionPending.CanTransitionTo(domain.TransactionPending))
	assert.False(t, domain.TransactionCompleted.CanTransitionTo(domain.TransactionCancelled))
	assert.False(t, domain.TransactionCancelled.CanTransitionTo(domain.TransactionCompleted))
}

func TestExchangeRate_Prices(t *testing.T) {
	rate := domain.ExchangeRate{
		BasePrice:      decimal.NewFromInt(7300),
		BuyCommission:  decimal.NewFromInt(40),
		SellCommission: decimal.NewFromInt(60),
	}
	assert.True(t, rate.SellPrice().Equal(decimal.NewFromInt(7360)))
	assert.True(t, rate.BuyPrice().Equal(decimal.NewFromInt(7260)))
}

func TestNewRateChangedMessage(t *testing.T) {
	at := time.Date(2026, 3, 2, 15, 4, 5, 0, time.FixedZone("PYT", -3*3600))
	msg := domain.NewRateChangedMessage(domain.RateChange{
		CurrencyCode:  "USD",
		PreviousPrice: decimal.NewFromInt(7300),
		NewPrice:      decimal.NewFromInt(7400),
		PercentDelta:  decimal.RequireFromString("1.36986301"),
		DetectedAt:    at,
	})

	assert.Equal(t, domain.PushTypeRateChanged, msg.Type)
	assert.Equal(t, "USD", msg.Moneda)
	require.NotNil(t, msg.PorcentajeCambio)
	assert.Equal(t, "1.37", msg.PorcentajeCambio.String())
	require.NotNil(t, msg.Timestamp)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "notificar_cambio_tasa", fields["type"])
	assert.Contains(t, fields, "precio_anterior")
	assert.Contains(t, fields, "precio_nuevo")
	assert.Contains(t, fields, "porcentaje_cambio")
	assert.NotContains(t, fields, "message")
}

func TestNewConnectedMessage_OmitsRateFields(t *testing.T) {
	raw, err := json.Marshal(domain.NewConnectedMessage("hola"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"conexion","message":"hola"}`, string(raw))
}

func TestUserGroup(t *testing.T) {
	assert.Equal(t, "user_42", domain.UserGroup("42"))
}

func TestRole_HasPermission(t *testing.T) {
	role := domain.Role{Permissions: []domain.Permission{domain.PermRatesManage}}
	assert.True(t, role.HasPermission(domain.PermRatesManage))
	assert.False(t, role.HasPermission(domain.PermUsersManage))
	assert.True(t, domain.IsKnownPermission(domain.PermTransactionsOperate))
	assert.False(t, domain.IsKnownPermission("ledger.write"))
}
