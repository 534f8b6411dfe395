package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// TokenSvc issues access tokens for authenticated users.
type TokenSvc interface {
	// GenerateAccessToken issues a signed token for user and returns its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
