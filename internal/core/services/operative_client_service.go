package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// OperativeClientService keeps the per-session client selection of each user.
type OperativeClientService struct {
	BaseService
	clientRepo portsrepo.ClientReader
	store      portsrepo.OperativeClientStore
}

func NewOperativeClientService(clientRepo portsrepo.ClientReader, store portsrepo.OperativeClientStore) *OperativeClientService {
	return &OperativeClientService{clientRepo: clientRepo, store: store}
}

// usableClient loads clientID and checks it is active and operated by userID.
func (s *OperativeClientService) usableClient(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	assigned, err := s.clientRepo.IsUserAssigned(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client assignment: %w", err)
	}
	if !assigned {
		return nil, fmt.Errorf("%w: user does not operate for client %s", apperrors.ErrForbidden, clientID)
	}
	if !client.IsActive() {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, clientID)
	}
	return client, nil
}

func (s *OperativeClientService) SelectOperativeClient(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.usableClient(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetOperativeClientID(ctx, userID, clientID); err != nil {
		s.LogError(ctx, err, "Failed to store operative client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to store operative client: %w", err)
	}
	s.LogInfo(ctx, "Operative client selected", slog.String("client_id", clientID))
	return client, nil
}

// GetOperativeClient falls back to the first active assigned client when the stored
// selection is missing or no longer usable. A store failure is logged and treated as no selection.
func (s *OperativeClientService) GetOperativeClient(ctx context.Context, userID string) (*domain.Client, error) {
	clientID, ok, err := s.store.GetOperativeClientID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read operative client, using default")
		ok = false
	}
	if ok {
		client, err := s.usableClient(ctx, userID, clientID)
		if err == nil {
			return client, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) && !errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogInfo(ctx, "Stored operative client no longer usable", slog.String("client_id", clientID), slog.String("reason", err.Error()))
		if err := s.store.ClearOperativeClientID(ctx, userID); err != nil {
			s.LogError(ctx, err, "Failed to clear operative client")
		}
	}

	clients, err := s.clientRepo.ListClientsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients of user %s: %w", userID, err)
	}
	for i := range clients {
		if clients[i].IsActive() {
			return &clients[i], nil
		}
	}
	return nil, nil
}
