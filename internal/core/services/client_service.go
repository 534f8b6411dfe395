package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
)

type ClientService struct {
	BaseService
	clientRepo       portsrepo.ClientRepositoryFacade
	segmentationRepo portsrepo.SegmentationRepository
	userRepo         portsrepo.UserReader
}

func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, segmentationRepo portsrepo.SegmentationRepository, userRepo portsrepo.UserReader) *ClientService {
	return &ClientService{clientRepo: clientRepo, segmentationRepo: segmentationRepo, userRepo: userRepo}
}

// resolveSegmentation validates a segmentation reference. Empty means none.
func (s *ClientService) resolveSegmentation(ctx context.Context, segmentationID string) (*domain.Segmentation, error) {
	if segmentationID == "" {
		return nil, nil
	}
	seg, err := s.segmentationRepo.FindSegmentationByID(ctx, segmentationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: segmentation '%s' not found", apperrors.ErrValidation, segmentationID)
		}
		return nil, fmt.Errorf("failed to load segmentation %s: %w", segmentationID, err)
	}
	return seg, nil
}

func (s *ClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		DocumentID:  req.DocumentID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Status:      domain.StatusActive,
		AuditFields: domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}
	if req.SegmentationID != nil {
		seg, err := s.resolveSegmentation(ctx, *req.SegmentationID)
		if err != nil {
			return nil, err
		}
		if seg != nil {
			client.SegmentationID = &seg.SegmentationID
			client.Segmentation = seg
		}
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save client", slog.String("email", client.Email))
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// ListClientsForUser returns only active clients.
func (s *ClientService) ListClientsForUser(ctx context.Context, userID string) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClientsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients of user %s: %w", userID, err)
	}
	active := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.DocumentID != nil {
		client.DocumentID = req.DocumentID
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.SegmentationID != nil {
		seg, err := s.resolveSegmentation(ctx, *req.SegmentationID)
		if err != nil {
			return nil, err
		}
		client.Segmentation = seg
		client.SegmentationID = nil
		if seg != nil {
			client.SegmentationID = &seg.SegmentationID
		}
	}
	if client.Status, err = parseStatus(req.Status, client.Status); err != nil {
		return nil, err
	}

	client.Touch(userID, s.CurrentTime())
	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		}
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}
	return client, nil
}

func (s *ClientService) DeactivateClient(ctx context.Context, clientID string, userID string) error {
	inactive := string(domain.StatusInactive)
	_, err := s.UpdateClient(ctx, clientID, dto.UpdateClientRequest{Status: &inactive}, userID)
	return err
}

func (s *ClientService) AssignUser(ctx context.Context, clientID, userID string) error {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if err := s.clientRepo.AssignUser(ctx, clientID, userID); err != nil {
		s.LogError(ctx, err, "Failed to assign user to client", slog.String("client_id", clientID), slog.String("user_id", userID))
		return fmt.Errorf("failed to assign user %s to client %s: %w", userID, clientID, err)
	}
	s.LogInfo(ctx, "User assigned to client", slog.String("client_id", clientID), slog.String("user_id", userID))
	return nil
}

func (s *ClientService) UnassignUser(ctx context.Context, clientID, userID string) error {
	if err := s.clientRepo.UnassignUser(ctx, clientID, userID); err != nil {
		return fmt.Errorf("failed to unassign user %s from client %s: %w", userID, clientID, err)
	}
	s.LogInfo(ctx, "User unassigned from client", slog.String("client_id", clientID), slog.String("user_id", userID))
	return nil
}
