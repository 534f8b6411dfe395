package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

// SegmentationSvcFacade manages client segmentations.
type SegmentationSvcFacade interface {
	GetSegmentationByID(ctx context.Context, segmentationID string) (*domain.Segmentation, error)
	ListSegmentations(ctx context.Context) ([]domain.Segmentation, error)
	CreateSegmentation(ctx context.Context, req dto.CreateSegmentationRequest, creatorUserID string) (*domain.Segmentation, error)
	UpdateSegmentation(ctx context.Context, segmentationID string, req dto.UpdateSegmentationRequest, userID string) (*domain.Segmentation, error)
}

// ClientReaderSvc defines read operations for clients
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
	// ListClientsForUser returns the active clients userID operates for.
	ListClientsForUser(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for clients
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)
	DeactivateClient(ctx context.Context, clientID string, userID string) error
	AssignUser(ctx context.Context, clientID, userID string) error
	UnassignUser(ctx context.Context, clientID, userID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}

// OperativeClientSvc tracks which client a user is currently operating for.
type OperativeClientSvc interface {
	// SelectOperativeClient stores clientID as the operative client of userID.
	// The client must be active and assigned to the user.
	SelectOperativeClient(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// GetOperativeClient returns the selected client, falling back to the first active assigned client.
	// It returns nil without error when the user operates for no active client.
	GetOperativeClient(ctx context.Context, userID string) (*domain.Client, error)
}
