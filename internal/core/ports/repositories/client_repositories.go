package repositories

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// ClientReader defines read operations for clients. Reads populate Client.Segmentation.
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
	// ListClientsByUserID returns the clients a user operates for, ordered by name.
	ListClientsByUserID(ctx context.Context, userID string) ([]domain.Client, error)
	// IsUserAssigned reports whether userID operates for clientID.
	IsUserAssigned(ctx context.Context, userID, clientID string) (bool, error)
}

// ClientWriter defines write operations for clients.
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	AssignUser(ctx context.Context, clientID, userID string) error
	UnassignUser(ctx context.Context, clientID, userID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}

// SegmentationRepository persists segmentations.
type SegmentationRepository interface {
	FindSegmentationByID(ctx context.Context, segmentationID string) (*domain.Segmentation, error)
	ListSegmentations(ctx context.Context) ([]domain.Segmentation, error)
	SaveSegmentation(ctx context.Context, seg domain.Segmentation) error
	UpdateSegmentation(ctx context.Context, seg domain.Segmentation) error
}
