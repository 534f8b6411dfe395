package repositories

import "context"

// OperativeClientStore keeps the client each user is currently operating for.
// Selections are per user session and may expire.
type OperativeClientStore interface {
	// GetOperativeClientID returns the selected client, ok=false when nothing is selected.
	GetOperativeClientID(ctx context.Context, userID string) (clientID string, ok bool, err error)
	SetOperativeClientID(ctx context.Context, userID, clientID string) error
	ClearOperativeClientID(ctx context.Context, userID string) error
}
