package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/models"
	"github.com/SscSPs/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(db *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientSelect = `
	SELECT c.client_id, c.name, c.document_id, c.email, c.phone, c.segmentation_id, c.status,
		c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
		s.name, s.discount_percent, s.status
	FROM clients c
	LEFT JOIN segmentations s ON s.segmentation_id = c.segmentation_id`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.Name, &m.DocumentID, &m.Email, &m.Phone, &m.SegmentationID, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.SegName, &m.SegDiscountPercent, &m.SegStatus,
	)
	return m, err
}

func (r *PgxClientRepository) queryClients(ctx context.Context, query string, args ...any) ([]domain.Client, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}
	return mapping.ToDomainClientSlice(ms), nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	m, err := scanClient(r.Pool.QueryRow(ctx, clientSelect+` WHERE c.client_id = $1;`, clientID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find client %s", clientID)
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.queryClients(ctx, clientSelect+` ORDER BY c.name, c.client_id LIMIT $1 OFFSET $2;`, limit, offset)
}

func (r *PgxClientRepository) ListClientsByUserID(ctx context.Context, userID string) ([]domain.Client, error) {
	return r.queryClients(ctx, clientSelect+`
	JOIN user_clients uc ON uc.client_id = c.client_id
	WHERE uc.user_id = $1
	ORDER BY c.name, c.client_id;`, userID)
}

func (r *PgxClientRepository) IsUserAssigned(ctx context.Context, userID, clientID string) (bool, error) {
	var assigned bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_clients WHERE user_id = $1 AND client_id = $2);`,
		userID, clientID).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment of user %s to client %s: %w", userID, clientID, err)
	}
	return assigned, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO clients (client_id, name, document_id, email, phone, segmentation_id, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.ClientID, m.Name, m.DocumentID, m.Email, m.Phone, m.SegmentationID, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "client "+m.Email)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE clients
		SET name = $1, document_id = $2, email = $3, phone = $4, segmentation_id = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE client_id = $9;`,
		m.Name, m.DocumentID, m.Email, m.Phone, m.SegmentationID, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ClientID)
	if err != nil {
		return translateWriteError(err, "client "+m.Email)
	}
	return requireAffected(tag, "client "+m.ClientID)
}

// AssignUser is idempotent.
func (r *PgxClientRepository) AssignUser(ctx context.Context, clientID, userID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO user_clients (user_id, client_id) VALUES ($1, $2)
		ON CONFLICT (user_id, client_id) DO NOTHING;`, userID, clientID)
	if err != nil {
		return translateWriteError(err, "client assignment")
	}
	return nil
}

func (r *PgxClientRepository) UnassignUser(ctx context.Context, clientID, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM user_clients WHERE user_id = $1 AND client_id = $2;`, userID, clientID)
	if err != nil {
		return fmt.Errorf("failed to unassign user %s from client %s: %w", userID, clientID, err)
	}
	return requireAffected(tag, "client assignment")
}
