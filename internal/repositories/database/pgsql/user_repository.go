package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/models"
	"github.com/SscSPs/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, email, notifications_enabled,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID,
		&u.Username,
		&u.PasswordHash,
		&u.Name,
		&u.Email,
		&u.NotificationsEnabled,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	return u, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, username, password_hash, name, email, notifications_enabled,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.Email,
		m.NotificationsEnabled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "user "+m.Username)
	}
	return nil
}

// FindUserByID returns live users only.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by ID %s", userID)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// FindUserByUsername includes soft deleted users so that their names stay reserved.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by username %s", username)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + `
        FROM users
        WHERE deleted_at IS NULL
        ORDER BY username
        LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, email = $2, password_hash = $3, last_updated_at = $4, last_updated_by = $5
        WHERE user_id = $6 AND deleted_at IS NULL;
    `
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Email, m.PasswordHash, m.LastUpdatedAt, m.LastUpdatedBy, m.UserID)
	if err != nil {
		return translateWriteError(err, "user "+m.UserID)
	}
	return requireAffected(tag, "user "+m.UserID)
}

func (r *PgxUserRepository) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	query := `
        UPDATE users
        SET notifications_enabled = $1, last_updated_at = $2, last_updated_by = $3
        WHERE user_id = $3 AND deleted_at IS NULL;
    `
	tag, err := r.Pool.Exec(ctx, query, enabled, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update notification toggle of user %s: %w", userID, err)
	}
	return requireAffected(tag, "user "+userID)
}

// MarkUserDeleted soft deletes the user and drops its role grants and client assignments.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE users
            SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
            WHERE user_id = $3 AND deleted_at IS NULL;`,
			deletedAt, deletedBy, userID)
		if err != nil {
			return fmt.Errorf("failed to mark user %s deleted: %w", userID, err)
		}
		if err := requireAffected(tag, "user "+userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("failed to revoke roles of user %s: %w", userID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_clients WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("failed to unassign clients of user %s: %w", userID, err)
		}
		return nil
	})
}
