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

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(db *pgxpool.Pool) *PgxRoleRepository {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

const roleColumns = `r.role_id, r.name, r.description, r.permissions, r.created_at, r.created_by, r.last_updated_at, r.last_updated_by`

func scanRole(row pgx.Row) (models.Role, error) {
	var m models.Role
	err := row.Scan(&m.RoleID, &m.Name, &m.Description, &m.Permissions,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxRoleRepository) queryRoles(ctx context.Context, query string, args ...any) ([]domain.Role, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Role, error) {
		return scanRole(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan roles: %w", err)
	}
	return mapping.ToDomainRoleSlice(ms), nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	m, err := scanRole(r.Pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.role_id = $1;`, roleID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find role %s", roleID)
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	m, err := scanRole(r.Pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.name = $1;`, name))
	if err != nil {
		return nil, notFoundOr(err, "failed to find role %s", name)
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return r.queryRoles(ctx, `SELECT `+roleColumns+` FROM roles r ORDER BY r.name;`)
}

func (r *PgxRoleRepository) ListRolesByUserID(ctx context.Context, userID string) ([]domain.Role, error) {
	return r.queryRoles(ctx, `
		SELECT `+roleColumns+`
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name;`, userID)
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	m := mapping.ToModelRole(role)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO roles (role_id, name, description, permissions, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.RoleID, m.Name, m.Description, m.Permissions, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "role "+m.Name)
	}
	return nil
}

func (r *PgxRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	m := mapping.ToModelRole(role)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE roles
		SET name = $1, description = $2, permissions = $3, last_updated_at = $4, last_updated_by = $5
		WHERE role_id = $6;`,
		m.Name, m.Description, m.Permissions, m.LastUpdatedAt, m.LastUpdatedBy, m.RoleID)
	if err != nil {
		return translateWriteError(err, "role "+m.Name)
	}
	return requireAffected(tag, "role "+m.RoleID)
}

// DeleteRole revokes the role from every user before removing it.
func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE role_id = $1;`, roleID); err != nil {
			return fmt.Errorf("failed to revoke role %s: %w", roleID, err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM roles WHERE role_id = $1;`, roleID)
		if err != nil {
			return fmt.Errorf("failed to delete role %s: %w", roleID, err)
		}
		return requireAffected(tag, "role "+roleID)
	})
}

// AssignRoleToUser is idempotent.
func (r *PgxRoleRepository) AssignRoleToUser(ctx context.Context, userID, roleID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING;`, userID, roleID)
	if err != nil {
		return translateWriteError(err, "role assignment")
	}
	return nil
}

func (r *PgxRoleRepository) RemoveRoleFromUser(ctx context.Context, userID, roleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2;`, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to remove role %s from user %s: %w", roleID, userID, err)
	}
	return requireAffected(tag, "role assignment")
}
