package repositories

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// RoleReader defines read operations for roles.
type RoleReader interface {
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	// ListRolesByUserID returns the roles granted to a user.
	ListRolesByUserID(ctx context.Context, userID string) ([]domain.Role, error)
}

// RoleWriter defines write operations for roles.
type RoleWriter interface {
	SaveRole(ctx context.Context, role domain.Role) error
	UpdateRole(ctx context.Context, role domain.Role) error
	DeleteRole(ctx context.Context, roleID string) error
}

// RoleAssignmentManager grants and revokes roles.
type RoleAssignmentManager interface {
	AssignRoleToUser(ctx context.Context, userID, roleID string) error
	RemoveRoleFromUser(ctx context.Context, userID, roleID string) error
}

// RoleRepositoryFacade combines all role-related repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
	RoleAssignmentManager
}
