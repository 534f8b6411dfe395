package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

// PermissionChecker answers authorization questions. It is all the middleware needs.
type PermissionChecker interface {
	// UserHasPermission reports whether any role of userID grants perm.
	UserHasPermission(ctx context.Context, userID string, perm domain.Permission) (bool, error)

	// AuthorizeUserAction returns an error wrapping apperrors.ErrForbidden when userID lacks perm.
	AuthorizeUserAction(ctx context.Context, userID string, perm domain.Permission) error
}

// RoleReaderSvc defines read operations for roles
type RoleReaderSvc interface {
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	ListUserRoles(ctx context.Context, userID string) ([]domain.Role, error)
	// ListUserPermissions returns the distinct permissions granted to userID.
	ListUserPermissions(ctx context.Context, userID string) ([]domain.Permission, error)
}

// RoleWriterSvc defines write operations for roles
type RoleWriterSvc interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error)
	UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest, userID string) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID string) error
	AssignRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	// EnsureAdmin creates the admin user named username when it does not exist yet and grants it the admin role.
	EnsureAdmin(ctx context.Context, username, password string) error
}

// RoleSvcFacade combines all role-related service interfaces
type RoleSvcFacade interface {
	PermissionChecker
	RoleReaderSvc
	RoleWriterSvc
}
