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
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
)

// systemUserID is recorded as creator of rows made at startup.
const systemUserID = "system"

var errAdminRoleImmutable = fmt.Errorf("%w: the admin role cannot be changed", apperrors.ErrValidation)

// RoleService manages roles and answers permission checks.
type RoleService struct {
	BaseService
	roleRepo    portsrepo.RoleRepositoryFacade
	userService portssvc.UserSvcFacade
}

func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade, userService portssvc.UserSvcFacade) *RoleService {
	return &RoleService{roleRepo: roleRepo, userService: userService}
}

func (s *RoleService) UserHasPermission(ctx context.Context, userID string, perm domain.Permission) (bool, error) {
	roles, err := s.roleRepo.ListRolesByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load roles of user %s: %w", userID, err)
	}
	for _, role := range roles {
		if role.HasPermission(perm) {
			return true, nil
		}
	}
	return false, nil
}

// AuthorizeUserAction returns nil when userID holds perm and an ErrForbidden wrap otherwise.
func (s *RoleService) AuthorizeUserAction(ctx context.Context, userID string, perm domain.Permission) error {
	ok, err := s.UserHasPermission(ctx, userID, perm)
	if err != nil {
		s.LogError(ctx, err, "Failed to check permission", slog.String("user_id", userID), slog.String("permission", string(perm)))
		return fmt.Errorf("failed to check authorization: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: missing permission %s", apperrors.ErrForbidden, perm)
	}
	return nil
}

func (s *RoleService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role %s: %w", roleID, err)
	}
	return role, nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	if roles == nil {
		return []domain.Role{}, nil
	}
	return roles, nil
}

func (s *RoleService) ListUserRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	roles, err := s.roleRepo.ListRolesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles of user %s: %w", userID, err)
	}
	if roles == nil {
		return []domain.Role{}, nil
	}
	return roles, nil
}

// ListUserPermissions returns the catalog order of every permission granted to userID.
func (s *RoleService) ListUserPermissions(ctx context.Context, userID string) ([]domain.Permission, error) {
	roles, err := s.ListUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	perms := make([]domain.Permission, 0, len(domain.AllPermissions))
	for _, p := range domain.AllPermissions {
		for _, role := range roles {
			if role.HasPermission(p) {
				perms = append(perms, p)
				break
			}
		}
	}
	return perms, nil
}

func validatePermissions(perms []domain.Permission) error {
	for _, p := range perms {
		if !domain.IsKnownPermission(p) {
			return fmt.Errorf("%w: unknown permission '%s'", apperrors.ErrValidation, p)
		}
	}
	return nil
}

func (s *RoleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error) {
	name := strings.TrimSpace(req.Name)
	if strings.EqualFold(name, domain.AdminRoleName) {
		return nil, fmt.Errorf("%w: role '%s' already exists", apperrors.ErrDuplicate, domain.AdminRoleName)
	}
	perms := dto.ToPermissions(req.Permissions)
	if err := validatePermissions(perms); err != nil {
		return nil, err
	}

	role := domain.Role{
		RoleID:      uuid.NewString(),
		Name:        name,
		Description: req.Description,
		Permissions: perms,
		AuditFields: domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}
	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save role", slog.String("role_name", name))
		}
		return nil, fmt.Errorf("failed to create role %s: %w", name, err)
	}
	s.LogInfo(ctx, "Role created", slog.String("role_id", role.RoleID), slog.String("role_name", name))
	return &role, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest, userID string) (*domain.Role, error) {
	role, err := s.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role.Name == domain.AdminRoleName {
		return nil, errAdminRoleImmutable
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Permissions != nil {
		perms := dto.ToPermissions(req.Permissions)
		if err := validatePermissions(perms); err != nil {
			return nil, err
		}
		role.Permissions = perms
	}
	role.Touch(userID, s.CurrentTime())
	if err := s.roleRepo.UpdateRole(ctx, *role); err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.String("role_id", roleID))
		return nil, fmt.Errorf("failed to update role %s: %w", roleID, err)
	}
	return role, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, roleID string) error {
	role, err := s.GetRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Name == domain.AdminRoleName {
		return errAdminRoleImmutable
	}
	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		s.LogError(ctx, err, "Failed to delete role", slog.String("role_id", roleID))
		return fmt.Errorf("failed to delete role %s: %w", roleID, err)
	}
	s.LogInfo(ctx, "Role deleted", slog.String("role_id", roleID))
	return nil
}

func (s *RoleService) AssignRole(ctx context.Context, userID, roleID string) error {
	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetRoleByID(ctx, roleID); err != nil {
		return err
	}
	if err := s.roleRepo.AssignRoleToUser(ctx, userID, roleID); err != nil {
		s.LogError(ctx, err, "Failed to assign role", slog.String("user_id", userID), slog.String("role_id", roleID))
		return fmt.Errorf("failed to assign role %s to user %s: %w", roleID, userID, err)
	}
	s.LogInfo(ctx, "Role assigned", slog.String("user_id", userID), slog.String("role_id", roleID))
	return nil
}

func (s *RoleService) RemoveRole(ctx context.Context, userID, roleID string) error {
	if err := s.roleRepo.RemoveRoleFromUser(ctx, userID, roleID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to remove role", slog.String("user_id", userID), slog.String("role_id", roleID))
		}
		return fmt.Errorf("failed to remove role %s from user %s: %w", roleID, userID, err)
	}
	s.LogInfo(ctx, "Role removed", slog.String("user_id", userID), slog.String("role_id", roleID))
	return nil
}

// EnsureAdmin makes sure the admin role exists and username holds it, creating the user if needed.
func (s *RoleService) EnsureAdmin(ctx context.Context, username, password string) error {
	adminRole, err := s.roleRepo.FindRoleByName(ctx, domain.AdminRoleName)
	if errors.Is(err, apperrors.ErrNotFound) {
		role := domain.Role{
			RoleID:      uuid.NewString(),
			Name:        domain.AdminRoleName,
			Description: "Full access",
			Permissions: domain.AllPermissions,
			AuditFields: domain.NewAuditFields(systemUserID, s.CurrentTime()),
		}
		if err := s.roleRepo.SaveRole(ctx, role); err != nil {
			return fmt.Errorf("failed to create admin role: %w", err)
		}
		adminRole = &role
	} else if err != nil {
		return fmt.Errorf("failed to load admin role: %w", err)
	}

	user, err := s.userService.GetUserByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrNotFound) {
		if password == "" {
			return fmt.Errorf("%w: a password is required to create admin user %s", apperrors.ErrValidation, username)
		}
		user, err = s.userService.CreateUser(ctx, dto.CreateUserRequest{
			Username: username,
			Password: password,
			Name:     username,
		}, systemUserID)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		s.LogInfo(ctx, "Bootstrap admin user created", slog.String("username", username))
	} else if err != nil {
		return fmt.Errorf("failed to load admin user: %w", err)
	}

	roles, err := s.ListUserRoles(ctx, user.UserID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r.RoleID == adminRole.RoleID {
			return nil
		}
	}
	if err := s.roleRepo.AssignRoleToUser(ctx, user.UserID, adminRole.RoleID); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}
	s.LogInfo(ctx, "Admin role granted", slog.String("username", username))
	return nil
}
