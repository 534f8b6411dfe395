package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// CreateRoleRequest defines a new role and the permissions it grants.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,max=64"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" binding:"required,dive,required"`
}

// UpdateRoleRequest replaces the mutable parts of a role.
type UpdateRoleRequest struct {
	Description *string  `json:"description"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,required"`
}

// AssignRoleRequest grants a role to a user.
type AssignRoleRequest struct {
	RoleID string `json:"roleID" binding:"required,uuid"`
}

// RoleResponse is the API view of a role.
type RoleResponse struct {
	RoleID        string    `json:"roleID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Permissions   []string  `json:"permissions"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PermissionsResponse lists the fixed permission catalog.
type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
}

// PermissionStrings converts typed permissions into plain strings.
func PermissionStrings(perms []domain.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// ToPermissions converts request strings into typed permissions without validating them.
func ToPermissions(perms []string) []domain.Permission {
	out := make([]domain.Permission, len(perms))
	for i, p := range perms {
		out[i] = domain.Permission(p)
	}
	return out
}

func ToRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:        role.RoleID,
		Name:          role.Name,
		Description:   role.Description,
		Permissions:   PermissionStrings(role.Permissions),
		CreatedAt:     role.CreatedAt,
		LastUpdatedAt: role.LastUpdatedAt,
	}
}

func ToListRoleResponse(roles []domain.Role) []RoleResponse {
	res := make([]RoleResponse, len(roles))
	for i := range roles {
		res[i] = ToRoleResponse(&roles[i])
	}
	return res
}
