package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

func newRoleHandler(rs portssvc.RoleSvcFacade) *roleHandler {
	return &roleHandler{roleService: rs}
}

// registerRoleRoutes registers role management and role assignment routes, all behind roles.manage.
func registerRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade) {
	h := newRoleHandler(roleService)
	requireRoles := middleware.RequirePermission(roleService, domain.PermRolesManage)

	rg.GET("/permissions", requireRoles, h.listPermissions)

	roles := rg.Group("/roles", requireRoles)
	{
		roles.POST("", h.createRole)
		roles.GET("", h.listRoles)
		roles.GET("/:roleID", h.getRole)
		roles.PUT("/:roleID", h.updateRole)
		roles.DELETE("/:roleID", h.deleteRole)
	}

	userRoles := rg.Group("/users/:userID/roles", requireRoles)
	{
		userRoles.GET("", h.listUserRoles)
		userRoles.POST("", h.assignRole)
		userRoles.DELETE("/:roleID", h.removeRole)
	}
}

// listPermissions godoc
// @Summary List the permission catalog
// @Tags roles
// @Produce json
// @Success 200 {object} dto.PermissionsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /permissions [get]
func (h *roleHandler) listPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PermissionsResponse{Permissions: dto.PermissionStrings(domain.AllPermissions)})
}

// createRole godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown permission"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Role name already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [post]
func (h *roleHandler) createRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create role request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create role")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Role created", slog.String("role_id", role.RoleID))
	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} dto.RoleResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [get]
func (h *roleHandler) listRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err, "list roles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRoleResponse(roles))
}

// getRole godoc
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param roleID path string true "Role ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{roleID} [get]
func (h *roleHandler) getRole(c *gin.Context) {
	role, err := h.roleService.GetRoleByID(c.Request.Context(), c.Param("roleID"))
	if err != nil {
		respondError(c, err, "retrieve role")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// updateRole godoc
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleID path string true "Role ID"
// @Param role body dto.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} dto.RoleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{roleID} [put]
func (h *roleHandler) updateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update role request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), c.Param("roleID"), req, userID)
	if err != nil {
		respondError(c, err, "update role")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// deleteRole godoc
// @Summary Delete a role
// @Description Deletes a role and revokes it from every user.
// @Tags roles
// @Param roleID path string true "Role ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "The admin role cannot be deleted"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{roleID} [delete]
func (h *roleHandler) deleteRole(c *gin.Context) {
	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("roleID")); err != nil {
		respondError(c, err, "delete role")
		return
	}
	c.Status(http.StatusNoContent)
}

// listUserRoles godoc
// @Summary List the roles of a user
// @Tags roles
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} dto.RoleResponse
// @Security BearerAuth
// @Router /users/{userID}/roles [get]
func (h *roleHandler) listUserRoles(c *gin.Context) {
	roles, err := h.roleService.ListUserRoles(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err, "list user roles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRoleResponse(roles))
}

// assignRole godoc
// @Summary Grant a role to a user
// @Tags roles
// @Accept json
// @Param userID path string true "User ID"
// @Param role body dto.AssignRoleRequest true "Role to grant"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User or role not found"
// @Security BearerAuth
// @Router /users/{userID}/roles [post]
func (h *roleHandler) assignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "assign role request")
		return
	}
	targetUserID := c.Param("userID")
	if err := h.roleService.AssignRole(c.Request.Context(), targetUserID, req.RoleID); err != nil {
		respondError(c, err, "assign role")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Role assigned",
		slog.String("target_user_id", targetUserID), slog.String("role_id", req.RoleID))
	c.Status(http.StatusNoContent)
}

// removeRole godoc
// @Summary Revoke a role from a user
// @Tags roles
// @Param userID path string true "User ID"
// @Param roleID path string true "Role ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID}/roles/{roleID} [delete]
func (h *roleHandler) removeRole(c *gin.Context) {
	if err := h.roleService.RemoveRole(c.Request.Context(), c.Param("userID"), c.Param("roleID")); err != nil {
		respondError(c, err, "remove role")
		return
	}
	c.Status(http.StatusNoContent)
}
