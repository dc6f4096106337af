package admin

import (
	"github.com/sellerdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAuthzRoles 获取角色列表
func (h *Handler) GetAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := c.Param("role")
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, policies)
}

// RolePolicyRequest 角色策略变更请求
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantAuthzRolePolicy 为角色授予策略
func (h *Handler) GrantAuthzRolePolicy(c *gin.Context) {
	role := c.Param("role")
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "error.authz_save_failed", err)
		return
	}
	response.Success(c, nil)
}

// RevokeAuthzRolePolicy 撤销角色策略
func (h *Handler) RevokeAuthzRolePolicy(c *gin.Context) {
	role := c.Param("role")
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "error.authz_save_failed", err)
		return
	}
	response.Success(c, nil)
}

// SetAdminRolesRequest 设置管理员角色请求
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles 覆盖设置指定管理员的角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "error.authz_save_failed", err)
		return
	}
	response.Success(c, nil)
}

// GetAdminRoles 查询指定管理员的角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}
