package handlers

import (
	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService services.AdminService
	Helper       *helper.HTTPHelper
}

func NewAdminHandler(adminService services.AdminService, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{adminService: adminService, Helper: h}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var params models.ListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, users, total)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	uid, ok := h.Helper.QueryID(c, "uid")
	if !ok {
		return
	}
	var req models.AdminChangeInfoRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), middleware.GetIdentity(c), uid, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	uid, ok := h.Helper.ParamID(c, "uid")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), middleware.GetIdentity(c), uid); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}

func (h *AdminHandler) RevokeTokens(c *gin.Context) {
	uid, ok := h.Helper.QueryID(c, "uid")
	if !ok {
		return
	}
	revoked, err := h.adminService.RevokeTokens(c.Request.Context(), middleware.GetIdentity(c), uid)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, gin.H{"revoked": revoked})
}
