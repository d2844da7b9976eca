package handlers

import (
	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService services.GroupService
	Helper       *helper.HTTPHelper
}

func NewGroupHandler(groupService services.GroupService, h *helper.HTTPHelper) *GroupHandler {
	return &GroupHandler{groupService: groupService, Helper: h}
}

func (h *GroupHandler) List(c *gin.Context) {
	var params models.ListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	groups, total, err := h.groupService.List(c.Request.Context(), middleware.GetIdentity(c).UserID(), params)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, groups, total)
}

// Children lists the direct children of group_id, or the root groups when
// group_id is left out.
func (h *GroupHandler) Children(c *gin.Context) {
	groupID, ok := h.Helper.OptionalQueryID(c, "group_id")
	if !ok {
		return
	}

	groups, err := h.groupService.Children(c.Request.Context(), groupID, middleware.GetIdentity(c).UserID())
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, groups, int64(len(groups)))
}

func (h *GroupHandler) Recipes(c *gin.Context) {
	groupID, ok := h.Helper.QueryID(c, "group_id")
	if !ok {
		return
	}

	recipes, err := h.groupService.Recipes(c.Request.Context(), groupID, middleware.GetIdentity(c).UserID())
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, recipes, int64(len(recipes)))
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req models.CreateGroupRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, group)
}

func (h *GroupHandler) Update(c *gin.Context) {
	groupID, ok := h.Helper.QueryID(c, "group_id")
	if !ok {
		return
	}
	var req models.UpdateGroupRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), callerID(c), groupID, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, group)
}

func (h *GroupHandler) Delete(c *gin.Context) {
	groupID, ok := h.Helper.QueryID(c, "group_id")
	if !ok {
		return
	}
	if err := h.groupService.Delete(c.Request.Context(), callerID(c), groupID); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}
