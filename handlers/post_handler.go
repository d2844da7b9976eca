package handlers

import (
	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: h}
}

func (h *PostHandler) List(c *gin.Context) {
	var params models.PostListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	posts, total, err := h.postService.List(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, posts, total)
}

func (h *PostHandler) Get(c *gin.Context) {
	pid, ok := h.Helper.ParamID(c, "pid")
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), pid, middleware.GetIdentity(c).UserID())
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req models.PostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	pid, ok := h.Helper.QueryID(c, "pid")
	if !ok {
		return
	}
	var req models.PostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), callerID(c), pid, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	pid, ok := h.Helper.ParamID(c, "pid")
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), callerID(c), pid); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}
