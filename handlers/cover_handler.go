package handlers

import (
	"io"
	"net/http"

	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type CoverHandler struct {
	coverService services.CoverService
	maxBytes     int64
	Helper       *helper.HTTPHelper
}

func NewCoverHandler(coverService services.CoverService, maxBytes int64, h *helper.HTTPHelper) *CoverHandler {
	return &CoverHandler{coverService: coverService, maxBytes: maxBytes, Helper: h}
}

func (h *CoverHandler) Upload(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendBadRequest(c, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	// One byte over the limit is enough for the service to refuse it.
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.Helper.SendBadRequest(c, "cannot read uploaded file")
		return
	}

	cover, err := h.coverService.Upload(c.Request.Context(), callerID(c), recipeID, data)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, cover)
}

func (h *CoverHandler) Download(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}

	data, contentType, err := h.coverService.Download(c.Request.Context(), recipeID, middleware.GetIdentity(c).UserID())
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *CoverHandler) List(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}

	objects, err := h.coverService.List(c.Request.Context(), callerID(c), recipeID)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, objects, int64(len(objects)))
}
