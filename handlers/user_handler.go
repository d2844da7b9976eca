package handlers

import (
	"net/http"

	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService  services.AuthService
	tokenService services.TokenService
	Helper       *helper.HTTPHelper
}

func NewUserHandler(authService services.AuthService, tokenService services.TokenService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{authService: authService, tokenService: tokenService, Helper: h}
}

func tokenContext(c *gin.Context) services.TokenContext {
	return services.TokenContext{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req, tokenContext(c))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, response)
}

// Token is the OAuth2 password flow used by the API docs page. Its body is
// the bare token object those clients expect.
func (h *UserHandler) Token(c *gin.Context) {
	var form models.TokenForm
	if !h.Helper.BindForm(c, &form) {
		return
	}

	response, err := h.authService.LoginForm(c.Request.Context(), form, tokenContext(c))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Create(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, response)
}

func (h *UserHandler) Info(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	h.Helper.SendSuccess(c, identity.User.ToResponse())
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetIdentity(c)); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req models.ChangeInfoRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Update(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, response)
}

func (h *UserHandler) PublicKey(c *gin.Context) {
	key, err := h.authService.PublicKey()
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, gin.H{"public_key": key})
}

func (h *UserHandler) Sessions(c *gin.Context) {
	sessions, err := h.tokenService.ListSessions(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, sessions, int64(len(sessions)))
}

func (h *UserHandler) RevokeSession(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.tokenService.RevokeSession(c.Request.Context(), middleware.GetIdentity(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}
