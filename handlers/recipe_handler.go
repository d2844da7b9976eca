package handlers

import (
	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipeService services.RecipeService
	Helper        *helper.HTTPHelper
}

func NewRecipeHandler(recipeService services.RecipeService, h *helper.HTTPHelper) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, Helper: h}
}

// callerID is the id of the resolved caller; only used behind RequireIdentity.
func callerID(c *gin.Context) uint {
	return middleware.GetIdentity(c).User.ID
}

func (h *RecipeHandler) List(c *gin.Context) {
	var params models.ListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	recipes, total, err := h.recipeService.List(c.Request.Context(), middleware.GetIdentity(c).UserID(), params)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendList(c, recipes, total)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id, middleware.GetIdentity(c).UserID())
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req models.CreateRecipeRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	var req models.UpdateRecipeRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}

func (h *RecipeHandler) CreateIngredient(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	var req models.CreateIngredientRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	ingredient, err := h.recipeService.AddIngredient(c.Request.Context(), callerID(c), recipeID, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, ingredient)
}

func (h *RecipeHandler) UpdateIngredient(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "ingredient_id")
	if !ok {
		return
	}
	var req models.UpdateIngredientRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	ingredient, err := h.recipeService.UpdateIngredient(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, ingredient)
}

func (h *RecipeHandler) DeleteIngredient(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "ingredient_id")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteIngredient(c.Request.Context(), callerID(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}

func (h *RecipeHandler) CreateStep(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	var req models.CreateStepRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	step, err := h.recipeService.AddStep(c.Request.Context(), callerID(c), recipeID, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, step)
}

func (h *RecipeHandler) UpdateStep(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "step_id")
	if !ok {
		return
	}
	var req models.UpdateStepRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	step, err := h.recipeService.UpdateStep(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, step)
}

func (h *RecipeHandler) DeleteStep(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "step_id")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteStep(c.Request.Context(), callerID(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}

func (h *RecipeHandler) CreateComment(c *gin.Context) {
	recipeID, ok := h.Helper.QueryID(c, "recipe_id")
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.recipeService.AddComment(c.Request.Context(), callerID(c), recipeID, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, comment)
}

func (h *RecipeHandler) DeleteComment(c *gin.Context) {
	id, ok := h.Helper.QueryID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteComment(c.Request.Context(), callerID(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}
	h.Helper.SendSuccess(c, nil)
}
