package services

import (
	"context"

	"recipe-share/models"
	"recipe-share/repositories"
)

type RecipeService interface {
	List(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeResponse, int64, error)
	Get(ctx context.Context, id uint, uid *uint) (*models.RecipeDetailResponse, error)
	Create(ctx context.Context, uid uint, req models.CreateRecipeRequest) (*models.RecipeDetailResponse, error)
	Update(ctx context.Context, uid, id uint, req models.UpdateRecipeRequest) (*models.RecipeResponse, error)
	Delete(ctx context.Context, uid, id uint) error

	AddIngredient(ctx context.Context, uid, recipeID uint, req models.CreateIngredientRequest) (*models.RecipeIngredient, error)
	UpdateIngredient(ctx context.Context, uid, id uint, req models.UpdateIngredientRequest) (*models.RecipeIngredient, error)
	DeleteIngredient(ctx context.Context, uid, id uint) error

	AddStep(ctx context.Context, uid, recipeID uint, req models.CreateStepRequest) (*models.RecipeStep, error)
	UpdateStep(ctx context.Context, uid, id uint, req models.UpdateStepRequest) (*models.RecipeStep, error)
	DeleteStep(ctx context.Context, uid, id uint) error

	AddComment(ctx context.Context, uid, recipeID uint, req models.CreateCommentRequest) (*models.CommentResponse, error)
	DeleteComment(ctx context.Context, uid, id uint) error
}

type recipeService struct {
	recipes repositories.RecipeRepository
	parts   repositories.RecipePartRepository
	groups  repositories.GroupRepository
}

func NewRecipeService(recipes repositories.RecipeRepository, parts repositories.RecipePartRepository, groups repositories.GroupRepository) RecipeService {
	return &recipeService{recipes: recipes, parts: parts, groups: groups}
}

func recipeResponses(recipes []models.Recipe) []models.RecipeResponse {
	resp := make([]models.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, recipes[i].ToResponse())
	}
	return resp
}

func recipeDetail(recipe *models.Recipe) *models.RecipeDetailResponse {
	detail := &models.RecipeDetailResponse{
		RecipeResponse: recipe.ToResponse(),
		Content:        recipe.Content,
		Ingredients:    recipe.Ingredients,
		Steps:          recipe.Steps,
		Comments:       make([]models.CommentResponse, 0, len(recipe.Comments)),
	}
	if detail.Ingredients == nil {
		detail.Ingredients = []models.RecipeIngredient{}
	}
	if detail.Steps == nil {
		detail.Steps = []models.RecipeStep{}
	}
	for i := range recipe.Comments {
		detail.Comments = append(detail.Comments, recipe.Comments[i].ToResponse())
	}
	return detail
}

func (s *recipeService) List(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeResponse, int64, error) {
	recipes, total, err := s.recipes.ListVisible(ctx, uid, params)
	if err != nil {
		return nil, 0, models.Internal("list recipes", err)
	}
	return recipeResponses(recipes), total, nil
}

func (s *recipeService) Get(ctx context.Context, id uint, uid *uint) (*models.RecipeDetailResponse, error) {
	recipe, err := s.recipes.GetDetail(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	return recipeDetail(recipe), nil
}

// ownedGroup resolves a group id from a request: 0 means none, anything else
// must be one of the caller's groups.
func (s *recipeService) ownedGroup(ctx context.Context, uid uint, groupID uint) (*models.RecipeGroup, error) {
	if groupID == 0 {
		return nil, nil
	}
	group, err := s.groups.GetOwned(ctx, groupID, uid)
	if err != nil {
		return nil, notFoundOr(err, "group")
	}
	return group, nil
}

func (s *recipeService) Create(ctx context.Context, uid uint, req models.CreateRecipeRequest) (*models.RecipeDetailResponse, error) {
	recipe := &models.Recipe{
		Name:    req.Name,
		Desc:    req.Desc,
		UID:     uid,
		Private: req.Private,
	}
	if req.Content != nil {
		recipe.Content = *req.Content
	}
	if req.Status != nil {
		status := models.RecipeStatus(*req.Status)
		if !status.Valid() {
			return nil, models.InvalidOperation("invalid recipe status")
		}
		recipe.Status = status
	}
	if req.GroupID != nil {
		group, err := s.ownedGroup(ctx, uid, *req.GroupID)
		if err != nil {
			return nil, err
		}
		if group != nil {
			recipe.GroupID = &group.ID
		}
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Desc:     ing.Desc,
		})
	}
	for _, step := range req.Steps {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{
			Desc:  step.Desc,
			Order: step.Order,
			Img:   step.Img,
		})
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, models.Internal("create recipe", err)
	}
	return s.Get(ctx, recipe.ID, &uid)
}

func (s *recipeService) Update(ctx context.Context, uid, id uint, req models.UpdateRecipeRequest) (*models.RecipeResponse, error) {
	recipe, err := s.recipes.GetOwned(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Desc != nil {
		recipe.Desc = req.Desc
	}
	if req.Content != nil {
		recipe.Content = *req.Content
	}
	if req.Private != nil {
		recipe.Private = *req.Private
	}
	if req.Status != nil {
		status := models.RecipeStatus(*req.Status)
		if !status.Valid() {
			return nil, models.InvalidOperation("invalid recipe status")
		}
		recipe.Status = status
	}
	if req.GroupID != nil {
		group, err := s.ownedGroup(ctx, uid, *req.GroupID)
		if err != nil {
			return nil, err
		}
		recipe.Group = group
		recipe.GroupID = nil
		if group != nil {
			recipe.GroupID = &group.ID
		}
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, models.Internal("update recipe", err)
	}
	resp := recipe.ToResponse()
	return &resp, nil
}

func (s *recipeService) Delete(ctx context.Context, uid, id uint) error {
	if _, err := s.recipes.GetOwned(ctx, id, uid); err != nil {
		return notFoundOr(err, "recipe")
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return models.Internal("delete recipe", err)
	}
	return nil
}

func (s *recipeService) AddIngredient(ctx context.Context, uid, recipeID uint, req models.CreateIngredientRequest) (*models.RecipeIngredient, error) {
	if _, err := s.recipes.GetOwned(ctx, recipeID, uid); err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	ingredient := &models.RecipeIngredient{
		RecipeID: recipeID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Desc:     req.Desc,
	}
	if err := s.parts.CreateIngredient(ctx, ingredient); err != nil {
		return nil, models.Internal("create ingredient", err)
	}
	return ingredient, nil
}

func (s *recipeService) UpdateIngredient(ctx context.Context, uid, id uint, req models.UpdateIngredientRequest) (*models.RecipeIngredient, error) {
	ingredient, err := s.parts.GetOwnedIngredient(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "ingredient")
	}
	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Quantity != nil {
		ingredient.Quantity = req.Quantity
	}
	if req.Unit != nil {
		ingredient.Unit = req.Unit
	}
	if req.Desc != nil {
		ingredient.Desc = req.Desc
	}
	if err := s.parts.UpdateIngredient(ctx, ingredient); err != nil {
		return nil, models.Internal("update ingredient", err)
	}
	return ingredient, nil
}

func (s *recipeService) DeleteIngredient(ctx context.Context, uid, id uint) error {
	if _, err := s.parts.GetOwnedIngredient(ctx, id, uid); err != nil {
		return notFoundOr(err, "ingredient")
	}
	if err := s.parts.DeleteIngredient(ctx, id); err != nil {
		return models.Internal("delete ingredient", err)
	}
	return nil
}

func (s *recipeService) AddStep(ctx context.Context, uid, recipeID uint, req models.CreateStepRequest) (*models.RecipeStep, error) {
	if _, err := s.recipes.GetOwned(ctx, recipeID, uid); err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	step := &models.RecipeStep{
		RecipeID: recipeID,
		Desc:     req.Desc,
		Order:    req.Order,
		Img:      req.Img,
	}
	if err := s.parts.CreateStep(ctx, step); err != nil {
		return nil, models.Internal("create step", err)
	}
	return step, nil
}

func (s *recipeService) UpdateStep(ctx context.Context, uid, id uint, req models.UpdateStepRequest) (*models.RecipeStep, error) {
	step, err := s.parts.GetOwnedStep(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "step")
	}
	if req.Desc != nil {
		step.Desc = *req.Desc
	}
	if req.Order != nil {
		step.Order = *req.Order
	}
	if req.Img != nil {
		step.Img = req.Img
	}
	if err := s.parts.UpdateStep(ctx, step); err != nil {
		return nil, models.Internal("update step", err)
	}
	return step, nil
}

func (s *recipeService) DeleteStep(ctx context.Context, uid, id uint) error {
	if _, err := s.parts.GetOwnedStep(ctx, id, uid); err != nil {
		return notFoundOr(err, "step")
	}
	if err := s.parts.DeleteStep(ctx, id); err != nil {
		return models.Internal("delete step", err)
	}
	return nil
}

// AddComment lets anyone who can read the recipe comment on it. A reply must
// target a comment of the same recipe that the caller can see.
func (s *recipeService) AddComment(ctx context.Context, uid, recipeID uint, req models.CreateCommentRequest) (*models.CommentResponse, error) {
	recipe, err := s.recipes.GetVisible(ctx, recipeID, &uid)
	if err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	comment := &models.RecipeComment{
		RecipeID: recipe.ID,
		Content:  req.Content,
		UID:      uid,
		Private:  req.Private,
	}
	if req.ReplyTo != nil {
		parent, err := s.parts.GetComment(ctx, recipe.ID, *req.ReplyTo)
		if err != nil {
			return nil, notFoundOr(err, "comment")
		}
		if parent.Private && parent.UID != uid && recipe.UID != uid {
			return nil, models.NotFound("comment")
		}
		comment.ReplyTo = &parent.ID
		comment.ReplyToUID = &parent.UID
	}
	if err := s.parts.CreateComment(ctx, comment); err != nil {
		return nil, models.Internal("create comment", err)
	}
	resp := comment.ToResponse()
	return &resp, nil
}

// DeleteComment is allowed to the comment's author and the recipe's owner.
func (s *recipeService) DeleteComment(ctx context.Context, uid, id uint) error {
	if _, err := s.parts.GetDeletableComment(ctx, id, uid); err != nil {
		return notFoundOr(err, "comment")
	}
	if err := s.parts.DeleteComment(ctx, id); err != nil {
		return models.Internal("delete comment", err)
	}
	return nil
}
