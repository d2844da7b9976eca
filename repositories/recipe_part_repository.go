package repositories

import (
	"context"

	"recipe-share/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipePartRepository covers the rows that belong to a recipe: ingredients,
// steps and comments. Ingredient and step writes are scoped through the
// owning recipe's uid.
type RecipePartRepository interface {
	CreateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error
	GetOwnedIngredient(ctx context.Context, id, uid uint) (*models.RecipeIngredient, error)
	UpdateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error
	DeleteIngredient(ctx context.Context, id uint) error

	CreateStep(ctx context.Context, step *models.RecipeStep) error
	GetOwnedStep(ctx context.Context, id, uid uint) (*models.RecipeStep, error)
	UpdateStep(ctx context.Context, step *models.RecipeStep) error
	DeleteStep(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *models.RecipeComment) error
	GetComment(ctx context.Context, recipeID, id uint) (*models.RecipeComment, error)
	GetDeletableComment(ctx context.Context, id, uid uint) (*models.RecipeComment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type recipePartRepository struct {
	db *gorm.DB
}

func NewRecipePartRepository(db *gorm.DB) RecipePartRepository {
	return &recipePartRepository{db: db}
}

func (r *recipePartRepository) ownedThroughRecipe(table string, uid uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(table+".*").
			Joins("JOIN recipes ON recipes.id = "+table+".recipe_id").
			Where("recipes.uid = ?", uid)
	}
}

func (r *recipePartRepository) CreateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *recipePartRepository) GetOwnedIngredient(ctx context.Context, id, uid uint) (*models.RecipeIngredient, error) {
	var ingredient models.RecipeIngredient
	err := r.db.WithContext(ctx).
		Scopes(r.ownedThroughRecipe("recipe_ingredient", uid)).
		Where("recipe_ingredient.id = ?", id).
		First(&ingredient).Error
	return &ingredient, err
}

func (r *recipePartRepository) UpdateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *recipePartRepository) DeleteIngredient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RecipeIngredient{}, id).Error
}

func (r *recipePartRepository) CreateStep(ctx context.Context, step *models.RecipeStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *recipePartRepository) GetOwnedStep(ctx context.Context, id, uid uint) (*models.RecipeStep, error) {
	var step models.RecipeStep
	err := r.db.WithContext(ctx).
		Scopes(r.ownedThroughRecipe("recipe_steps", uid)).
		Where("recipe_steps.id = ?", id).
		First(&step).Error
	return &step, err
}

func (r *recipePartRepository) UpdateStep(ctx context.Context, step *models.RecipeStep) error {
	return r.db.WithContext(ctx).Save(step).Error
}

func (r *recipePartRepository) DeleteStep(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RecipeStep{}, id).Error
}

func (r *recipePartRepository) CreateComment(ctx context.Context, comment *models.RecipeComment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error
}

// GetComment finds a comment of the given recipe.
func (r *recipePartRepository) GetComment(ctx context.Context, recipeID, id uint) (*models.RecipeComment, error) {
	var comment models.RecipeComment
	err := r.db.WithContext(ctx).
		Where("id = ? AND recipe_id = ?", id, recipeID).
		First(&comment).Error
	return &comment, err
}

// GetDeletableComment finds a comment written by uid or left on one of uid's recipes.
func (r *recipePartRepository) GetDeletableComment(ctx context.Context, id, uid uint) (*models.RecipeComment, error) {
	var comment models.RecipeComment
	err := r.db.WithContext(ctx).
		Select("recipe_comments.*").
		Joins("JOIN recipes ON recipes.id = recipe_comments.recipe_id").
		Where("recipe_comments.id = ?", id).
		Where("(recipe_comments.uid = ? OR recipes.uid = ?)", uid, uid).
		First(&comment).Error
	return &comment, err
}

func (r *recipePartRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RecipeComment{}, id).Error
}
