package repositories

import (
	"context"

	"recipe-share/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	recipesTable  = "recipes"
	commentsTable = "recipe_comments"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetVisible(ctx context.Context, id uint, uid *uint) (*models.Recipe, error)
	GetDetail(ctx context.Context, id uint, uid *uint) (*models.Recipe, error)
	GetOwned(ctx context.Context, id, uid uint) (*models.Recipe, error)
	ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.Recipe, int64, error)
	ListByGroup(ctx context.Context, groupID uint, uid *uint) ([]models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	SetCover(ctx context.Context, id uint, key string) error
	Delete(ctx context.Context, id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe with its initial ingredients and steps.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).
		Omit("User", "Group", "Comments").
		Create(recipe).Error
}

func (r *recipeRepository) GetVisible(ctx context.Context, id uint, uid *uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Group").
		Scopes(Visible(recipesTable, uid)).
		Where("id = ?", id).
		First(&recipe).Error
	return &recipe, err
}

// GetDetail loads a visible recipe with ingredients, ordered steps and the
// comments the caller may read. The recipe owner reads every comment.
func (r *recipeRepository) GetDetail(ctx context.Context, id uint, uid *uint) (*models.Recipe, error) {
	recipe, err := r.GetVisible(ctx, id, uid)
	if err != nil {
		return recipe, err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipe.ID).Order("id asc").Find(&recipe.Ingredients).Error; err != nil {
		return recipe, err
	}
	err = db.Where("recipe_id = ?", recipe.ID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("id asc").
		Find(&recipe.Steps).Error
	if err != nil {
		return recipe, err
	}

	comments := db.Preload("User").Where("recipe_id = ?", recipe.ID)
	if uid == nil || *uid != recipe.UID {
		comments = comments.Scopes(Visible(commentsTable, uid))
	}
	err = comments.Order("id asc").Find(&recipe.Comments).Error
	return recipe, err
}

func (r *recipeRepository) GetOwned(ctx context.Context, id, uid uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Group").
		Scopes(OwnedBy(recipesTable, uid)).
		Where("id = ?", id).
		First(&recipe).Error
	return &recipe, err
}

func (r *recipeRepository) ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Scopes(Visible(recipesTable, uid)).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("User").
		Preload("Group").
		Order("id desc").
		Scopes(Paginate(params)).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *recipeRepository) ListByGroup(ctx context.Context, groupID uint, uid *uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Group").
		Scopes(Visible(recipesTable, uid)).
		Where("group_id = ?", groupID).
		Order("id desc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) SetCover(ctx context.Context, id uint, key string) error {
	return r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", id).
		Update("cover", key).Error
}

// Delete removes the recipe and everything hanging off it in one transaction.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.RecipeIngredient{}, &models.RecipeStep{}, &models.RecipeComment{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}
