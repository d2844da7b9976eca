package repositories

import (
	"context"

	"recipe-share/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const groupsTable = "recipe_groups"

type GroupRepository interface {
	Create(ctx context.Context, group *models.RecipeGroup) error
	GetVisible(ctx context.Context, id uint, uid *uint) (*models.RecipeGroup, error)
	GetOwned(ctx context.Context, id, uid uint) (*models.RecipeGroup, error)
	GetOwnedForUpdate(ctx context.Context, id, uid uint) (*models.RecipeGroup, error)
	ParentOf(ctx context.Context, id uint) (*uint, error)
	ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeGroup, int64, error)
	ListChildren(ctx context.Context, parentID *uint, uid *uint) ([]models.RecipeGroup, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
	Update(ctx context.Context, group *models.RecipeGroup) error
	Delete(ctx context.Context, id uint) error
	Transaction(ctx context.Context, fn func(repo GroupRepository) error) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.RecipeGroup) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(group).Error
}

func (r *groupRepository) GetVisible(ctx context.Context, id uint, uid *uint) (*models.RecipeGroup, error) {
	var group models.RecipeGroup
	err := r.db.WithContext(ctx).
		Scopes(Visible(groupsTable, uid)).
		Where("id = ?", id).
		First(&group).Error
	return &group, err
}

func (r *groupRepository) GetOwned(ctx context.Context, id, uid uint) (*models.RecipeGroup, error) {
	var group models.RecipeGroup
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(groupsTable, uid)).
		Where("id = ?", id).
		First(&group).Error
	return &group, err
}

func (r *groupRepository) GetOwnedForUpdate(ctx context.Context, id, uid uint) (*models.RecipeGroup, error) {
	var group models.RecipeGroup
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(OwnedBy(groupsTable, uid)).
		Where("id = ?", id).
		First(&group).Error
	return &group, err
}

// ParentOf returns the parent id of any group, ignoring ownership.
// It is the single step of the ancestor walk and locks the row it reads, so
// two moves over the same chain serialize instead of both passing the check.
func (r *groupRepository) ParentOf(ctx context.Context, id uint) (*uint, error) {
	var group models.RecipeGroup
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "parent_id").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return group.ParentID, nil
}

func (r *groupRepository) ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeGroup, int64, error) {
	var groups []models.RecipeGroup
	var total int64

	query := r.db.WithContext(ctx).Model(&models.RecipeGroup{}).
		Scopes(Visible(groupsTable, uid)).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id asc").Scopes(Paginate(params)).Find(&groups).Error
	return groups, total, err
}

// ListChildren lists visible groups under parentID, or root groups when parentID is nil.
func (r *groupRepository) ListChildren(ctx context.Context, parentID *uint, uid *uint) ([]models.RecipeGroup, error) {
	var groups []models.RecipeGroup
	query := r.db.WithContext(ctx).Scopes(Visible(groupsTable, uid))
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("id asc").Find(&groups).Error
	return groups, err
}

func (r *groupRepository) CountChildren(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RecipeGroup{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *groupRepository) Update(ctx context.Context, group *models.RecipeGroup) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(group).Error
}

// Delete detaches the group's recipes and removes the group.
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("group_id = ?", id).
		Update("group_id", nil).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.RecipeGroup{}, id).Error
}

func (r *groupRepository) Transaction(ctx context.Context, fn func(repo GroupRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&groupRepository{db: tx})
	})
}
