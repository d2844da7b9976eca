package repositories

import (
	"context"

	"recipe-share/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error)
	ListBelowLevel(ctx context.Context, level int, params models.ListParams) ([]models.User, int64, error)
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
	GetRole(ctx context.Context, id int) (*models.Role, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	DeleteTokens(ctx context.Context, uid uint) (int64, error)
	Transaction(ctx context.Context, fn func(repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).First(&user.Role, user.RoleID).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("name = ?", name).First(&user).Error
	return &user, err
}

// GetByIDForUpdate locks the account row until the surrounding transaction ends.
func (r *userRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error
	if err != nil {
		return &user, err
	}
	err = r.db.WithContext(ctx).First(&user.Role, user.RoleID).Error
	return &user, err
}

func (r *userRepository) ListBelowLevel(ctx context.Context, level int, params models.ListParams) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role_id < ?", level).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Role").
		Order("id asc").
		Scopes(Paginate(params)).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetRole(ctx context.Context, id int) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	return &role, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.DeleteTokens(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) DeleteTokens(ctx context.Context, uid uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}

func (r *userRepository) Transaction(ctx context.Context, fn func(repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}
