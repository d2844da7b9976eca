package repositories

import (
	"context"
	"time"

	"recipe-share/models"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	GetByToken(ctx context.Context, raw string) (*models.Token, error)
	ListByUser(ctx context.Context, uid uint) ([]models.Token, error)
	DeleteByToken(ctx context.Context, raw string) (int64, error)
	DeleteByID(ctx context.Context, uid, id uint) (int64, error)
	DeleteExpired(ctx context.Context, uid uint, now time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByToken(ctx context.Context, raw string) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).Where("token = ?", raw).First(&token).Error
	return &token, err
}

func (r *tokenRepository) ListByUser(ctx context.Context, uid uint) ([]models.Token, error) {
	var tokens []models.Token
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created desc").
		Find(&tokens).Error
	return tokens, err
}

func (r *tokenRepository) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", raw).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) DeleteByID(ctx context.Context, uid, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, uid uint, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("uid = ? AND expires < ?", uid, now).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}
