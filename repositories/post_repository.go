package repositories

import (
	"context"

	"recipe-share/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postsTable = "posts"

// postSortColumns maps the accepted sort keys to columns.
var postSortColumns = map[string]string{
	"created": "created",
	"updated": "updated",
	"title":   "title",
	"id":      "id",
}

type PostListFilter struct {
	Params models.ListParams
	Search string
	Sort   string
	// Owner restricts the listing to one account's posts of any status.
	Owner *uint
	// Viewer is the caller for the public listing; nil means anonymous.
	Viewer *uint
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetVisible(ctx context.Context, id uint, uid *uint) (*models.Post, error)
	GetOwned(ctx context.Context, id, uid uint) (*models.Post, error)
	List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(post, post.ID).Error
}

func (r *postRepository) GetVisible(ctx context.Context, id uint, uid *uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(Visible(postsTable, uid)).
		Where("id = ?", id).
		First(&post).Error
	return &post, err
}

func (r *postRepository) GetOwned(ctx context.Context, id, uid uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(OwnedBy(postsTable, uid)).
		Where("id = ?", id).
		First(&post).Error
	return &post, err
}

func (r *postRepository) List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.Owner != nil {
		query = query.Scopes(OwnedBy(postsTable, *filter.Owner))
	} else {
		query = query.Where("status = ?", models.PostStatusPublished).
			Scopes(Visible(postsTable, filter.Viewer))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR content LIKE ?)", like, like)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := postSortColumns[filter.Sort]
	if !ok {
		column = "created"
	}
	err := query.Preload("User").
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: column != "title"}).
		Scopes(Paginate(filter.Params)).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
