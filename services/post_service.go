package services

import (
	"context"

	"recipe-share/models"
	"recipe-share/repositories"
)

type PostService interface {
	List(ctx context.Context, identity *models.Identity, params models.PostListParams) ([]models.PostResponse, int64, error)
	Get(ctx context.Context, id uint, uid *uint) (*models.PostResponse, error)
	Create(ctx context.Context, uid uint, req models.PostRequest) (*models.PostResponse, error)
	Update(ctx context.Context, uid, id uint, req models.PostRequest) (*models.PostResponse, error)
	Delete(ctx context.Context, uid, id uint) error
}

type postService struct {
	posts repositories.PostRepository
}

func NewPostService(posts repositories.PostRepository) PostService {
	return &postService{posts: posts}
}

// List shows published posts visible to the caller, or in console mode every
// post of the caller regardless of status.
func (s *postService) List(ctx context.Context, identity *models.Identity, params models.PostListParams) ([]models.PostResponse, int64, error) {
	filter := repositories.PostListFilter{
		Params: params.ListParams,
		Search: params.Search,
		Sort:   params.Sort,
		Viewer: identity.UserID(),
	}
	if params.Console {
		if identity == nil {
			return nil, 0, models.Unauthorized()
		}
		filter.Owner = identity.UserID()
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, models.Internal("list posts", err)
	}
	resp := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, posts[i].ToResponse(false))
	}
	return resp, total, nil
}

func (s *postService) Get(ctx context.Context, id uint, uid *uint) (*models.PostResponse, error) {
	post, err := s.posts.GetVisible(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	resp := post.ToResponse(true)
	return &resp, nil
}

func applyPost(post *models.Post, req models.PostRequest) error {
	status := models.PostStatus(req.Status)
	if !status.Valid() {
		return models.InvalidOperation("invalid post status")
	}
	post.Title = req.Title
	if post.Title == "" {
		post.Title = models.DefaultPostTitle
	}
	post.Content = req.Content
	post.Status = status
	post.Private = req.Private
	return nil
}

func (s *postService) Create(ctx context.Context, uid uint, req models.PostRequest) (*models.PostResponse, error) {
	post := &models.Post{UID: uid}
	if err := applyPost(post, req); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.Internal("create post", err)
	}
	resp := post.ToResponse(true)
	return &resp, nil
}

func (s *postService) Update(ctx context.Context, uid, id uint, req models.PostRequest) (*models.PostResponse, error) {
	post, err := s.posts.GetOwned(ctx, id, uid)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if err := applyPost(post, req); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.Internal("update post", err)
	}
	resp := post.ToResponse(true)
	return &resp, nil
}

func (s *postService) Delete(ctx context.Context, uid, id uint) error {
	if _, err := s.posts.GetOwned(ctx, id, uid); err != nil {
		return notFoundOr(err, "post")
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return models.Internal("delete post", err)
	}
	return nil
}
