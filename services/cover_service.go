package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"

	"recipe-share/models"
	"recipe-share/repositories"
	"recipe-share/storage"

	"go.uber.org/zap"
)

var coverContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// CoverPrefix is the object key prefix of a recipe's covers.
func CoverPrefix(uid, recipeID uint) string {
	return fmt.Sprintf("recipe/user_%d/recipe_%d/cover/", uid, recipeID)
}

// CoverKey is the content addressed object key of one cover image.
func CoverKey(uid, recipeID uint, data []byte) string {
	sum := md5.Sum(data)
	return CoverPrefix(uid, recipeID) + hex.EncodeToString(sum[:]) + ".png"
}

type CoverService interface {
	Upload(ctx context.Context, uid, recipeID uint, data []byte) (*models.CoverResponse, error)
	Download(ctx context.Context, recipeID uint, uid *uint) ([]byte, string, error)
	List(ctx context.Context, uid, recipeID uint) ([]storage.ObjectInfo, error)
}

type coverService struct {
	recipes  repositories.RecipeRepository
	store    storage.Store
	maxBytes int64
	log      *zap.Logger
}

func NewCoverService(recipes repositories.RecipeRepository, store storage.Store, maxBytes int64, log *zap.Logger) CoverService {
	return &coverService{recipes: recipes, store: store, maxBytes: maxBytes, log: log}
}

func (s *coverService) Upload(ctx context.Context, uid, recipeID uint, data []byte) (*models.CoverResponse, error) {
	if len(data) == 0 {
		return nil, models.InvalidOperation("empty cover image")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, models.InvalidOperation(fmt.Sprintf("cover image exceeds %d bytes", s.maxBytes))
	}
	contentType := http.DetectContentType(data)
	if !coverContentTypes[contentType] {
		return nil, models.InvalidOperation("cover must be a PNG or JPEG image")
	}

	recipe, err := s.recipes.GetOwned(ctx, recipeID, uid)
	if err != nil {
		return nil, notFoundOr(err, "recipe")
	}

	key := CoverKey(uid, recipe.ID, data)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), &storage.PutOptions{ContentType: contentType}); err != nil {
		s.log.Error("store cover", zap.String("key", key), zap.Error(err))
		return nil, models.Internal("store cover", err)
	}
	if err := s.recipes.SetCover(ctx, recipe.ID, key); err != nil {
		return nil, models.Internal("set cover", err)
	}
	return &models.CoverResponse{Key: key}, nil
}

func (s *coverService) Download(ctx context.Context, recipeID uint, uid *uint) ([]byte, string, error) {
	recipe, err := s.recipes.GetVisible(ctx, recipeID, uid)
	if err != nil {
		return nil, "", notFoundOr(err, "recipe")
	}
	if recipe.Cover == nil || *recipe.Cover == "" {
		return nil, "", models.NotFound("cover")
	}

	rc, err := s.store.Get(ctx, *recipe.Cover)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", models.NotFound("cover")
		}
		s.log.Error("load cover", zap.String("key", *recipe.Cover), zap.Error(err))
		return nil, "", models.Internal("load cover", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", models.Internal("read cover", err)
	}
	return data, http.DetectContentType(data), nil
}

func (s *coverService) List(ctx context.Context, uid, recipeID uint) ([]storage.ObjectInfo, error) {
	recipe, err := s.recipes.GetOwned(ctx, recipeID, uid)
	if err != nil {
		return nil, notFoundOr(err, "recipe")
	}
	objects, err := s.store.List(ctx, CoverPrefix(uid, recipe.ID))
	if err != nil {
		s.log.Error("list covers", zap.Uint("recipe", recipe.ID), zap.Error(err))
		return nil, models.Internal("list covers", err)
	}
	if objects == nil {
		objects = []storage.ObjectInfo{}
	}
	return objects, nil
}
