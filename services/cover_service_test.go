package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"recipe-share/models"
	"recipe-share/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newCoverFixture(t *testing.T) (*mockRecipeRepo, *storage.LocalStore, CoverService) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	recipes := &mockRecipeRepo{}
	return recipes, store, NewCoverService(recipes, store, 1024, zap.NewNop())
}

func TestCoverKeyLayout(t *testing.T) {
	key := CoverKey(3, 7, []byte("abc"))
	assert.Equal(t, "recipe/user_3/recipe_7/cover/900150983cd24fb0d6963f7d28e17f72.png", key)
	assert.True(t, strings.HasPrefix(key, CoverPrefix(3, 7)))
}

func TestUploadAndDownloadCover(t *testing.T) {
	recipes, _, svc := newCoverFixture(t)
	recipe := &models.Recipe{ID: 7, UID: 3}
	recipes.On("GetOwned", mock.Anything, uint(7), uint(3)).Return(recipe, nil)
	recipes.On("SetCover", mock.Anything, uint(7), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			key := args.String(2)
			recipe.Cover = &key
		}).Return(nil)
	recipes.On("GetVisible", mock.Anything, uint(7), (*uint)(nil)).Return(recipe, nil)

	resp, err := svc.Upload(context.Background(), 3, 7, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, CoverKey(3, 7, pngHeader), resp.Key)

	data, contentType, err := svc.Download(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(pngHeader, data))
	assert.Equal(t, "image/png", contentType)

	objects, err := svc.List(context.Background(), 3, 7)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, resp.Key, objects[0].Key)
}

func TestUploadRejectsNonImage(t *testing.T) {
	recipes, _, svc := newCoverFixture(t)

	_, err := svc.Upload(context.Background(), 3, 7, []byte("plain text, not an image"))
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
	recipes.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	_, _, svc := newCoverFixture(t)
	big := append(append([]byte{}, pngHeader...), make([]byte, 2048)...)

	_, err := svc.Upload(context.Background(), 3, 7, big)
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
}

func TestUploadToForeignRecipe(t *testing.T) {
	recipes, _, svc := newCoverFixture(t)
	recipes.On("GetOwned", mock.Anything, uint(7), uint(4)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Upload(context.Background(), 4, 7, pngHeader)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestDownloadWithoutCover(t *testing.T) {
	recipes, _, svc := newCoverFixture(t)
	recipes.On("GetVisible", mock.Anything, uint(7), (*uint)(nil)).Return(&models.Recipe{ID: 7, UID: 3}, nil)

	_, _, err := svc.Download(context.Background(), 7, nil)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}
