package services

import (
	"context"
	"time"

	"recipe-share/events"
	"recipe-share/models"
	"recipe-share/repositories"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) ListBelowLevel(ctx context.Context, level int, params models.ListParams) ([]models.User, int64, error) {
	args := m.Called(ctx, level, params)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	args := m.Called(ctx, name, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetRole(ctx context.Context, id int) (*models.Role, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Role)
	return r, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) DeleteTokens(ctx context.Context, uid uint) (int64, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Transaction(ctx context.Context, fn func(repo repositories.UserRepository) error) error {
	return fn(m)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(ctx context.Context, token *models.Token) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, raw string) (*models.Token, error) {
	args := m.Called(ctx, raw)
	t, _ := args.Get(0).(*models.Token)
	return t, args.Error(1)
}

func (m *mockTokenRepo) ListByUser(ctx context.Context, uid uint) ([]models.Token, error) {
	args := m.Called(ctx, uid)
	tokens, _ := args.Get(0).([]models.Token)
	return tokens, args.Error(1)
}

func (m *mockTokenRepo) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenRepo) DeleteByID(ctx context.Context, uid, id uint) (int64, error) {
	args := m.Called(ctx, uid, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenRepo) DeleteExpired(ctx context.Context, uid uint, now time.Time) (int64, error) {
	args := m.Called(ctx, uid, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Create(ctx context.Context, group *models.RecipeGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) GetVisible(ctx context.Context, id uint, uid *uint) (*models.RecipeGroup, error) {
	args := m.Called(ctx, id, uid)
	g, _ := args.Get(0).(*models.RecipeGroup)
	return g, args.Error(1)
}

func (m *mockGroupRepo) GetOwned(ctx context.Context, id, uid uint) (*models.RecipeGroup, error) {
	args := m.Called(ctx, id, uid)
	g, _ := args.Get(0).(*models.RecipeGroup)
	return g, args.Error(1)
}

func (m *mockGroupRepo) GetOwnedForUpdate(ctx context.Context, id, uid uint) (*models.RecipeGroup, error) {
	args := m.Called(ctx, id, uid)
	g, _ := args.Get(0).(*models.RecipeGroup)
	return g, args.Error(1)
}

func (m *mockGroupRepo) ParentOf(ctx context.Context, id uint) (*uint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*uint)
	return p, args.Error(1)
}

func (m *mockGroupRepo) ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeGroup, int64, error) {
	args := m.Called(ctx, uid, params)
	groups, _ := args.Get(0).([]models.RecipeGroup)
	return groups, args.Get(1).(int64), args.Error(2)
}

func (m *mockGroupRepo) ListChildren(ctx context.Context, parentID *uint, uid *uint) ([]models.RecipeGroup, error) {
	args := m.Called(ctx, parentID, uid)
	groups, _ := args.Get(0).([]models.RecipeGroup)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) CountChildren(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, group *models.RecipeGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGroupRepo) Transaction(ctx context.Context, fn func(repo repositories.GroupRepository) error) error {
	return fn(m)
}

type mockRecipeRepo struct{ mock.Mock }

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *mockRecipeRepo) GetVisible(ctx context.Context, id uint, uid *uint) (*models.Recipe, error) {
	args := m.Called(ctx, id, uid)
	r, _ := args.Get(0).(*models.Recipe)
	return r, args.Error(1)
}

func (m *mockRecipeRepo) GetDetail(ctx context.Context, id uint, uid *uint) (*models.Recipe, error) {
	args := m.Called(ctx, id, uid)
	r, _ := args.Get(0).(*models.Recipe)
	return r, args.Error(1)
}

func (m *mockRecipeRepo) GetOwned(ctx context.Context, id, uid uint) (*models.Recipe, error) {
	args := m.Called(ctx, id, uid)
	r, _ := args.Get(0).(*models.Recipe)
	return r, args.Error(1)
}

func (m *mockRecipeRepo) ListVisible(ctx context.Context, uid *uint, params models.ListParams) ([]models.Recipe, int64, error) {
	args := m.Called(ctx, uid, params)
	recipes, _ := args.Get(0).([]models.Recipe)
	return recipes, args.Get(1).(int64), args.Error(2)
}

func (m *mockRecipeRepo) ListByGroup(ctx context.Context, groupID uint, uid *uint) ([]models.Recipe, error) {
	args := m.Called(ctx, groupID, uid)
	recipes, _ := args.Get(0).([]models.Recipe)
	return recipes, args.Error(1)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *models.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *mockRecipeRepo) SetCover(ctx context.Context, id uint, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPartRepo struct{ mock.Mock }

func (m *mockPartRepo) CreateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockPartRepo) GetOwnedIngredient(ctx context.Context, id, uid uint) (*models.RecipeIngredient, error) {
	args := m.Called(ctx, id, uid)
	i, _ := args.Get(0).(*models.RecipeIngredient)
	return i, args.Error(1)
}

func (m *mockPartRepo) UpdateIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockPartRepo) DeleteIngredient(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPartRepo) CreateStep(ctx context.Context, step *models.RecipeStep) error {
	return m.Called(ctx, step).Error(0)
}

func (m *mockPartRepo) GetOwnedStep(ctx context.Context, id, uid uint) (*models.RecipeStep, error) {
	args := m.Called(ctx, id, uid)
	s, _ := args.Get(0).(*models.RecipeStep)
	return s, args.Error(1)
}

func (m *mockPartRepo) UpdateStep(ctx context.Context, step *models.RecipeStep) error {
	return m.Called(ctx, step).Error(0)
}

func (m *mockPartRepo) DeleteStep(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPartRepo) CreateComment(ctx context.Context, comment *models.RecipeComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockPartRepo) GetComment(ctx context.Context, recipeID, id uint) (*models.RecipeComment, error) {
	args := m.Called(ctx, recipeID, id)
	c, _ := args.Get(0).(*models.RecipeComment)
	return c, args.Error(1)
}

func (m *mockPartRepo) GetDeletableComment(ctx context.Context, id, uid uint) (*models.RecipeComment, error) {
	args := m.Called(ctx, id, uid)
	c, _ := args.Get(0).(*models.RecipeComment)
	return c, args.Error(1)
}

func (m *mockPartRepo) DeleteComment(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetVisible(ctx context.Context, id uint, uid *uint) (*models.Post, error) {
	args := m.Called(ctx, id, uid)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *mockPostRepo) GetOwned(ctx context.Context, id, uid uint) (*models.Post, error) {
	args := m.Called(ctx, id, uid)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *mockPostRepo) List(ctx context.Context, filter repositories.PostListFilter) ([]models.Post, int64, error) {
	args := m.Called(ctx, filter)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	events []events.AuditEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.AuditEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func uintPtr(v uint) *uint { return &v }

func userWithLevel(id uint, level int) *models.User {
	return &models.User{ID: id, Name: "user", RoleID: level, Role: models.Role{ID: level}}
}
