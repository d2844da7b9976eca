package services

import (
	"context"
	"testing"

	"recipe-share/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const owner = uint(1)

func ownedGroup(id uint, parent *uint) *models.RecipeGroup {
	return &models.RecipeGroup{ID: id, Name: "g", UID: owner, ParentID: parent}
}

func TestSetParentRejectsSelf(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(5), owner).Return(ownedGroup(5, nil), nil)

	_, err := svc.SetParent(context.Background(), owner, 5, 5)
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
	groups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetParentRejectsMultiHopCycle(t *testing.T) {
	// 1 <- 2 <- 3: moving 1 under 3 would close the loop.
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(1), owner).Return(ownedGroup(1, nil), nil)
	groups.On("GetVisible", mock.Anything, uint(3), mock.Anything).Return(ownedGroup(3, uintPtr(2)), nil)
	groups.On("ParentOf", mock.Anything, uint(3)).Return(uintPtr(2), nil)
	groups.On("ParentOf", mock.Anything, uint(2)).Return(uintPtr(1), nil)

	_, err := svc.SetParent(context.Background(), owner, 1, 3)
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
	groups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetParentMovesUnderUnrelatedGroup(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(4), owner).Return(ownedGroup(4, nil), nil)
	groups.On("GetVisible", mock.Anything, uint(3), mock.Anything).Return(ownedGroup(3, uintPtr(2)), nil)
	groups.On("ParentOf", mock.Anything, uint(3)).Return(uintPtr(2), nil)
	groups.On("ParentOf", mock.Anything, uint(2)).Return(nil, nil)
	groups.On("Update", mock.Anything, mock.AnythingOfType("*models.RecipeGroup")).Return(nil)

	resp, err := svc.SetParent(context.Background(), owner, 4, 3)
	require.NoError(t, err)
	require.NotNil(t, resp.ParentID)
	assert.Equal(t, uint(3), *resp.ParentID)
}

func TestSetParentZeroMovesToRoot(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(4), owner).Return(ownedGroup(4, uintPtr(3)), nil)
	groups.On("Update", mock.Anything, mock.AnythingOfType("*models.RecipeGroup")).Return(nil)

	resp, err := svc.SetParent(context.Background(), owner, 4, 0)
	require.NoError(t, err)
	assert.Nil(t, resp.ParentID)
}

func TestSetParentInvisibleParent(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(4), owner).Return(ownedGroup(4, nil), nil)
	groups.On("GetVisible", mock.Anything, uint(8), mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SetParent(context.Background(), owner, 4, 8)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestUpdateForeignGroupIsNotFound(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(4), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	name := "mine now"
	_, err := svc.Update(context.Background(), 2, 4, models.UpdateGroupRequest{Name: &name})
	var nf models.ErrorNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "group does not exist or access denied", nf.Message)
}

func TestDeleteGroupWithChildren(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(2), owner).Return(ownedGroup(2, nil), nil)
	groups.On("CountChildren", mock.Anything, uint(2)).Return(int64(1), nil)

	err := svc.Delete(context.Background(), owner, 2)
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
	groups.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteLeafGroup(t *testing.T) {
	groups := &mockGroupRepo{}
	svc := NewGroupService(groups, &mockRecipeRepo{})
	groups.On("GetOwnedForUpdate", mock.Anything, uint(2), owner).Return(ownedGroup(2, nil), nil)
	groups.On("CountChildren", mock.Anything, uint(2)).Return(int64(0), nil)
	groups.On("Delete", mock.Anything, uint(2)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, 2))
	groups.AssertExpectations(t)
}

func TestCreateGroupInvalidStatus(t *testing.T) {
	svc := NewGroupService(&mockGroupRepo{}, &mockRecipeRepo{})
	status := 7
	_, err := svc.Create(context.Background(), owner, models.CreateGroupRequest{Name: "g", Status: &status})
	assert.ErrorAs(t, err, &models.ErrorInvalidOperation{})
}

func TestGroupRecipesRequireVisibleGroup(t *testing.T) {
	groups, recipes := &mockGroupRepo{}, &mockRecipeRepo{}
	svc := NewGroupService(groups, recipes)
	groups.On("GetVisible", mock.Anything, uint(3), (*uint)(nil)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Recipes(context.Background(), 3, nil)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
	recipes.AssertNotCalled(t, "ListByGroup", mock.Anything, mock.Anything, mock.Anything)
}
