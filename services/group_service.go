package services

import (
	"context"
	"errors"

	"recipe-share/models"
	"recipe-share/repositories"

	"gorm.io/gorm"
)

type GroupService interface {
	List(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeGroupResponse, int64, error)
	Children(ctx context.Context, groupID *uint, uid *uint) ([]models.RecipeGroupResponse, error)
	Recipes(ctx context.Context, groupID uint, uid *uint) ([]models.RecipeResponse, error)
	Create(ctx context.Context, uid uint, req models.CreateGroupRequest) (*models.RecipeGroupResponse, error)
	Update(ctx context.Context, uid, groupID uint, req models.UpdateGroupRequest) (*models.RecipeGroupResponse, error)
	SetParent(ctx context.Context, uid, groupID, parentID uint) (*models.RecipeGroupResponse, error)
	Delete(ctx context.Context, uid, groupID uint) error
}

type groupService struct {
	groups  repositories.GroupRepository
	recipes repositories.RecipeRepository
}

func NewGroupService(groups repositories.GroupRepository, recipes repositories.RecipeRepository) GroupService {
	return &groupService{groups: groups, recipes: recipes}
}

func groupResponses(groups []models.RecipeGroup) []models.RecipeGroupResponse {
	resp := make([]models.RecipeGroupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, groups[i].ToResponse())
	}
	return resp
}

func (s *groupService) List(ctx context.Context, uid *uint, params models.ListParams) ([]models.RecipeGroupResponse, int64, error) {
	groups, total, err := s.groups.ListVisible(ctx, uid, params)
	if err != nil {
		return nil, 0, models.Internal("list groups", err)
	}
	return groupResponses(groups), total, nil
}

func (s *groupService) Children(ctx context.Context, groupID *uint, uid *uint) ([]models.RecipeGroupResponse, error) {
	if groupID != nil {
		if _, err := s.groups.GetVisible(ctx, *groupID, uid); err != nil {
			return nil, notFoundOr(err, "group")
		}
	}
	groups, err := s.groups.ListChildren(ctx, groupID, uid)
	if err != nil {
		return nil, models.Internal("list groups", err)
	}
	return groupResponses(groups), nil
}

func (s *groupService) Recipes(ctx context.Context, groupID uint, uid *uint) ([]models.RecipeResponse, error) {
	if _, err := s.groups.GetVisible(ctx, groupID, uid); err != nil {
		return nil, notFoundOr(err, "group")
	}
	recipes, err := s.recipes.ListByGroup(ctx, groupID, uid)
	if err != nil {
		return nil, models.Internal("list recipes", err)
	}
	return recipeResponses(recipes), nil
}

func (s *groupService) Create(ctx context.Context, uid uint, req models.CreateGroupRequest) (*models.RecipeGroupResponse, error) {
	group := &models.RecipeGroup{
		Name:    req.Name,
		Desc:    req.Desc,
		UID:     uid,
		Private: req.Private,
	}
	if req.Status != nil {
		status := models.GroupStatus(*req.Status)
		if !status.Valid() {
			return nil, models.InvalidOperation("invalid group status")
		}
		group.Status = status
	}
	if req.ParentID != nil && *req.ParentID != 0 {
		if _, err := s.groups.GetVisible(ctx, *req.ParentID, &uid); err != nil {
			return nil, notFoundOr(err, "parent group")
		}
		parentID := *req.ParentID
		group.ParentID = &parentID
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, models.Internal("create group", err)
	}
	resp := group.ToResponse()
	return &resp, nil
}

// setParent moves group under parentID, or to the root when parentID is 0.
// The proposed parent's ancestor chain is walked up to the root and the move
// is refused if the group shows up in it. It must run in the transaction that
// writes the group: every row of the walk stays locked until commit.
func setParent(ctx context.Context, repo repositories.GroupRepository, uid uint, group *models.RecipeGroup, parentID uint) error {
	if parentID == 0 {
		group.ParentID = nil
		return nil
	}
	if parentID == group.ID {
		return models.InvalidOperation("a group cannot be its own parent")
	}
	if _, err := repo.GetVisible(ctx, parentID, &uid); err != nil {
		return notFoundOr(err, "parent group")
	}

	visited := map[uint]bool{}
	for cur := &parentID; cur != nil; {
		if *cur == group.ID {
			return models.InvalidOperation("a group cannot be moved under its own descendant")
		}
		if visited[*cur] {
			break
		}
		visited[*cur] = true

		next, err := repo.ParentOf(ctx, *cur)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return models.Internal("walk group ancestors", err)
		}
		cur = next
	}

	group.ParentID = &parentID
	return nil
}

func (s *groupService) Update(ctx context.Context, uid, groupID uint, req models.UpdateGroupRequest) (*models.RecipeGroupResponse, error) {
	var updated *models.RecipeGroup
	err := s.groups.Transaction(ctx, func(repo repositories.GroupRepository) error {
		group, err := repo.GetOwnedForUpdate(ctx, groupID, uid)
		if err != nil {
			return notFoundOr(err, "group")
		}
		if req.ParentID != nil {
			if err := setParent(ctx, repo, uid, group, *req.ParentID); err != nil {
				return err
			}
		}
		if req.Name != nil {
			group.Name = *req.Name
		}
		if req.Desc != nil {
			group.Desc = req.Desc
		}
		if req.Status != nil {
			status := models.GroupStatus(*req.Status)
			if !status.Valid() {
				return models.InvalidOperation("invalid group status")
			}
			group.Status = status
		}
		if req.Private != nil {
			group.Private = *req.Private
		}
		if err := repo.Update(ctx, group); err != nil {
			return models.Internal("update group", err)
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, internalOr(err)
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *groupService) SetParent(ctx context.Context, uid, groupID, parentID uint) (*models.RecipeGroupResponse, error) {
	return s.Update(ctx, uid, groupID, models.UpdateGroupRequest{ParentID: &parentID})
}

// Delete refuses groups that still have children; recipes in the group are
// detached, not deleted.
func (s *groupService) Delete(ctx context.Context, uid, groupID uint) error {
	err := s.groups.Transaction(ctx, func(repo repositories.GroupRepository) error {
		if _, err := repo.GetOwnedForUpdate(ctx, groupID, uid); err != nil {
			return notFoundOr(err, "group")
		}
		n, err := repo.CountChildren(ctx, groupID)
		if err != nil {
			return models.Internal("count child groups", err)
		}
		if n > 0 {
			return models.InvalidOperation("group still has child groups")
		}
		if err := repo.Delete(ctx, groupID); err != nil {
			return models.Internal("delete group", err)
		}
		return nil
	})
	return internalOr(err)
}
