package services

import (
	"context"
	"errors"

	"recipe-share/events"
	"recipe-share/models"
	"recipe-share/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminLevel is the level admin endpoints are gated at: callers need more.
const AdminLevel = models.RoleUser

// Requires fails with PermissionDenied unless the caller's role level is
// strictly greater than minLevel.
func Requires(identity *models.Identity, minLevel int) error {
	if identity == nil {
		return models.Unauthorized()
	}
	if identity.User.Level() <= minLevel {
		return models.PermissionDenied("")
	}
	return nil
}

type AdminService interface {
	ListUsers(ctx context.Context, actor *models.Identity, params models.ListParams) ([]models.UserResponse, int64, error)
	UpdateUser(ctx context.Context, actor *models.Identity, uid uint, req models.AdminChangeInfoRequest) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, actor *models.Identity, uid uint) error
	RevokeTokens(ctx context.Context, actor *models.Identity, uid uint) (int64, error)
}

type adminService struct {
	users     repositories.UserRepository
	hasher    PasswordHasher
	decrypter Decrypter
	publisher events.Publisher
	log       *zap.Logger
}

func NewAdminService(users repositories.UserRepository, hasher PasswordHasher, decrypter Decrypter, publisher events.Publisher, log *zap.Logger) AdminService {
	return &adminService{
		users:     users,
		hasher:    hasher,
		decrypter: decrypter,
		publisher: publisher,
		log:       log,
	}
}

func (s *adminService) ListUsers(ctx context.Context, actor *models.Identity, params models.ListParams) ([]models.UserResponse, int64, error) {
	if err := Requires(actor, AdminLevel); err != nil {
		return nil, 0, err
	}
	users, total, err := s.users.ListBelowLevel(ctx, actor.User.Level(), params)
	if err != nil {
		return nil, 0, models.Internal("list users", err)
	}
	resp := make([]models.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, users[i].ToResponse())
	}
	return resp, total, nil
}

// lockTarget re-reads actor and target under row locks, in id order, and
// checks that the actor still outranks the target. A target at or above the
// actor's level is reported as missing.
func lockTarget(ctx context.Context, repo repositories.UserRepository, actorID, uid uint) (actor, target *models.User, err error) {
	load := func(id uint) (*models.User, error) {
		return repo.GetByIDForUpdate(ctx, id)
	}
	first, second := actorID, uid
	if uid < actorID {
		first, second = uid, actorID
	}
	locked := map[uint]*models.User{}
	for _, id := range []uint{first, second} {
		if _, ok := locked[id]; ok {
			continue
		}
		u, err := load(id)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.Internal("lock user", err)
		}
		if err == nil {
			locked[id] = u
		}
	}

	actor, ok := locked[actorID]
	if !ok {
		return nil, nil, models.Unauthorized()
	}
	if actor.Level() <= AdminLevel {
		return nil, nil, models.PermissionDenied("")
	}
	target, ok = locked[uid]
	if !ok || target.Level() >= actor.Level() {
		return nil, nil, models.NotFound("user")
	}
	return actor, target, nil
}

func (s *adminService) UpdateUser(ctx context.Context, actor *models.Identity, uid uint, req models.AdminChangeInfoRequest) (*models.UserResponse, error) {
	if err := Requires(actor, AdminLevel); err != nil {
		return nil, err
	}

	var updated *models.User
	changes := map[string]any{}
	err := s.users.Transaction(ctx, func(repo repositories.UserRepository) error {
		me, target, err := lockTarget(ctx, repo, actor.User.ID, uid)
		if err != nil {
			return err
		}
		if req.RoleID != nil && *req.RoleID != target.RoleID {
			role, err := repo.GetRole(ctx, *req.RoleID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.InvalidOperation("role does not exist")
				}
				return models.Internal("load role", err)
			}
			if role.ID >= me.Level() {
				return models.PermissionDenied("cannot assign a role at or above your own level")
			}
			changes["role_id"] = role.ID
			target.RoleID = role.ID
			target.Role = *role
		}
		if err := applyChangeInfo(ctx, repo, s.hasher, s.decrypter, target, req.ChangeInfoRequest); err != nil {
			return err
		}
		if err := repo.Update(ctx, target); err != nil {
			return models.Internal("update user", err)
		}
		updated = target
		return nil
	})
	if err != nil {
		return nil, internalOr(err)
	}

	if req.Uname != nil {
		changes["name"] = *req.Uname
	}
	if req.Passwd != nil {
		changes["password"] = true
	}
	actorID := actor.User.ID
	publishAudit(ctx, s.publisher, s.log, events.AuditEvent{
		Action:   events.ActionAdminUpdate,
		ActorID:  &actorID,
		TargetID: uid,
		Details:  changes,
	})
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor *models.Identity, uid uint) error {
	if err := Requires(actor, AdminLevel); err != nil {
		return err
	}
	err := s.users.Transaction(ctx, func(repo repositories.UserRepository) error {
		if _, _, err := lockTarget(ctx, repo, actor.User.ID, uid); err != nil {
			return err
		}
		if err := repo.Delete(ctx, uid); err != nil {
			return models.Internal("delete user", err)
		}
		return nil
	})
	if err != nil {
		return internalOr(err)
	}

	actorID := actor.User.ID
	publishAudit(ctx, s.publisher, s.log, events.AuditEvent{
		Action:   events.ActionAdminDelete,
		ActorID:  &actorID,
		TargetID: uid,
	})
	return nil
}

func (s *adminService) RevokeTokens(ctx context.Context, actor *models.Identity, uid uint) (int64, error) {
	if err := Requires(actor, AdminLevel); err != nil {
		return 0, err
	}
	var revoked int64
	err := s.users.Transaction(ctx, func(repo repositories.UserRepository) error {
		if _, _, err := lockTarget(ctx, repo, actor.User.ID, uid); err != nil {
			return err
		}
		n, err := repo.DeleteTokens(ctx, uid)
		if err != nil {
			return models.Internal("revoke tokens", err)
		}
		revoked = n
		return nil
	})
	if err != nil {
		return 0, internalOr(err)
	}

	actorID := actor.User.ID
	publishAudit(ctx, s.publisher, s.log, events.AuditEvent{
		Action:   events.ActionAdminRevoke,
		ActorID:  &actorID,
		TargetID: uid,
		Details:  map[string]any{"revoked": revoked},
	})
	return revoked, nil
}
