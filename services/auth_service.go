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

const (
	descLogin     = "登录"
	descDocsLogin = "docs 登录"
)

// Decrypter recovers passwords sent encrypted with the server's public key.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
	PublicKeyPEM() string
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest, tc TokenContext) (*models.LoginResponse, error)
	LoginForm(ctx context.Context, form models.TokenForm, tc TokenContext) (*models.TokenResponse, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.UserResponse, error)
	Update(ctx context.Context, identity *models.Identity, req models.ChangeInfoRequest) (*models.UserResponse, error)
	Logout(ctx context.Context, identity *models.Identity) error
	PublicKey() (string, error)
}

type authService struct {
	users     repositories.UserRepository
	tokens    TokenService
	hasher    PasswordHasher
	decrypter Decrypter
	publisher events.Publisher
	log       *zap.Logger
}

// NewAuthService builds the account service. decrypter may be nil, in which
// case encrypted credentials are refused.
func NewAuthService(users repositories.UserRepository, tokens TokenService, hasher PasswordHasher, decrypter Decrypter, publisher events.Publisher, log *zap.Logger) AuthService {
	return &authService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		decrypter: decrypter,
		publisher: publisher,
		log:       log,
	}
}

func decodePassword(d Decrypter, passwd string, encrypted bool) (string, error) {
	if !encrypted {
		return passwd, nil
	}
	if d == nil {
		return "", models.InvalidOperation("encrypted credentials are not enabled")
	}
	plain, err := d.Decrypt(passwd)
	if err != nil {
		return "", models.InvalidOperation("cannot decrypt password")
	}
	return plain, nil
}

func publishAudit(ctx context.Context, p events.Publisher, log *zap.Logger, event events.AuditEvent) {
	if err := p.Publish(ctx, event); err != nil {
		log.Warn("publish audit event", zap.String("action", event.Action), zap.Error(err))
	}
}

// authenticate resolves name/password to an account. Every failure is the
// same Unauthenticated error.
func (s *authService) authenticate(ctx context.Context, name, passwd string) (*models.User, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.Unauthorized()
		}
		return nil, models.Internal("load user", err)
	}
	if !user.HasPassword() || !s.hasher.Check(passwd, *user.HashedPassword) {
		return nil, models.Unauthorized()
	}

	if s.hasher.NeedsRehash(*user.HashedPassword) {
		if digest, err := s.hasher.Hash(passwd); err == nil {
			user.HashedPassword = &digest
			if err := s.users.Update(ctx, user); err != nil {
				s.log.Warn("upgrade password digest", zap.Uint("uid", user.ID), zap.Error(err))
			}
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest, tc TokenContext) (*models.LoginResponse, error) {
	passwd, err := decodePassword(s.decrypter, req.Passwd, req.Encrypted)
	if err != nil {
		return nil, err
	}
	user, err := s.authenticate(ctx, req.Name, passwd)
	if err != nil {
		return nil, err
	}

	tc.Desc = descLogin
	if req.Desc != nil && *req.Desc != "" {
		tc.Desc = *req.Desc
	}
	token, _, err := s.tokens.Issue(ctx, user.ID, 0, tc)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{UserResponse: user.ToResponse(), Token: token}, nil
}

func (s *authService) LoginForm(ctx context.Context, form models.TokenForm, tc TokenContext) (*models.TokenResponse, error) {
	user, err := s.authenticate(ctx, form.Username, form.Password)
	if err != nil {
		return nil, err
	}
	tc.Desc = descDocsLogin
	token, _, err := s.tokens.Issue(ctx, user.ID, 0, tc)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) Create(ctx context.Context, req models.CreateUserRequest) (*models.UserResponse, error) {
	passwd, err := decodePassword(s.decrypter, req.Passwd, req.Encrypted)
	if err != nil {
		return nil, err
	}
	taken, err := s.users.NameTaken(ctx, req.Name, 0)
	if err != nil {
		return nil, models.Internal("check name", err)
	}
	if taken {
		return nil, models.Conflict("username already exists")
	}

	digest, err := s.hasher.Hash(passwd)
	if err != nil {
		return nil, models.Internal("hash password", err)
	}
	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		HashedPassword: &digest,
		RoleID:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, models.Internal("create user", err)
	}

	publishAudit(ctx, s.publisher, s.log, events.AuditEvent{
		Action:   events.ActionAccountCreated,
		TargetID: user.ID,
		Details:  map[string]any{"name": user.Name},
	})
	resp := user.ToResponse()
	return &resp, nil
}

// applyChangeInfo copies the set fields of req onto user.
func applyChangeInfo(ctx context.Context, users repositories.UserRepository, hasher PasswordHasher, d Decrypter, user *models.User, req models.ChangeInfoRequest) error {
	if req.Uname != nil && *req.Uname != user.Name {
		taken, err := users.NameTaken(ctx, *req.Uname, user.ID)
		if err != nil {
			return models.Internal("check name", err)
		}
		if taken {
			return models.Conflict("username already exists")
		}
		user.Name = *req.Uname
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Passwd != nil {
		passwd, err := decodePassword(d, *req.Passwd, req.Encrypted)
		if err != nil {
			return err
		}
		digest, err := hasher.Hash(passwd)
		if err != nil {
			return models.Internal("hash password", err)
		}
		user.HashedPassword = &digest
	}
	return nil
}

func (s *authService) Update(ctx context.Context, identity *models.Identity, req models.ChangeInfoRequest) (*models.UserResponse, error) {
	user := identity.User
	if err := applyChangeInfo(ctx, s.users, s.hasher, s.decrypter, &user, req); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, &user); err != nil {
		return nil, models.Internal("update user", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, identity *models.Identity) error {
	if err := s.tokens.Revoke(ctx, identity.Token); err != nil {
		return err
	}
	uid := identity.User.ID
	publishAudit(ctx, s.publisher, s.log, events.AuditEvent{
		Action:   events.ActionLogout,
		ActorID:  &uid,
		TargetID: uid,
	})
	return nil
}

func (s *authService) PublicKey() (string, error) {
	if s.decrypter == nil {
		return "", models.InvalidOperation("encrypted credentials are not enabled")
	}
	return s.decrypter.PublicKeyPEM(), nil
}
