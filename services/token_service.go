package services

import (
	"context"
	"errors"
	"time"

	"recipe-share/config"
	"recipe-share/models"
	"recipe-share/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxUserAgentLen = 255
	maxDescLen      = 128
)

// TokenContext is where and why a token was issued.
type TokenContext struct {
	IP        string
	UserAgent string
	Desc      string
}

type TokenService interface {
	Issue(ctx context.Context, uid uint, ttl time.Duration, tc TokenContext) (string, *models.Token, error)
	Validate(ctx context.Context, raw string) (*models.Identity, error)
	Revoke(ctx context.Context, raw string) error
	ListSessions(ctx context.Context, identity *models.Identity) ([]models.SessionResponse, error)
	RevokeSession(ctx context.Context, identity *models.Identity, id uint) error
}

type sessionClaims struct {
	models.TokenClaims
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	tokens repositories.TokenRepository
	users  repositories.UserRepository
	log    *zap.Logger
	now    func() time.Time
}

func NewTokenService(cfg config.TokenConfig, tokens repositories.TokenRepository, users repositories.UserRepository, log *zap.Logger) TokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}
	return &tokenService{
		secret: cfg.Secret,
		ttl:    ttl,
		tokens: tokens,
		users:  users,
		log:    log,
		now:    time.Now,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *tokenService) Issue(ctx context.Context, uid uint, ttl time.Duration, tc TokenContext) (string, *models.Token, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	expires := now.Add(ttl)

	tc.UserAgent = truncate(tc.UserAgent, maxUserAgentLen)
	tc.Desc = truncate(tc.Desc, maxDescLen)

	claims := sessionClaims{
		TokenClaims: models.TokenClaims{
			UID:       uid,
			IP:        tc.IP,
			UserAgent: tc.UserAgent,
			Desc:      tc.Desc,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, models.Internal("sign token", err)
	}

	if _, err := s.tokens.DeleteExpired(ctx, uid, now); err != nil {
		s.log.Warn("purge expired tokens", zap.Uint("uid", uid), zap.Error(err))
	}

	row := &models.Token{
		Token:     signed,
		UID:       uid,
		Expires:   expires,
		IP:        optional(tc.IP),
		UserAgent: optional(tc.UserAgent),
		Desc:      optional(tc.Desc),
	}
	if err := s.tokens.Create(ctx, row); err != nil {
		return "", nil, models.Internal("persist token", err)
	}
	return signed, row, nil
}

func (s *tokenService) parse(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		return nil, models.Unauthorized()
	}
	return claims, nil
}

func (s *tokenService) Validate(ctx context.Context, raw string) (*models.Identity, error) {
	if raw == "" {
		return nil, models.Unauthorized()
	}
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	row, err := s.tokens.GetByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.Unauthorized()
		}
		return nil, models.Internal("load token", err)
	}
	if row.UID != claims.UID || !row.Expires.After(s.now()) {
		return nil, models.Unauthorized()
	}

	user, err := s.users.GetByID(ctx, row.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.Unauthorized()
		}
		return nil, models.Internal("load user", err)
	}
	return &models.Identity{User: *user, Token: raw, Claims: claims.TokenClaims}, nil
}

func (s *tokenService) Revoke(ctx context.Context, raw string) error {
	if _, err := s.tokens.DeleteByToken(ctx, raw); err != nil {
		return models.Internal("revoke token", err)
	}
	return nil
}

func (s *tokenService) ListSessions(ctx context.Context, identity *models.Identity) ([]models.SessionResponse, error) {
	rows, err := s.tokens.ListByUser(ctx, identity.User.ID)
	if err != nil {
		return nil, models.Internal("list tokens", err)
	}
	now := s.now()
	sessions := make([]models.SessionResponse, 0, len(rows))
	for _, row := range rows {
		if !row.Expires.After(now) {
			continue
		}
		sessions = append(sessions, models.SessionResponse{
			ID:        row.ID,
			Created:   row.Created,
			Expires:   row.Expires,
			IP:        row.IP,
			UserAgent: row.UserAgent,
			Desc:      row.Desc,
			Current:   row.Token == identity.Token,
		})
	}
	return sessions, nil
}

func (s *tokenService) RevokeSession(ctx context.Context, identity *models.Identity, id uint) error {
	n, err := s.tokens.DeleteByID(ctx, identity.User.ID, id)
	if err != nil {
		return models.Internal("revoke token", err)
	}
	if n == 0 {
		return models.NotFound("session")
	}
	return nil
}
