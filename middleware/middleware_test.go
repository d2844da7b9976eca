package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-share/config"
	"recipe-share/helper"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// staticTokens accepts exactly the tokens in its map.
type staticTokens map[string]*models.Identity

func (s staticTokens) Issue(ctx context.Context, uid uint, ttl time.Duration, tc services.TokenContext) (string, *models.Token, error) {
	return "", nil, nil
}

func (s staticTokens) Validate(ctx context.Context, raw string) (*models.Identity, error) {
	if identity, ok := s[raw]; ok {
		return identity, nil
	}
	return nil, models.Unauthorized()
}

func (s staticTokens) Revoke(ctx context.Context, raw string) error { return nil }

func (s staticTokens) ListSessions(ctx context.Context, identity *models.Identity) ([]models.SessionResponse, error) {
	return nil, nil
}

func (s staticTokens) RevokeSession(ctx context.Context, identity *models.Identity, id uint) error {
	return nil
}

func testTokens() staticTokens {
	return staticTokens{
		"user-token":  {User: models.User{ID: 1, RoleID: models.RoleUser}},
		"admin-token": {User: models.User{ID: 2, RoleID: models.RoleAdmin}},
	}
}

func whoami(c *gin.Context) {
	identity := GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, gin.H{"uid": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uid": identity.User.ID})
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uidOf(t *testing.T, w *httptest.ResponseRecorder) float64 {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	uid, _ := body["uid"].(float64)
	return uid
}

func TestRequireIdentity(t *testing.T) {
	h := &helper.HTTPHelper{}
	r := gin.New()
	r.GET("/", RequireIdentity(testTokens(), h), whoami)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "forged").Code)

	w := serve(r, "user-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), uidOf(t, w))
}

func TestRequireIdentityIgnoresOtherSchemes(t *testing.T) {
	h := &helper.HTTPHelper{}
	r := gin.New()
	r.GET("/", RequireIdentity(testTokens(), h), whoami)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic user-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalIdentity(t *testing.T) {
	h := &helper.HTTPHelper{}
	r := gin.New()
	r.GET("/", OptionalIdentity(testTokens(), h), whoami)

	w := serve(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), uidOf(t, w))

	w = serve(r, "admin-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), uidOf(t, w))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "forged").Code)
}

func TestRequireLevel(t *testing.T) {
	h := &helper.HTTPHelper{}
	r := gin.New()
	r.GET("/", RequireIdentity(testTokens(), h), RequireLevel(services.AdminLevel, h), whoami)

	assert.Equal(t, http.StatusForbidden, serve(r, "user-token").Code)
	assert.Equal(t, http.StatusOK, serve(r, "admin-token").Code)
}

func TestTokenBucketWithoutRedisPassesThrough(t *testing.T) {
	h := &helper.HTTPHelper{}
	r := gin.New()
	r.GET("/", NewTokenBucket(config.RateLimitConfig{Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, Prefix: "rl"}, nil, h, zap.NewNop()), whoami)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "").Code)
	}
}

func TestRateKeyUsesRouteTemplate(t *testing.T) {
	var key string
	r := gin.New()
	r.GET("/recipes/:id", func(c *gin.Context) {
		key = rateKey("rl", c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/recipes/7", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:ip:10.0.0.9:route:GET /recipes/:id", key)
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64(4))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestRequestLoggerSetsHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", whoami)

	w := serve(r, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.NotEmpty(t, w.Header().Get("X-Process-Time"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
