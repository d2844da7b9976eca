package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-share/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type signupForm struct {
	Name     string `json:"name" validate:"required,max=8"`
	Password string `json:"password" validate:"required"`
}

func newHelper(t *testing.T) *HTTPHelper {
	h, err := NewHTTPHelper()
	require.NoError(t, err)
	return h
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetStatusCode(t *testing.T) {
	h := &HTTPHelper{}
	cases := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{models.Unauthorized(), http.StatusUnauthorized},
		{models.PermissionDenied(""), http.StatusForbidden},
		{models.NotFound("recipe"), http.StatusNotFound},
		{models.InvalidOperation("bad"), http.StatusBadRequest},
		{models.Conflict("taken"), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", models.NotFound("group")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, h.GetStatusCode(tc.err), "%v", tc.err)
	}
}

func TestSendSuccessOmitsTotal(t *testing.T) {
	h := &HTTPHelper{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SendSuccess(c, gin.H{"id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "SUCCESS", body["detail"])
	assert.EqualValues(t, 200, body["code"])
	assert.NotContains(t, body, "total")
	assert.Contains(t, body, "data")
}

func TestSendListCarriesTotal(t *testing.T) {
	h := &HTTPHelper{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SendList(c, []int{}, 0)

	body := decode(t, w)
	assert.EqualValues(t, 0, body["total"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestSendErrorFromHidesInternalMessage(t *testing.T) {
	h := &HTTPHelper{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SendErrorFrom(c, models.Internal("query users", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["detail"])
	assert.NotContains(t, body, "data")
	assert.Len(t, c.Errors, 1)
}

func TestSendErrorFromDomainError(t *testing.T) {
	h := &HTTPHelper{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SendErrorFrom(c, models.NotFound("recipe"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "recipe does not exist or access denied", body["detail"])
	assert.EqualValues(t, 404, body["code"])
}

func TestBindJSONValidationError(t *testing.T) {
	h := newHelper(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"much too long"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var form signupForm
	ok := h.BindJSON(c, &form)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	fields, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")
	assert.Contains(t, body["detail"], "password is a required field")
	assert.Contains(t, body["detail"], "; ")
}

func TestBindJSONMalformedBody(t *testing.T) {
	h := newHelper(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var form signupForm
	assert.False(t, h.BindJSON(c, &form))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryID(t *testing.T) {
	h := &HTTPHelper{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?recipe_id=12", nil)
	id, ok := h.QueryID(c, "recipe_id")
	require.True(t, ok)
	assert.Equal(t, uint(12), id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?recipe_id=0", nil)
	_, ok = h.QueryID(c, "recipe_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok = h.QueryID(c, "recipe_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionalQueryID(t *testing.T) {
	h := &HTTPHelper{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	id, ok := h.OptionalQueryID(c, "group_id")
	assert.True(t, ok)
	assert.Nil(t, id)
}
