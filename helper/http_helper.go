package helper

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"recipe-share/models"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
)

const (
	textSuccess    = "SUCCESS"
	textBadRequest = "BAD REQUEST"
	textInternal   = "Internal server error"
)

// Envelope is the body of every API response. HTTP status equals Code.
type Envelope struct {
	Detail string      `json:"detail"`
	Data   interface{} `json:"data,omitempty"`
	Total  *int64      `json:"total,omitempty"`
	Code   int         `json:"code"`
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		unauthorized models.ErrorUnauthorized
		denied       models.ErrorPermissionDenied
		notFound     models.ErrorNotFound
		invalid      models.ErrorInvalidOperation
		conflict     models.ErrorConflict
	)
	switch {
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &denied):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(c *gin.Context, res Envelope) {
	if res.Code == 0 {
		res.Code = http.StatusOK
	}
	if res.Detail == "" {
		if res.Code < http.StatusBadRequest {
			res.Detail = textSuccess
		} else {
			res.Detail = textBadRequest
		}
	}
	c.JSON(res.Code, res)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, data interface{}) {
	u.SendResponse(c, Envelope{Data: data})
}

// SendList sends one page of a listing together with the unpaged total.
func (u *HTTPHelper) SendList(c *gin.Context, data interface{}, total int64) {
	u.SendResponse(c, Envelope{Data: data, Total: &total})
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, code int, message string, data interface{}) {
	u.SendResponse(c, Envelope{Detail: message, Data: data, Code: code})
}

// SendErrorFrom writes err with the code GetStatusCode picks for it. The
// message of an internal error is not exposed.
func (u *HTTPHelper) SendErrorFrom(c *gin.Context, err error) {
	code := u.GetStatusCode(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		u.SendError(c, code, textInternal, nil)
		return
	}

	var invalid models.ErrorInvalidOperation
	if errors.As(err, &invalid) && len(invalid.Fields) > 0 {
		u.SendError(c, code, invalid.Message, invalid.Fields)
		return
	}
	u.SendError(c, code, err.Error(), nil)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendError(c, http.StatusBadRequest, message, nil)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context) {
	u.SendError(c, http.StatusUnauthorized, models.MsgInvalidCredentials, nil)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	u.SendErrorFrom(c, u.ValidationError(validationErrors))
}

// ValidationError turns validator output into an InvalidOperation whose
// Fields map a json field name to its translated messages.
func (u *HTTPHelper) ValidationError(validationErrors validator.ValidationErrors) error {
	fields := map[string][]string{}
	var translated map[string]string
	if u.Translator != nil {
		translated = validationErrors.Translate(u.Translator)
	}
	for _, err := range validationErrors {
		msg := translated[err.Namespace()]
		if msg == "" {
			msg = err.Field() + " failed on " + err.Tag()
		}
		fields[err.Field()] = append(fields[err.Field()], msg)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k]...)
	}
	return models.ErrorInvalidOperation{Message: strings.Join(msgs, "; "), Fields: fields}
}

// check runs the struct validator and writes a 400 envelope on failure.
func (u *HTTPHelper) check(c *gin.Context, obj interface{}) bool {
	if u.Validate == nil {
		return true
	}
	if err := u.Validate.Struct(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			u.SendValidationError(c, verrs)
		} else {
			u.SendBadRequest(c, err.Error())
		}
		return false
	}
	return true
}

// BindJSON decodes and validates the request body. It writes the error
// response itself and reports whether the handler should go on.
func (u *HTTPHelper) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		u.SendBadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return u.check(c, obj)
}

// BindQuery decodes and validates query parameters.
func (u *HTTPHelper) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		u.SendBadRequest(c, "invalid query: "+err.Error())
		return false
	}
	return u.check(c, obj)
}

// BindForm decodes and validates a urlencoded or multipart form.
func (u *HTTPHelper) BindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		u.SendBadRequest(c, "invalid form: "+err.Error())
		return false
	}
	return u.check(c, obj)
}

func parseID(name, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, models.InvalidOperation("invalid " + name)
	}
	return uint(id), nil
}

// QueryID reads a required positive id from the query string.
func (u *HTTPHelper) QueryID(c *gin.Context, name string) (uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		u.SendBadRequest(c, name+" is required")
		return 0, false
	}
	id, err := parseID(name, raw)
	if err != nil {
		u.SendErrorFrom(c, err)
		return 0, false
	}
	return id, true
}

// OptionalQueryID is QueryID for parameters that may be left out.
func (u *HTTPHelper) OptionalQueryID(c *gin.Context, name string) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := parseID(name, raw)
	if err != nil {
		u.SendErrorFrom(c, err)
		return nil, false
	}
	return &id, true
}

// ParamID reads a positive id from the route path.
func (u *HTTPHelper) ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := parseID(name, c.Param(name))
	if err != nil {
		u.SendErrorFrom(c, err)
		return 0, false
	}
	return id, true
}
