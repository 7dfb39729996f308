package helper

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ipss-cms/models"
)

// Response is the envelope of every JSON body the API writes.
type Response struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
	Pagination interface{}         `json:"pagination,omitempty"`
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     *zap.Logger
}

// NewHTTPHelper wires gin's validator with Portuguese messages.
func NewHTTPHelper(log *zap.Logger) (*HTTPHelper, error) {
	v, trans, err := Validation()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHelper{Validate: v, Translator: trans, Logger: log}, nil
}

// SendSuccess ...
// Send 200 with data.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// SendCreated ...
// Send 201 with the created resource.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// SendPaginated ...
func (u *HTTPHelper) SendPaginated(c *gin.Context, data interface{}, limit, page, totalRecord int) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: u.GeneratePaging(c, limit, page, totalRecord),
	})
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, fields ...models.FieldError) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message, Errors: fields})
}

// SendValidationError ...
// Send the binding failure as a field list.
func (u *HTTPHelper) SendValidationError(c *gin.Context, err error) {
	u.SendBadRequest(c, "Dados inválidos", u.FieldErrors(err)...)
}

// SendUnauthorizedError ...
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{Success: false, Message: message})
}

// SendForbiddenError ...
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Response{Success: false, Message: message})
}

// SendNotFoundError ...
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Message: message})
}

// SendError ...
// Map a service error to its status. Server errors are logged and
// answered with a generic message.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	if appErr.Kind == models.KindServer {
		u.Logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		message := appErr.Message
		if message == "" {
			message = models.MsgServerError
		}
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: message})
		return
	}
	c.JSON(appErr.Status(), Response{Success: false, Message: appErr.Message, Errors: appErr.Fields})
}

// ParseID reads a positive numeric path parameter.
func (u *HTTPHelper) ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		u.SendBadRequest(c, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// CurrentUser returns the user attached by the auth middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// ContextUserKey is where the auth middleware stores the live user row.
const ContextUserKey = "user"

// IsAuthenticated reports whether an optional-auth route saw a valid token.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentUser(c)
	return ok
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return scheme + "://" + r.Host + r.URL.Path + "?" + q.Encode()
}

// Set pagination response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalRecord) / float64(limit)))
	}

	if page > 1 && totalPages >= page {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}
	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links": map[string]interface{}{
			"previous": prevURL,
			"next":     nextURL,
			"first":    firstURL,
			"last":     lastURL,
		},
	}
}
