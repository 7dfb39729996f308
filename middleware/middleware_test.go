package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ipss-cms/database"
	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router *gin.Engine
	tokens *services.TokenManager
	users  repositories.UserRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	h, err := helper.NewHTTPHelper(zap.NewNop())
	require.NoError(t, err)

	f := &authFixture{
		tokens: services.NewTokenManager("secret", time.Hour),
		users:  repositories.NewUserRepository(db.Gorm),
	}
	auth := NewAuthenticator(f.tokens, f.users, h)

	r := gin.New()
	whoami := func(c *gin.Context) {
		user, ok := helper.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anon": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
	r.GET("/private", auth.Required(), whoami)
	r.GET("/admin", auth.Required(), auth.RequireRole(models.RoleAdmin), whoami)
	r.GET("/staff", auth.Required(), auth.RequireAnyRole(models.RoleAdmin, models.RoleManager), whoami)
	r.GET("/public", auth.Optional(), whoami)
	f.router = r
	return f
}

func (f *authFixture) addUser(t *testing.T, email string, role models.UserRole, active bool) *models.User {
	t.Helper()
	u := &models.User{Name: "X", Email: email, PasswordHash: "h", Role: role, Active: active}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *authFixture) do(t *testing.T, path, token string) (int, helper.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var body helper.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestAuthRequired(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.addUser(t, "admin@ipss.pt", models.RoleAdmin, true)
	token, err := f.tokens.Issue(admin)
	require.NoError(t, err)

	code, body := f.do(t, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, msgTokenMissing, body.Message)

	code, body = f.do(t, "/private", "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, msgTokenInvalid, body.Message)

	code, _ = f.do(t, "/private", token)
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.addUser(t, "admin@ipss.pt", models.RoleAdmin, true)
	token, err := services.NewTokenManager("secret", -time.Minute).Issue(admin)
	require.NoError(t, err)

	code, body := f.do(t, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, msgTokenExpired, body.Message)
}

func TestAuthDeactivatedUserLosesAccess(t *testing.T) {
	f := newAuthFixture(t)
	u := f.addUser(t, "ana@ipss.pt", models.RoleManager, true)
	token, err := f.tokens.Issue(u)
	require.NoError(t, err)

	require.NoError(t, f.users.SetActive(context.Background(), u.ID, false))
	code, body := f.do(t, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, msgUserInactive, body.Message)

	code, body = f.do(t, "/public", token)
	assert.Equal(t, http.StatusOK, code)
}

func TestRoleGates(t *testing.T) {
	f := newAuthFixture(t)
	manager := f.addUser(t, "ana@ipss.pt", models.RoleManager, true)
	token, err := f.tokens.Issue(manager)
	require.NoError(t, err)

	code, body := f.do(t, "/admin", token)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, msgAccessDenied, body.Message)
	assert.False(t, body.Success)

	code, _ = f.do(t, "/staff", token)
	assert.Equal(t, http.StatusOK, code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(2, time.Hour, zap.NewNop()).Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()), SecurityHeaders(true))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, w.Header().Get(requestIDHeader), 27)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	var body helper.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.MsgServerError, body.Message)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(requestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}
