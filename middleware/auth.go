package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"ipss-cms/database"
	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/services"
)

const (
	msgTokenMissing   = "Token de acesso não fornecido"
	msgTokenInvalid   = "Token inválido"
	msgTokenExpired   = "Token expirado"
	msgUserInactive   = "Utilizador não encontrado ou inativo"
	msgAccessDenied   = "Acesso negado"
	msgAuthUnexpected = "Erro ao validar autenticação"
)

// Authenticator verifies bearer tokens and loads the live user row, so a
// deactivated or deleted account loses access before its token expires.
type Authenticator struct {
	tokens *services.TokenManager
	users  repositories.UserRepository
	Helper *helper.HTTPHelper
}

func NewAuthenticator(tokens *services.TokenManager, users repositories.UserRepository, h *helper.HTTPHelper) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, Helper: h}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// resolve returns the active user for the request token, or the message
// to answer with.
func (a *Authenticator) resolve(c *gin.Context, token string) (*models.User, string, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, services.ErrTokenExpired) {
			return nil, msgTokenExpired, nil
		}
		return nil, msgTokenInvalid, nil
	}

	user, err := a.users.GetActiveByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, msgUserInactive, nil
		}
		return nil, "", err
	}
	return user, "", nil
}

// Required rejects requests without a valid token for an active user.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			a.Helper.SendUnauthorizedError(c, msgTokenMissing)
			c.Abort()
			return
		}

		user, msg, err := a.resolve(c, token)
		if err != nil {
			a.Helper.SendError(c, &models.AppError{Kind: models.KindServer, Message: msgAuthUnexpected, Err: err})
			c.Abort()
			return
		}
		if user == nil {
			a.Helper.SendUnauthorizedError(c, msg)
			c.Abort()
			return
		}

		c.Set(helper.ContextUserKey, user)
		c.Next()
	}
}

// Optional attaches the user when a valid token is sent and otherwise lets
// the request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, _, err := a.resolve(c, token); err == nil && user != nil {
				c.Set(helper.ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAnyRole allows only the given roles. It must run after Required.
func (a *Authenticator) RequireAnyRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := helper.CurrentUser(c)
		if !ok {
			a.Helper.SendUnauthorizedError(c, msgTokenMissing)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		a.Helper.SendForbiddenError(c, msgAccessDenied)
		c.Abort()
	}
}

func (a *Authenticator) RequireRole(role models.UserRole) gin.HandlerFunc {
	return a.RequireAnyRole(role)
}
