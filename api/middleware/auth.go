package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"yatube/logger"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = logger.FieldUserID
	ContextUser   = "user"
)

var errNoToken = errors.New("no token")

// TokenResolver находит пользователя по токену
type TokenResolver interface {
	UserByToken(ctx context.Context, token string) (*models.User, error)
}

// bearerToken берет токен из Authorization: Bearer <token>,
// для websocket допускается ?token=
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", errNoToken
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", errNoToken
}

func authenticate(c *gin.Context, users TokenResolver) bool {
	token, err := bearerToken(c)
	if err != nil || token == "" {
		return false
	}
	user, err := users.UserByToken(c.Request.Context(), token)
	if err != nil {
		return false
	}
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUser, user)
	return true
}

// AuthMiddleware требует действующий токен, иначе 401
func AuthMiddleware(users TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, users) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required: provide Authorization Bearer token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware - пользователь определяется, если токен передан и действителен
func OptionalAuthMiddleware(users TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, users)
		c.Next()
	}
}

// StaffOnly пропускает только администраторов; ставится после AuthMiddleware
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentUserID возвращает 0 для анонимного запроса
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
