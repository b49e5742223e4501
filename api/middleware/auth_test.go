package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string]*models.User

func (f fakeResolver) UserByToken(_ context.Context, token string) (*models.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, errors.New("invalid token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := fakeResolver{
		"reader-token": {ID: 1, Username: "reader"},
		"admin-token":  {ID: 2, Username: "admin", IsStaff: true},
	}
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	}

	r := gin.New()
	r.GET("/optional", OptionalAuthMiddleware(users), echo)
	r.GET("/required", AuthMiddleware(users), echo)
	r.GET("/staff", AuthMiddleware(users), StaffOnly(), echo)
	return r
}

func request(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	cases := []struct {
		name, path, auth string
		status           int
		body             string
	}{
		{"anonymous optional", "/optional", "", http.StatusOK, `{"user_id":0}`},
		{"bad token optional", "/optional", "Bearer nope", http.StatusOK, `{"user_id":0}`},
		{"token optional", "/optional", "Bearer reader-token", http.StatusOK, `{"user_id":1}`},
		{"anonymous required", "/required", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/required", "Basic reader-token", http.StatusUnauthorized, ""},
		{"token required", "/required", "Bearer reader-token", http.StatusOK, `{"user_id":1}`},
		{"query token", "/required?token=reader-token", "", http.StatusOK, `{"user_id":1}`},
		{"not staff", "/staff", "Bearer reader-token", http.StatusForbidden, ""},
		{"staff", "/staff", "Bearer admin-token", http.StatusOK, `{"user_id":2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := request(r, tc.path, tc.auth)
			require.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				require.JSONEq(t, tc.body, w.Body.String())
			}
		})
	}
}
