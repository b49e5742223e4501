package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatube/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestNewAppServesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conf := &config.ConfigSchema{}
	conf.Databases.Driver = "sqlite"
	conf.Databases.FilePath = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conf.Media.Local.BasePath = t.TempDir()
	// redis не поднят: кеш должен уйти в память
	conf.Cache.Backend = "redis"
	conf.Redis.Addr = "127.0.0.1:1"
	config.ApplyDefaults(conf)

	a, err := newApp(conf)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.Nil(t, a.redis)
	require.Nil(t, a.rabbit)

	for path, want := range map[string]int{
		"/health":             http.StatusOK,
		"/":                   http.StatusOK,
		"/metrics":            http.StatusOK,
		"/group/missing/":     http.StatusNotFound,
		"/profile/nobody/":    http.StatusNotFound,
		"/follow/":            http.StatusUnauthorized,
		"/media/posts/no.gif": http.StatusNotFound,
	} {
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, w.Code, path)
	}
}
