package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("unknown"))
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Level: "info"}, &buf)

	ctx := WithLogger(context.Background(), l)
	got := Ctx(ctx)
	got.Info().Msg("hello")
	require.Contains(t, buf.String(), `"message":"hello"`)

	// без логгера в контексте - глобальный, без паники
	fallback := Ctx(context.Background())
	require.NotNil(t, fallback)
}

func TestGinMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := newWithWriter(Config{Level: "info", ServiceName: "yatube"}, &buf)

	r := gin.New()
	r.Use(GinMiddleware(l))
	r.GET("/ping", func(c *gin.Context) {
		c.Set(FieldUserID, int64(7))
		Ctx(c.Request.Context()).Info().Msg("inside")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "req-1", w.Header().Get(headerRequestID))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var last map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[1], &last))
	require.Equal(t, "req-1", last[FieldRequestID])
	require.Equal(t, "yatube", last[FieldService])
	require.EqualValues(t, 200, last[FieldStatus])
	require.EqualValues(t, 7, last[FieldUserID])
}

func TestLevelMethodsChainOnAccessors(t *testing.T) {
	var buf bytes.Buffer
	prev := global
	global = newWithWriter(Config{Level: "debug"}, &buf)
	t.Cleanup(func() { global = prev })

	L().Debug().Msg("from global")
	Ctx(context.Background()).Warn().Msg("from fallback")
	Ctx(WithLogger(context.Background(), *L())).Info().Msg("from context")

	out := buf.String()
	require.Contains(t, out, `"message":"from global"`)
	require.Contains(t, out, `"message":"from fallback"`)
	require.Contains(t, out, `"message":"from context"`)
}
