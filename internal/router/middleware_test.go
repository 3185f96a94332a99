package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SessionMiddleware())
	engine.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, sessionID(c))
	})
	return engine
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	engine := sessionTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	var issued *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			issued = cookie
		}
	}
	require.NotNil(t, issued)
	assert.Equal(t, w.Body.String(), issued.Value)
	assert.True(t, issued.HttpOnly)
}

func TestSessionMiddlewareKeepsExistingSession(t *testing.T) {
	engine := sessionTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "existing-session"})
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing-session", w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		assert.NotEqual(t, sessionCookieName, cookie.Name, "no replacement cookie expected")
	}
}
