package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotepet/service-adoption/internal/auth"
	"github.com/adotepet/service-adoption/internal/middleware"
)

func identityRouter(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthContext(jwtManager))
	router.GET("/whoami", func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "present": ok})
	})
	router.GET("/admin", middleware.RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func get(router *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthContext_ValidToken(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Minute)
	router := identityRouter(m)

	tok, err := m.Generate("user-7", auth.RoleUser)
	require.NoError(t, err)

	rec := get(router, "/whoami", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"user-7","present":true}`, rec.Body.String())
}

func TestAuthContext_MissingTokenContinuesWithoutIdentity(t *testing.T) {
	router := identityRouter(auth.NewJWTManager("secret", time.Minute))

	rec := get(router, "/whoami", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"","present":false}`, rec.Body.String())
}

func TestAuthContext_InvalidTokenContinuesWithoutIdentity(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Minute)
	other := auth.NewJWTManager("other-secret", time.Minute)
	router := identityRouter(m)

	tok, err := other.Generate("user-7", auth.RoleUser)
	require.NoError(t, err)

	rec := get(router, "/whoami", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"","present":false}`, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Minute)
	router := identityRouter(m)

	adminTok, err := m.Generate("admin-1", auth.RoleAdmin)
	require.NoError(t, err)
	userTok, err := m.Generate("user-1", auth.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, get(router, "/admin", adminTok).Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/admin", userTok).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/admin", "").Code)
}
