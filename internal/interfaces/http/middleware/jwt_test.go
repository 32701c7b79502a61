package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/infrastructure/auth"
	"github.com/zencrm/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "middleware-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "zencrm-test",
	})
}

func protectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	r.GET("/api/v1/listings", func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID.String(), "role": actor.Role.String()})
	})
	r.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()
	router := protectedRouter(jwtService)

	t.Run("valid token resolves the acting user", func(t *testing.T) {
		userID := uuid.New()
		issued, err := jwtService.GenerateToken(userID, "ana@zencrm.ro", identity.RoleAgent)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "agent")
	})

	t.Run("missing header answers 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header answers 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token answers 401 with INVALID_TOKEN", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:                "a-different-secret",
			AccessTokenExpiration: time.Hour,
			Issuer:                "zencrm-test",
		})
		issued, err := other.GenerateToken(uuid.New(), "ana@zencrm.ro", identity.RoleAgent)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token answers TOKEN_EXPIRED", func(t *testing.T) {
		expired := auth.NewJWTService(config.JWTConfig{
			Secret:                "middleware-test-secret",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "zencrm-test",
		})
		issued, err := expired.GenerateToken(uuid.New(), "ana@zencrm.ro", identity.RoleAgent)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()

	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	r.DELETE("/api/v1/publishing/credentials/mva",
		RequireRole(identity.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	request := func(role identity.Role) *httptest.ResponseRecorder {
		issued, err := jwtService.GenerateToken(uuid.New(), "x@zencrm.ro", role)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/publishing/credentials/mva", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("admin passes", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, request(identity.RoleAdmin).Code)
	})

	t.Run("agent is refused", func(t *testing.T) {
		w := request(identity.RoleAgent)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
