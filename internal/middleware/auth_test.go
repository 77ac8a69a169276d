package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/security"
)

type mockMemberSource struct {
	findByIDFunc func(ctx context.Context, id int64) (models.Member, error)
}

func (m *mockMemberSource) FindByID(ctx context.Context, id int64) (models.Member, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return models.Member{}, repository.ErrMemberNotFound
}

func gateTestConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret:   "test-secret",
			JWTIssuer:   "BosphorusFellasAPI",
			JWTAudience: "BosphorusFellasAPI",
			TokenTTL:    time.Hour,
		},
	}
}

func newGateRouter(cfg *config.AppConfig, members MemberSource, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("", Auth(cfg, members))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/probe", func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "role": string(claims.Role)})
	})
	return router
}

func mintToken(t *testing.T, cfg *config.AppConfig, userID int64, role models.Role) string {
	t.Helper()
	token, _, err := security.GenerateToken(&cfg.Security, userID, role, "u@example.com", "U")
	require.NoError(t, err)
	return token
}

func doProbe(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingToken(t *testing.T) {
	router := newGateRouter(gateTestConfig(), &mockMemberSource{})

	rec := doProbe(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_token")
}

func TestAuthMalformedHeader(t *testing.T) {
	router := newGateRouter(gateTestConfig(), &mockMemberSource{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_token")
}

func TestAuthInvalidToken(t *testing.T) {
	router := newGateRouter(gateTestConfig(), &mockMemberSource{})

	rec := doProbe(router, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")
}

func TestAuthExpiredToken(t *testing.T) {
	cfg := gateTestConfig()
	expired := gateTestConfig()
	expired.Security.TokenTTL = -time.Minute

	router := newGateRouter(cfg, &mockMemberSource{})
	rec := doProbe(router, mintToken(t, expired, 1, models.RoleMember))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")
}

func TestAuthActiveMemberPasses(t *testing.T) {
	cfg := gateTestConfig()
	members := &mockMemberSource{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return models.Member{ID: id, Active: true}, nil
		},
	}
	router := newGateRouter(cfg, members)

	rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":42`)
}

// A member deactivated after the token was issued is locked out on the
// next request, not at token expiry.
func TestAuthDeactivatedMemberMidSession(t *testing.T) {
	cfg := gateTestConfig()
	members := &mockMemberSource{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return models.Member{ID: id, Active: false}, nil
		},
	}
	router := newGateRouter(cfg, members)

	rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_inactive")
}

func TestAuthDeletedMember(t *testing.T) {
	cfg := gateTestConfig()
	router := newGateRouter(cfg, &mockMemberSource{})

	rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")
}

func TestAuthMemberStoreError(t *testing.T) {
	cfg := gateTestConfig()
	members := &mockMemberSource{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return models.Member{}, errors.New("connection reset")
		},
	}
	router := newGateRouter(cfg, members)

	rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthAdminSkipsMemberCheck(t *testing.T) {
	cfg := gateTestConfig()
	members := &mockMemberSource{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			t.Fatal("admin tokens must not hit the member store")
			return models.Member{}, nil
		},
	}
	router := newGateRouter(cfg, members)

	rec := doProbe(router, mintToken(t, cfg, 1, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestRequireRoleExactMatch(t *testing.T) {
	cfg := gateTestConfig()
	members := &mockMemberSource{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return models.Member{ID: id, Active: true}, nil
		},
	}

	t.Run("member blocked from admin route", func(t *testing.T) {
		router := newGateRouter(cfg, members, models.RoleAdmin)
		rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin blocked from member route", func(t *testing.T) {
		router := newGateRouter(cfg, members, models.RoleMember)
		rec := doProbe(router, mintToken(t, cfg, 1, models.RoleAdmin))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed on admin route", func(t *testing.T) {
		router := newGateRouter(cfg, members, models.RoleAdmin)
		rec := doProbe(router, mintToken(t, cfg, 1, models.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member allowed on member route", func(t *testing.T) {
		router := newGateRouter(cfg, members, models.RoleMember)
		rec := doProbe(router, mintToken(t, cfg, 42, models.RoleMember))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
