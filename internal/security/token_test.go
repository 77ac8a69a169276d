package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:   "test-secret-key",
		JWTIssuer:   "BosphorusFellasAPI",
		JWTAudience: "BosphorusFellasAPI",
		TokenTTL:    time.Hour,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testSecurityConfig()

	token, expiresAt, err := GenerateToken(cfg, 42, models.RoleMember, "jane@example.com", "Jane Doe")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(token, cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "member", claims.UserType)
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testSecurityConfig()

	token, _, err := GenerateToken(cfg, 1, models.RoleAdmin, "a@example.com", "A")
	require.NoError(t, err)

	other := testSecurityConfig()
	other.JWTSecret = "different-secret"

	_, err = ParseToken(token, other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	cfg := testSecurityConfig()

	token, _, err := GenerateToken(cfg, 1, models.RoleAdmin, "a@example.com", "A")
	require.NoError(t, err)

	other := testSecurityConfig()
	other.JWTIssuer = "SomeoneElse"

	_, err = ParseToken(token, other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongAudience(t *testing.T) {
	cfg := testSecurityConfig()

	token, _, err := GenerateToken(cfg, 1, models.RoleAdmin, "a@example.com", "A")
	require.NoError(t, err)

	other := testSecurityConfig()
	other.JWTAudience = "SomeoneElse"

	_, err = ParseToken(token, other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.TokenTTL = -time.Minute

	token, _, err := GenerateToken(cfg, 1, models.RoleMember, "a@example.com", "A")
	require.NoError(t, err)

	_, err = ParseToken(token, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// A token is rejected the instant its expiry is reached; there is no
// grace window.
func TestParseTokenNoLeeway(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.TokenTTL = -1 * time.Nanosecond

	token, _, err := GenerateToken(cfg, 1, models.RoleMember, "a@example.com", "A")
	require.NoError(t, err)

	_, err = ParseToken(token, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenUnknownRole(t *testing.T) {
	cfg := testSecurityConfig()
	now := time.Now()

	claims := Claims{
		Email:    "a@example.com",
		Name:     "A",
		UserType: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongMethod(t *testing.T) {
	cfg := testSecurityConfig()
	now := time.Now()

	claims := Claims{
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMissingExpiry(t *testing.T) {
	cfg := testSecurityConfig()

	claims := Claims{
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "1",
			Issuer:   cfg.JWTIssuer,
			Audience: jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	cfg := testSecurityConfig()

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := ParseToken(tokenStr, cfg)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
