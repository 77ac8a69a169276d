package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload. UserType carries the raw role claim;
// Role and UserID are filled in after a successful parse so callers never
// handle the loose string or subject forms.
type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	UserType string `json:"UserType"`
	jwt.RegisteredClaims

	Role   models.Role `json:"-"`
	UserID int64       `json:"-"`
}

// GenerateToken mints a signed session token for the given principal.
// Expiry is issued-at plus the configured TTL; issuer and audience come
// from the config and are enforced again at validation time.
func GenerateToken(cfg *config.SecurityConfig, userID int64, role models.Role, email, name string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.TokenTTL)

	claims := Claims{
		Email:    email,
		Name:     name,
		UserType: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates signature, method, issuer, audience and expiry (no
// leeway: a token is dead the instant it expires) and returns the claims.
// Every failure mode collapses to ErrInvalidToken.
func ParseToken(tokenStr string, cfg *config.SecurityConfig) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithAudience(cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	role, err := models.ParseRole(claims.UserType)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims.Role = role
	claims.UserID = userID
	return claims, nil
}
