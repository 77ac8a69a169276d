package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Principal is a verified identity, either an administrator or a member.
type Principal struct {
	ID    int64
	Role  models.Role
	Email string
	Name  string
}

// credentialProvider tries to match an email+secret pair against one
// principal table. matched=false with a nil error means "not mine, try the
// next provider"; a non-nil error ends the chain.
type credentialProvider interface {
	authenticate(ctx context.Context, email, secret string) (Principal, bool, error)
}

type LoginResult struct {
	Token     string
	Principal Principal
	ExpiresAt time.Time
}

type AuthService struct {
	providers []credentialProvider
	admins    repository.AdminRepository
	members   repository.MemberRepository
	limiter   *redis.Client
	cfg       *config.AppConfig
	log       zerolog.Logger
}

// NewAuthService wires the fixed admin-first, member-second provider order.
// limiter may be nil, which disables login throttling.
func NewAuthService(
	admins repository.AdminRepository,
	members repository.MemberRepository,
	limiter *redis.Client,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		providers: []credentialProvider{
			&adminProvider{repo: admins, log: log},
			&memberProvider{repo: members, log: log},
		},
		admins:  admins,
		members: members,
		limiter: limiter,
		cfg:     cfg,
		log:     log,
	}
}

// Login walks the provider chain. A wrong password in one table falls
// through to the next; only a verified-but-inactive member ends the chain
// early, because that outcome must never turn into a token.
func (s *AuthService) Login(ctx context.Context, email, secret string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := s.checkAttempts(ctx, email); err != nil {
		return LoginResult{}, err
	}

	for _, provider := range s.providers {
		principal, matched, err := provider.authenticate(ctx, email, secret)
		if err != nil {
			return LoginResult{}, err
		}
		if !matched {
			continue
		}

		s.clearAttempts(ctx, email)

		token, expiresAt, err := security.GenerateToken(&s.cfg.Security, principal.ID, principal.Role, principal.Email, principal.Name)
		if err != nil {
			return LoginResult{}, fmt.Errorf("issue token: %w", err)
		}

		s.log.Info().
			Str("email", principal.Email).
			Str("role", string(principal.Role)).
			Msg("login succeeded")

		return LoginResult{Token: token, Principal: principal, ExpiresAt: expiresAt}, nil
	}

	s.recordAttempt(ctx, email)
	s.log.Warn().Str("email", email).Msg("login failed")
	return LoginResult{}, ErrInvalidCredentials
}

// ChangePassword verifies the caller's current secret (hash or legacy
// plaintext) before storing the bcrypt hash of the new one.
func (s *AuthService) ChangePassword(ctx context.Context, principalID int64, role models.Role, current, next string) error {
	var stored string
	switch role {
	case models.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, principalID)
		if err != nil {
			return err
		}
		stored = admin.Password
	case models.RoleMember:
		member, err := s.members.FindByID(ctx, principalID)
		if err != nil {
			return err
		}
		stored = member.Password
	default:
		return ErrInvalidCredentials
	}

	if !verifyStoredSecret(current, stored) {
		return ErrInvalidCredentials
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if role == models.RoleAdmin {
		return s.admins.UpdatePassword(ctx, principalID, hash)
	}
	return s.members.UpdatePassword(ctx, principalID, hash)
}

func (s *AuthService) AdminProfile(ctx context.Context, id int64) (models.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

type adminProvider struct {
	repo repository.AdminRepository
	log  zerolog.Logger
}

func (p *adminProvider) authenticate(ctx context.Context, email, secret string) (Principal, bool, error) {
	admin, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return Principal{}, false, nil
		}
		return Principal{}, false, err
	}

	if !verifyStoredSecret(secret, admin.Password) {
		return Principal{}, false, nil
	}

	if !security.IsHashed(admin.Password) {
		upgradeSecret(ctx, p.log, admin.Email, secret, func(ctx context.Context, hash string) error {
			return p.repo.UpdatePassword(ctx, admin.ID, hash)
		})
	}

	return Principal{
		ID:    admin.ID,
		Role:  models.RoleAdmin,
		Email: admin.Email,
		Name:  admin.DisplayName(),
	}, true, nil
}

type memberProvider struct {
	repo repository.MemberRepository
	log  zerolog.Logger
}

func (p *memberProvider) authenticate(ctx context.Context, email, secret string) (Principal, bool, error) {
	member, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return Principal{}, false, nil
		}
		return Principal{}, false, err
	}

	if !verifyStoredSecret(secret, member.Password) {
		return Principal{}, false, nil
	}

	// Correct secret but deactivated account: terminal, no fall-through.
	if !member.Active {
		return Principal{}, false, ErrAccountInactive
	}

	if !security.IsHashed(member.Password) {
		upgradeSecret(ctx, p.log, member.Email, secret, func(ctx context.Context, hash string) error {
			return p.repo.UpdatePassword(ctx, member.ID, hash)
		})
	}

	return Principal{
		ID:    member.ID,
		Role:  models.RoleMember,
		Email: member.Email,
		Name:  member.DisplayName(),
	}, true, nil
}

func verifyStoredSecret(secret, stored string) bool {
	if security.IsHashed(stored) {
		return security.VerifyPassword(secret, stored)
	}
	return stored == secret
}

// upgradeSecret rewrites a legacy plaintext row in hashed form. The login
// already succeeded, so a failed write is logged and swallowed.
func upgradeSecret(ctx context.Context, log zerolog.Logger, email, secret string, save func(context.Context, string) error) {
	hash, err := security.HashPassword(secret)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("password upgrade hashing failed")
		return
	}
	if err := save(ctx, hash); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("password upgrade persist failed")
		return
	}
	log.Info().Str("email", email).Msg("legacy password upgraded to hash")
}

const attemptKeyPrefix = "login_attempts:"

func (s *AuthService) checkAttempts(ctx context.Context, email string) error {
	if s.limiter == nil || s.cfg.Security.LoginAttemptLimit <= 0 {
		return nil
	}
	count, err := s.limiter.Get(ctx, attemptKeyPrefix+email).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Redis being down must not lock everyone out.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		}
		return nil
	}
	if count >= s.cfg.Security.LoginAttemptLimit {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) recordAttempt(ctx context.Context, email string) {
	if s.limiter == nil || s.cfg.Security.LoginAttemptLimit <= 0 {
		return
	}
	key := attemptKeyPrefix + email
	count, err := s.limiter.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("record login attempt failed")
		return
	}
	if count == 1 {
		s.limiter.Expire(ctx, key, s.cfg.Security.LoginAttemptWindow)
	}
}

func (s *AuthService) clearAttempts(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Del(ctx, attemptKeyPrefix+email).Err(); err != nil {
		s.log.Warn().Err(err).Msg("clear login attempts failed")
	}
}
