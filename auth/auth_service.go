package auth

import (
	"context"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
	"github.com/pkg/errors"
)

const defaultTokenExpiry = time.Hour

// Service issues, validates and revokes session tokens. A token is a signed
// HS256 claim (subject, expiry, jti) that is additionally kept on the owning
// user's token allowlist; validation requires both the signature/expiry check
// and allowlist membership, which is what makes logout effective before the
// claim itself expires.
type Service struct {
	userRepo users.UserRepo
	secret   []byte
	expiry   time.Duration
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithTokenExpiry overrides the default one hour token validity window.
func WithTokenExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.expiry = expiry
	}
}

func NewService(userRepo users.UserRepo, secret []byte, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] user repo is required")
	}
	if len(secret) == 0 {
		return nil, errors.New("[NewService] signing secret is required")
	}

	s := &Service{
		userRepo: userRepo,
		secret:   secret,
		expiry:   defaultTokenExpiry,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Authenticate looks up the account by email and checks the password.
// A missing account and a wrong password return the same error so callers
// cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken creates a signed claim bound to the user, appends it to the
// user's allowlist and returns the raw token. Multiple tokens may be live
// for one account at a time (multi-device sessions).
func (s *Service) IssueToken(ctx context.Context, user *users.User) (string, error) {
	now := s.nowTime()
	claims := jwtlib.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiry)),
		ID:        uuid.New().String(),
	}

	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "[IssueToken] signing")
	}

	if err := s.userRepo.AddToken(ctx, user.ID, raw); err != nil {
		return "", errors.Wrap(err, "[IssueToken] userRepo.AddToken")
	}
	return raw, nil
}

// ValidateToken verifies the claim's signature and expiry, loads the claimed
// account and requires the raw token to still be on that account's
// allowlist. Any failure surfaces as invalid credentials.
func (s *Service) ValidateToken(ctx context.Context, raw string) (*users.User, error) {
	claims := &jwtlib.RegisteredClaims{}
	token, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithTimeFunc(s.nowTime))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.HasToken(raw) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// RevokeToken removes exactly that token from the user's allowlist (logout).
func (s *Service) RevokeToken(ctx context.Context, user *users.User, raw string) error {
	if err := s.userRepo.RemoveToken(ctx, user.ID, raw); err != nil {
		return errors.Wrap(err, "[RevokeToken] userRepo.RemoveToken")
	}
	return nil
}

// RevokeAll clears the user's allowlist, invalidating every live session.
func (s *Service) RevokeAll(ctx context.Context, user *users.User) error {
	if err := s.userRepo.ClearTokens(ctx, user.ID); err != nil {
		return errors.Wrap(err, "[RevokeAll] userRepo.ClearTokens")
	}
	return nil
}
