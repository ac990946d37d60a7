package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

// ErrTokenRevoked is returned when verifying a token that has been revoked.
var ErrTokenRevoked = errors.New("token has been revoked")

// Verifier turns presented credentials into a verified Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Claims carries the standard claims plus the caller profile.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Config configures the JWT service.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Clock  clock.Clock
}

// JWTService issues and verifies HS256 tokens and tracks revocations.
type JWTService struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	clock   clock.Clock
	revoked *xsync.MapOf[string, time.Time]
}

// NewJWTService creates a JWTService from cfg.
func NewJWTService(cfg Config) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("auth: ttl must be greater than 0")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	return &JWTService{
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
		ttl:     cfg.TTL,
		clock:   cfg.Clock,
		revoked: xsync.NewMapOf[string, time.Time](),
	}, nil
}

// Issue signs a token for subject.
func (s *JWTService) Issue(subject, username, role string) (string, Claims, error) {
	now := s.clock.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// Verify validates signature, issuer, expiry and revocation of token.
func (s *JWTService) Verify(_ context.Context, token string) (Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Identity{}, failure.InvalidCredentials(err)
	}

	return Identity{
		Subject:  claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}, nil
}

// Refresh exchanges a still valid token for a new one with a fresh expiry.
// The presented token is revoked.
func (s *JWTService) Refresh(ctx context.Context, token string) (string, Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", Claims{}, failure.InvalidCredentials(err)
	}

	fresh, freshClaims, err := s.Issue(claims.Subject, claims.Username, claims.Role)
	if err != nil {
		return "", Claims{}, err
	}
	s.revoke(claims)
	return fresh, freshClaims, nil
}

// Revoke invalidates token until it would have expired anyway.
func (s *JWTService) Revoke(_ context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return failure.InvalidCredentials(err)
	}
	s.revoke(claims)
	return nil
}

func (s *JWTService) revoke(claims *Claims) {
	until := s.clock.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	s.revoked.Store(claims.ID, until)
	s.pruneRevoked()
}

func (s *JWTService) pruneRevoked() {
	now := s.clock.Now()
	s.revoked.Range(func(id string, until time.Time) bool {
		if now.After(until) {
			s.revoked.Delete(id)
		}
		return true
	})
}

func (s *JWTService) parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}
	if _, ok := s.revoked.Load(claims.ID); ok {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
