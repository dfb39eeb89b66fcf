package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the smallest signing secret accepted. HS256 keys
// shorter than the hash output weaken the MAC, so startup fails fast
// instead of issuing poorly signed tokens.
const MinSecretBytes = 32

var (
	ErrWeakSecret       = errors.New("signing secret must be at least 32 bytes")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

type claims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec issues and verifies stateless bearer tokens. There is no
// revocation list: a leaked token stays valid until its expiry, so the
// exposure window is bounded by the configured TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given subject carrying the roles as a
// comma-joined claim, issued now and expiring after the codec's TTL.
func (c *Codec) Issue(subject string, roles []domain.Role) (string, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Roles: strings.Join(names, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded
// identity. It never touches storage.
func (c *Codec) Verify(tokenString string) (*domain.Identity, error) {
	var parsed claims
	t, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	if !t.Valid || parsed.Subject == "" {
		return nil, ErrMalformed
	}

	var roles []domain.Role
	for _, name := range strings.Split(parsed.Roles, ",") {
		if name != "" {
			roles = append(roles, domain.Role(name))
		}
	}

	return &domain.Identity{
		Username: parsed.Subject,
		Roles:    roles,
	}, nil
}
