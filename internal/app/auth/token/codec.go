package token

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Codec signs and verifies purpose-tagged tokens. It is a pure function of
// the secret and its input; revocation lives elsewhere.
type Codec struct {
	secret []byte
	issuer string
	ttl    map[Purpose]time.Duration
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl: map[Purpose]time.Duration{
			PurposeAccess:        cfg.AccessTokenTTL,
			PurposeRefresh:       cfg.RefreshTokenTTL,
			PurposeEmailVerify:   cfg.EmailTokenTTL,
			PurposeResetPassword: cfg.ResetTokenTTL,
		},
	}
}

// TTL returns the configured lifetime for the given purpose.
func (c *Codec) TTL(p Purpose) time.Duration {
	return c.ttl[p]
}

// Issue signs a token for subject with the purpose's configured TTL.
func (c *Codec) Issue(subject string, p Purpose) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()
	exp = now.Add(c.ttl[p])

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			Issuer:    c.issuer,
			ID:        jti,
		},
		Purpose: p,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign token")
	}

	return signed, exp, jti, nil
}

// Decode verifies the signature and expiry and checks that the token was
// issued for expected. Failures map onto the decode-time taxonomy:
// MalformedToken, ExpiredToken, WrongPurpose or InvalidToken.
func (c *Codec) Decode(raw string, expected Purpose) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, customErrors.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, customErrors.ErrExpiredToken
	default:
		return Claims{}, customErrors.ErrInvalidToken
	}

	if !parsed.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Claims{}, customErrors.ErrInvalidToken
	}

	if claims.Purpose != expected {
		return Claims{}, customErrors.ErrWrongPurpose
	}

	return *claims, nil
}
