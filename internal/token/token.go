package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired means the token was well-formed and correctly signed but
	// its expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad signature,
	// malformed token, wrong signing method.
	ErrInvalid = errors.New("invalid token")
)

// Claims is the decoded payload of an access or refresh token.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user id. Zero means the
// subject was missing or malformed.
func (c *Claims) UserID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Issue signs an HS256 token for userID expiring after ttl. Tokens are
// self-contained: verification needs only the secret.
func Issue(userID int64, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret not configured")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks the signature and expiry of tokenStr against secret.
// Expiry failures come back as ErrExpired so callers can give the client a
// clearer message; everything else is ErrInvalid.
func Verify(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("signing secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, ErrExpired
	}

	return &claims, nil
}
