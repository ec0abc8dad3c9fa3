package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the signed identity of a bearer token: the subject is the
// user's email, UserID the numeric id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenCodec issues and verifies self-contained bearer tokens. Validity is
// determined entirely by signature and expiry; there is no server-side state.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// Issue signs a token with the codec's default TTL.
func (c *TokenCodec) Issue(email string, userID int64) (string, error) {
	return c.IssueWithTTL(email, userID, c.ttl)
}

// IssueWithTTL signs a token that expires ttl from now.
func (c *TokenCodec) IssueWithTTL(email string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(c.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})

	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Malformed, tampered and expired tokens all come back as ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID == 0 || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
