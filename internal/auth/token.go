// Session tokens.
//
// A session token is a signed, stateless bearer credential encoding a fixed
// snapshot of identity attributes. Claims are copied from the verified user at
// issue time and are immutable for the life of the token: a later change to
// the underlying account (e.g. toggling accepting_messages) is not reflected
// until a new token is issued. Materializing a session is a pure function of
// the token; the store is never consulted.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Parse for any token that cannot be trusted:
// malformed, expired, wrongly signed, or signed with an unexpected method.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the exact claim set embedded in a session token: the identity id,
// the display username, and the accepting-messages preference flag, plus
// standard issued-at/expiry metadata.
type Claims struct {
	UserID            string `json:"uid"`
	Username          string `json:"username"`
	AcceptingMessages bool   `json:"accepting_messages"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses session tokens with a symmetric server-held
// secret (HMAC-SHA256). It is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager from the signing secret and the token
// validity duration.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token carrying the given identity snapshot. No claim is
// ever derived from client-supplied data other than what the credential
// verifier already validated.
func (tm *TokenManager) Issue(userID, username string, acceptingMessages bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:            userID,
		Username:          username,
		AcceptingMessages: acceptingMessages,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(tm.secret)
}

// Parse validates tokenString and returns its claims. Any verification
// failure is collapsed into ErrInvalidToken so callers can treat every bad
// token as "not authenticated" without leaking the reason.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
