package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName  = "sf_session"
	SessionHeaderName  = "X-Session-Token"
	sessionTokenIssuer = "mucevher"
)

var ErrNoSessionToken = errors.New("no session token found")

// SessionSigner issues and verifies the signed anonymous session token. The
// token identifies a visitor's state; it grants no privileges.
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionSigner(secret string, ttl time.Duration) *SessionSigner {
	return &SessionSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SessionSigner) TTL() time.Duration { return s.ttl }

// Issue signs a token whose subject is sessionID.
func (s *SessionSigner) Issue(sessionID string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("session secret not set")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		Issuer:   sessionTokenIssuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies the token and returns its session ID.
func (s *SessionSigner) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// ExtractSessionToken reads the token from the header or, failing that, the cookie.
func ExtractSessionToken(r *http.Request) (string, error) {
	if h := strings.TrimSpace(r.Header.Get(SessionHeaderName)); h != "" {
		return h, nil
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", ErrNoSessionToken
}

func GenerateSessionID() string {
	return uuid.NewString()
}
