package security

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPIN is returned when the teacher PIN does not match
	ErrInvalidPIN = errors.New("invalid teacher PIN")
	// ErrInvalidToken is returned for a missing, expired or forged teacher token
	ErrInvalidToken = errors.New("invalid teacher token")
)

const tokenIssuer = "funenglish"

// TeacherClaims are carried by teacher tokens
type TeacherClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TeacherAuth guards the teacher view with an optional PIN.
// Without a PIN every teacher request is allowed.
type TeacherAuth struct {
	pinHash []byte
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewTeacherAuth hashes pin and prepares token signing. An empty secret is
// replaced by a random one, which invalidates tokens on restart.
func NewTeacherAuth(pin, secret string, ttl time.Duration) (*TeacherAuth, error) {
	a := &TeacherAuth{ttl: ttl, now: time.Now}
	if pin == "" {
		return a, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash teacher PIN: %w", err)
	}
	a.pinHash = hash

	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		a.secret = key
	} else {
		a.secret = []byte(secret)
	}
	return a, nil
}

// Enabled reports whether a PIN is required
func (a *TeacherAuth) Enabled() bool {
	return len(a.pinHash) > 0
}

// Login exchanges the PIN for a signed token
func (a *TeacherAuth) Login(pin string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, errors.New("teacher PIN is not configured")
	}
	if err := bcrypt.CompareHashAndPassword(a.pinHash, []byte(pin)); err != nil {
		return "", time.Time{}, ErrInvalidPIN
	}

	now := a.now()
	expires := now.Add(a.ttl)
	claims := &TeacherClaims{
		Role: "teacher",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "teacher",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expires, nil
}

// Verify checks a teacher token
func (a *TeacherAuth) Verify(tokenStr string) error {
	if !a.Enabled() {
		return nil
	}

	claims := &TeacherClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != "teacher" {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects requests without a valid bearer token when a PIN is configured
func (a *TeacherAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, "missing bearer token")
			return
		}
		if err := a.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="teacher"`)
	writeError(w, http.StatusUnauthorized, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
