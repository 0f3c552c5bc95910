package auth

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"
)

// ErrInvalidToken is returned when a bearer token does not match.
var ErrInvalidToken = errors.New("invalid token")

// RequireToken returns middleware that checks for a bearer token matching
// token in the Authorization header. Returns 401 Unauthorized otherwise.
// An empty token disables the check.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Println("Auth: Missing or malformed Authorization header")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := ValidateToken(bearer, token); err != nil {
				log.Printf("Auth: Token validation failed: %v", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token of a "Bearer <token>" header (RFC 7235).
// The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(strings.Join(fields[1:], " "))
	if token == "" {
		return "", false
	}
	return token, true
}

// ValidateToken compares got with want in constant time.
func ValidateToken(got, want string) error {
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrInvalidToken
	}
	return nil
}
