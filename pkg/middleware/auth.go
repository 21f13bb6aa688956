package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/platinummonkey/contentlint/pkg/contextkeys"
)

// AuthContext describes the authenticated API client
type AuthContext struct {
	// KeyID is a short fingerprint of the accepted API key, safe to log
	KeyID string
}

// APIKeyAuth authenticates requests against a fixed set of API keys.
// Keys are supplied via the Authorization header ("Bearer <key>") or
// the X-API-Key header. An empty key set disables authentication.
type APIKeyAuth struct {
	// Hashed keys; comparisons run against digests so key length is
	// never observable through timing.
	keys map[string][32]byte
}

// NewAPIKeyAuth creates the auth middleware
func NewAPIKeyAuth(keys []string) *APIKeyAuth {
	hashed := make(map[string][32]byte, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		digest := sha256.Sum256([]byte(key))
		hashed[keyFingerprint(digest)] = digest
	}
	return &APIKeyAuth{keys: hashed}
}

// Enabled reports whether any keys are configured
func (m *APIKeyAuth) Enabled() bool {
	return len(m.keys) > 0
}

// Handler wraps an HTTP handler with API key authentication
func (m *APIKeyAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		key := extractAPIKey(r)
		if key == "" {
			unauthorizedResponse(w, "missing API key")
			return
		}

		keyID, ok := m.verify(key)
		if !ok {
			unauthorizedResponse(w, "invalid API key")
			return
		}

		ctx := contextkeys.WithAuth(r.Context(), &AuthContext{KeyID: keyID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *APIKeyAuth) verify(key string) (string, bool) {
	digest := sha256.Sum256([]byte(key))
	for id, want := range m.keys {
		if subtle.ConstantTimeCompare(digest[:], want[:]) == 1 {
			return id, true
		}
	}
	return "", false
}

func extractAPIKey(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.Header.Get("X-API-Key")
}

// keyFingerprint derives the loggable key ID from a key digest
func keyFingerprint(digest [32]byte) string {
	return hex.EncodeToString(digest[:])[:12]
}

// GetAuthContext extracts the auth context from a request, or nil for
// unauthenticated requests
func GetAuthContext(r *http.Request) *AuthContext {
	ctx := r.Context().Value(contextkeys.AuthKey)
	if ctx == nil {
		return nil
	}
	authCtx, ok := ctx.(*AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

func unauthorizedResponse(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
