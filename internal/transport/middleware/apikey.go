package middleware

import (
	"crypto/sha256"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/termtag/pkg/ctxutil"
)

// APIKeyHeader carries the API key. A bearer Authorization header works too.
const APIKeyHeader = "X-API-Key"

// APIKey returns middleware that requires a key matching one of the bcrypt
// hashes. The matched client is stored in the context as "key-<n>", n being
// the 1-based position of its hash. With no hashes every request passes.
func APIKey(hashes []string) Middleware {
	v := &keyVerifier{hashes: hashes}

	return func(next http.Handler) http.Handler {
		if len(hashes) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractAPIKey(r)
			if key == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			clientID, ok := v.verify(key)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithClientID(r.Context(), clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// keyVerifier remembers keys it has already matched so bcrypt runs once
// per key and process.
type keyVerifier struct {
	hashes   []string
	verified sync.Map // map[[32]byte]string
}

func (v *keyVerifier) verify(key string) (string, bool) {
	digest := sha256.Sum256([]byte(key))
	if id, ok := v.verified.Load(digest); ok {
		return id.(string), true
	}
	for i, h := range v.hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(key)) == nil {
			id := "key-" + strconv.Itoa(i+1)
			v.verified.Store(digest, id)
			return id, true
		}
	}
	return "", false
}

func extractAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
