package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/vedran77/userhub/internal/auth"
	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

type contextKey string

const userKey contextKey = "user"

// Auth resolves the request principal from a bearer token: verify the token,
// load the user it names, reject unknown users as unauthenticated and
// inactive users as forbidden. Privilege checks stay with the handlers.
func Auth(tokens *auth.TokenCodec, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Missing or invalid token"}}`, http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				log.Printf("ERROR auth lookup [%s]: %v", GetRequestID(r.Context()), err)
				http.Error(w, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			// A valid signature for a vanished user is still unauthenticated.
			if user == nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			if !user.IsActive {
				http.Error(w, `{"error":{"code":"ACCOUNT_DISABLED","message":"Account is disabled"}}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated principal from the request context.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}
