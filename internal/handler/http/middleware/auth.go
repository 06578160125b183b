package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the authenticated caller, taken from the access token.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

type identityKey struct{}

// IdentityFromContext returns the caller placed in ctx by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// AuthRequired rejects requests without a verified access token. It must run after
// jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		userID, _ := claims[jwt.ClaimUserID].(string)
		role, _ := claims[jwt.ClaimRole].(string)
		if userID == "" || !user.Role(role).IsValid() {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		email, _ := claims[jwt.ClaimEmail].(string)

		ctx := WithIdentity(r.Context(), Identity{UserID: userID, Email: email, Role: user.Role(role)})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}
