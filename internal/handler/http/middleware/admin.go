package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if id.Role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
