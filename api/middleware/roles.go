package middleware

import (
	"net/http"

	"github.com/greenacres/greenacres-backend/api/responses"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
	"github.com/greenacres/greenacres-backend/pkg/logger"
)

// RequireAdmin allows only admin accounts through.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(enums.UserRoleAdmin) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireApprovedBuyer gates the portal: approved buyers and admins pass,
// anyone else authenticated (pending, rejected) does not.
func RequireApprovedBuyer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == string(enums.UserRoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			if role != string(enums.UserRoleBuyer) || StatusFromContext(r.Context()) != string(enums.AccountStatusApproved) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account not approved for portal access"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
