package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyUserRole
	ctxKeyRequestID
)

// Auth requires a positive X-User-ID and stores it, together with the opaque
// X-User-Role, in the request context. Authentication itself happens upstream.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "missing or invalid "+HeaderUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		ctx = context.WithValue(ctx, ctxKeyUserRole, strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the caller id set by Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

// RoleFromContext returns the caller role set by Auth, "" if none was sent
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ctxKeyUserRole).(string)
	return role
}
