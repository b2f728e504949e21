package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "actingRole"
)

// Заголовки аутентификации, проставляются API гейтвеем
const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
)

// Auth middleware аутентификации по заголовку X-User-ID
// Роль берется из X-User-Role (customer по умолчанию)
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		role := domain.ActingRole(r.Header.Get(HeaderRole))
		switch role {
		case domain.RoleBarber, domain.RoleAdmin:
		default:
			role = domain.RoleCustomer
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff middleware допускает только роли barber и admin
// Вешается поверх Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRole(r.Context())
		if !ok || !role.IsStaff() {
			handlers.RespondForbidden(w, "доступ разрешен только персоналу")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole извлекает роль из контекста запроса
func GetRole(ctx context.Context) (domain.ActingRole, bool) {
	role, ok := ctx.Value(roleKey).(domain.ActingRole)
	return role, ok
}
