package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// HeaderAdminID заголовок идентификации администратора.
// Аутентификацию выполняет API-gateway, сюда приходит уже проверенный ID.
const HeaderAdminID = "X-Admin-ID"

// Auth требует заголовок X-Admin-ID и кладет его значение в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get(HeaderAdminID)
		if adminID == "" {
			handlers.RespondUnauthorized(w, "заголовок X-Admin-ID обязателен")
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminID возвращает идентификатор администратора из контекста
func AdminID(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}
