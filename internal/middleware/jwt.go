package middleware

import (
	"mapify/internal/logger"
	"mapify/internal/reqctx"
	"mapify/internal/utils"
	"mapify/internal/utils/helpers"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type TokenValidator interface {
	ValidateToken(token string) (*utils.SessionClaims, error)
}

// JWTAuth пропускает запрос дальше только с валидным `Authorization: Bearer <token>`.
func JWTAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := reqctx.WithPrincipal(r.Context(), reqctx.Principal{
				UserID: claims.UserID,
				Name:   claims.Name,
				Email:  claims.Email,
			})

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
