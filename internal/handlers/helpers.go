package handlers

import (
	"errors"
	"mapify/internal/logger"
	"mapify/internal/services"
	"mapify/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

// writeServiceError переводит ошибки сервисов в HTTP-ответ. Неизвестные ошибки
// логируются и отдаются как 500 без деталей.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.ErrorDetails(w, http.StatusBadRequest, "validation error", err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		helpers.Error(w, http.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrPlaceNotFound):
		helpers.Error(w, http.StatusNotFound, "place not found")
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		helpers.Error(w, http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, services.ErrMailNotConfigured):
		helpers.Error(w, http.StatusInternalServerError, "password reset is unavailable")
	case errors.Is(err, services.ErrMailDelivery):
		helpers.Error(w, http.StatusInternalServerError, "could not send reset email")
	default:
		logger.WithCtx(r.Context()).Error("Необработанная ошибка", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
