package handlers

import (
	"net/http"

	"mapify/internal/logger"
	"mapify/internal/services"
	"mapify/internal/utils/helpers"

	"go.uber.org/zap"
)

const forgotPasswordMessage = "If the email is registered, a reset link has been sent."

type PasswordHandler struct {
	svc *services.PasswordService
}

func NewPasswordHandler(svc *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

type forgotReq struct {
	Email string `json:"email" validate:"required"`
}

// Forgot godoc
// @Summary Запрос восстановления пароля
// @Description Отправляет письмо со ссылкой для сброса пароля. Ответ одинаковый, даже если e-mail не найден.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotReq true "Email пользователя"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotReq
	if err := helpers.DecodeValidate(r.Body, &req); err != nil {
		log.Warn("Невалидный payload в Forgot", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "email is required", err.Error())
		return
	}

	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, helpers.MessageResponse{Message: forgotPasswordMessage})
}

type resetReq struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Reset godoc
// @Summary Сброс пароля по токену
// @Description Устанавливает новый пароль по токену из письма. Токен одноразовый.
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetReq true "Токен и новый пароль"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /auth/reset-password [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req resetReq
	if err := helpers.DecodeValidate(r.Body, &req); err != nil {
		log.Warn("Невалидный payload в Reset", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "token and password are required", err.Error())
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Password has been reset."})
}
