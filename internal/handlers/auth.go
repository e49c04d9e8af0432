package handlers

import (
	"mapify/internal/logger"
	"mapify/internal/models"
	"mapify/internal/services"
	"mapify/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {object} authResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req registerRequest
	if err := helpers.DecodeValidate(r.Body, &req); err != nil {
		log.Warn("Невалидный payload в Register", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "name, email and password are required", err.Error())
		return
	}

	res, err := h.authService.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, authResponse{User: res.User.Public(), Token: res.Token})
}

// Login godoc
// @Summary Авторизация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} authResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req loginRequest
	if err := helpers.DecodeValidate(r.Body, &req); err != nil {
		log.Warn("Невалидный payload в Login", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "email and password are required", err.Error())
		return
	}

	res, err := h.authService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, authResponse{User: res.User.Public(), Token: res.Token})
}
