package services

import (
	"context"
	"errors"
	"fmt"
	"mapify/internal/logger"
	"mapify/internal/models"
	"mapify/internal/repository"
	"mapify/internal/utils"
	"strings"

	"go.uber.org/zap"
)

type AuthService struct {
	repo   repository.UserRepo
	tokens *utils.TokenIssuer
}

func NewAuthService(repo repository.UserRepo, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// AuthResult — пользователь и выданный ему access-токен.
type AuthResult struct {
	User  *models.User
	Token string
}

func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	log := logger.WithCtx(ctx)
	log.Info("Регистрация пользователя (service)", zap.String("email", email))

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			log.Warn("Email уже зарегистрирован", zap.String("email", email))
			return nil, ErrEmailTaken
		}
		log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		log.Error("Ошибка генерации access-токена", zap.Error(err))
		return nil, err
	}

	log.Info("Пользователь зарегистрирован (service)", zap.Int64("user_id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	log := logger.WithCtx(ctx)
	log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn("Пользователь не найден (service)", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		log.Warn("Неверный пароль (service)", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		log.Error("Ошибка генерации access-токена", zap.Error(err))
		return nil, err
	}

	log.Info("Вход выполнен (service)", zap.Int64("user_id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// FindByEmail ищет пользователя без учёта регистра и пробелов по краям.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) VerifyPassword(user *models.User, plaintext string) bool {
	return utils.CheckPasswordHash(plaintext, user.PasswordHash)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка генерации хеша пароля", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ValidateToken проверяет access-токен и возвращает его claims.
func (s *AuthService) ValidateToken(token string) (*utils.SessionClaims, error) {
	return s.tokens.ParseToken(token)
}
