package services

import (
	"context"
	"errors"
	"fmt"
	"mapify/internal/logger"
	"mapify/internal/models"
	"mapify/internal/repository"
	"mapify/internal/utils"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultResetTTL = 30 * time.Minute

type EmailSender interface {
	Configured() bool
	SendPasswordReset(ctx context.Context, to, resetLink string, ttl time.Duration) error
}

// credentialStore — то, что нужно сбросу пароля от хранилища учётных записей.
type credentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, newPassword string) error
}

type PasswordService struct {
	repo        repository.PasswordResetRepo
	users       credentialStore
	emailSender EmailSender
	appURL      string // фронтовый URL, ссылка вида /reset-password?token=...
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewPasswordService(repo repository.PasswordResetRepo, users credentialStore, emailSender EmailSender, appURL string, ttl time.Duration) *PasswordService {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &PasswordService{
		repo:        repo,
		users:       users,
		emailSender: emailSender,
		appURL:      strings.TrimRight(appURL, "/"),
		tokenTTL:    ttl,
		now:         time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *PasswordService) WithClock(now func() time.Time) *PasswordService {
	s.now = now
	return s
}

// RequestReset выдаёт одноразовый токен и отправляет письмо со ссылкой.
// Для неизвестного e-mail возвращает nil, чтобы не раскрывать наличие аккаунта.
// Ошибки конфигурации и доставки почты возвращаются вызывающему.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	log := logger.WithCtx(ctx)

	if s.emailSender == nil || !s.emailSender.Configured() {
		log.Error("Запрос сброса пароля при ненастроенном SMTP")
		return ErrMailNotConfigured
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("Сброс пароля для неизвестного email")
			return nil
		}
		log.Error("Ошибка поиска пользователя при сбросе пароля", zap.Error(err))
		return err
	}

	token, err := utils.NewResetToken()
	if err != nil {
		log.Error("Ошибка генерации токена для сброса", zap.Error(err), zap.Int64("user_id", user.ID))
		return err
	}

	now := s.now()
	rec := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: utils.HashResetToken(token),
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.repo.Replace(ctx, rec); err != nil {
		log.Error("Ошибка сохранения токена сброса пароля", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, url.QueryEscape(token))
	if err := s.emailSender.SendPasswordReset(ctx, user.Email, resetLink, s.tokenTTL); err != nil {
		log.Error("Ошибка отправки письма для сброса пароля", zap.Int64("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	log.Info("Письмо со ссылкой на сброс пароля отправлено",
		zap.Int64("user_id", user.ID),
		zap.Time("expires_at", rec.ExpiresAt),
	)
	return nil
}

// ResetPassword погашает токен и устанавливает новый пароль.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.WithCtx(ctx)

	if strings.TrimSpace(token) == "" || newPassword == "" {
		return fmt.Errorf("%w: token and password are required", ErrValidation)
	}

	rec, err := s.repo.Take(ctx, utils.HashResetToken(token), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Неверный или просроченный токен при сбросе пароля")
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if err := s.users.UpdatePassword(ctx, rec.UserID, newPassword); err != nil {
		log.Error("Ошибка обновления пароля пользователя", zap.Int64("user_id", rec.UserID), zap.Error(err))
		return err
	}

	log.Info("Пароль успешно сброшен", zap.Int64("user_id", rec.UserID))
	return nil
}
