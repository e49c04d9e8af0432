package repository

import (
	"context"
	"errors"
	"time"

	"mapify/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepo — хранилище учётных записей. Email уникален без учёта регистра,
// проверка и вставка в CreateUser выполняются атомарно.
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)
}

// PasswordResetRepo — не более одного живого токена на пользователя.
type PasswordResetRepo interface {
	// Replace удаляет прежний токен пользователя и сохраняет новый.
	Replace(ctx context.Context, token *models.PasswordResetToken) error
	// Take находит токен по хешу и удаляет его. Просроченные не выдаются.
	Take(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error)
}

type PlaceRepo interface {
	ListPlaces(ctx context.Context) ([]*models.Place, error)
	GetPlace(ctx context.Context, id int64) (*models.Place, error)
	CreatePlace(ctx context.Context, place *models.Place) error
	UpdatePlace(ctx context.Context, id int64, in models.PlaceInput) (*models.Place, error)
	DeletePlace(ctx context.Context, id int64) error
	CountPlaces(ctx context.Context) (int, error)
}

type Repositories struct {
	Users          UserRepo
	PasswordResets PasswordResetRepo
	Places         PlaceRepo
}
