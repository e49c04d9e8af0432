package repository

import (
	"context"
	"errors"
	"mapify/internal/logger"
	"mapify/internal/models"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Replace(ctx context.Context, token *models.PasswordResetToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()`,
		token.UserID, token.TokenHash, token.ExpiresAt,
	)
	if err != nil {
		logger.Log.Error("Replace reset token failed", zap.Error(err), zap.Int64("user_id", token.UserID))
	}
	return err
}

func (r *PasswordResetRepository) Take(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	row := r.db.QueryRow(ctx, `
		DELETE FROM password_reset_tokens
		WHERE token_hash = $1
		  AND expires_at >= $2
		RETURNING user_id, token_hash, expires_at, created_at
	`, tokenHash, now)

	var t models.PasswordResetToken
	if err := row.Scan(&t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
