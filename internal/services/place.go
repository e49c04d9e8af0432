package services

import (
	"context"
	"errors"
	"fmt"
	"mapify/internal/logger"
	"mapify/internal/models"
	"mapify/internal/repository"
	"strings"
	"time"

	"go.uber.org/zap"
)

type PlaceService struct {
	repo repository.PlaceRepo
	now  func() time.Time
}

func NewPlaceService(repo repository.PlaceRepo) *PlaceService {
	return &PlaceService{repo: repo, now: time.Now}
}

func (s *PlaceService) List(ctx context.Context) ([]*models.Place, error) {
	return s.repo.ListPlaces(ctx)
}

func (s *PlaceService) Get(ctx context.Context, id int64) (*models.Place, error) {
	place, err := s.repo.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) Create(ctx context.Context, in models.PlaceInput, ownerID int64) (*models.Place, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Lat == nil || in.Lon == nil {
		return nil, fmt.Errorf("%w: name, lat and lon are required", ErrValidation)
	}

	place := &models.Place{
		Name:        *in.Name,
		Type:        nonEmpty(in.Type),
		Address:     nonEmpty(in.Address),
		Lat:         *in.Lat,
		Lon:         *in.Lon,
		Description: nonEmpty(in.Description),
		ImageURL:    nonEmpty(in.ImageURL),
		CreatedAt:   s.now().UTC(),
		CreatedBy:   ownerID,
	}

	if err := s.repo.CreatePlace(ctx, place); err != nil {
		logger.WithCtx(ctx).Error("Сервис: ошибка создания места", zap.Error(err))
		return nil, err
	}

	logger.WithCtx(ctx).Info("Сервис: место создано", zap.Int64("place_id", place.ID), zap.Int64("owner_id", ownerID))
	return place, nil
}

// Update не проверяет владельца: любой аутентифицированный пользователь может править любое место.
func (s *PlaceService) Update(ctx context.Context, id int64, in models.PlaceInput) (*models.Place, error) {
	place, err := s.repo.UpdatePlace(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		logger.WithCtx(ctx).Error("Сервис: ошибка обновления места", zap.Int64("place_id", id), zap.Error(err))
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePlace(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlaceNotFound
		}
		logger.WithCtx(ctx).Error("Сервис: ошибка удаления места", zap.Int64("place_id", id), zap.Error(err))
		return err
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
