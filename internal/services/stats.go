package services

import (
	"context"
	"mapify/internal/models"
	"mapify/internal/repository"
)

type StatsService struct {
	users  repository.UserRepo
	places repository.PlaceRepo
}

func NewStatsService(users repository.UserRepo, places repository.PlaceRepo) *StatsService {
	return &StatsService{users: users, places: places}
}

func (s *StatsService) GetSystemStats(ctx context.Context) (*models.SystemStats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	places, err := s.places.CountPlaces(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SystemStats{Status: "ok", TotalUsers: users, TotalPlaces: places}, nil
}
