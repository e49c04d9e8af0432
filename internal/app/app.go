package app

import (
	"context"
	"fmt"
	"mapify/internal/config"
	"mapify/internal/db"
	"mapify/internal/handlers"
	"mapify/internal/logger"
	"mapify/internal/repository"
	"mapify/internal/routes"
	"mapify/internal/services"
	"mapify/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type App struct {
	Router *mux.Router
	Stats  *services.StatsService
	close  func()
}

func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	repos, closeFn, err := initRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, repos, services.NewEmailService(cfg), closeFn)
}

// NewWithRepositories собирает приложение поверх готовых репозиториев и почтового канала.
func NewWithRepositories(cfg *config.Config, repos *repository.Repositories, mailer services.EmailSender) (*App, error) {
	return newApp(cfg, repos, mailer, nil)
}

func newApp(cfg *config.Config, repos *repository.Repositories, mailer services.EmailSender, closeFn func()) (*App, error) {
	resetTTL, err := cfg.ResetTokenTTL()
	if err != nil {
		return nil, err
	}

	// Сервисы
	tokens := utils.NewTokenIssuer(cfg.SigningSecret())
	authService := services.NewAuthService(repos.Users, tokens)
	passwordService := services.NewPasswordService(repos.PasswordResets, authService, mailer, cfg.FrontendURL, resetTTL)
	placeService := services.NewPlaceService(repos.Places)
	statsService := services.NewStatsService(repos.Users, repos.Places)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	passwordHandler := handlers.NewPasswordHandler(passwordService)
	placeHandler := handlers.NewPlaceHandler(placeService)
	healthHandler := handlers.NewHealthHandler(statsService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, passwordHandler, placeHandler, healthHandler, authService)

	return &App{Router: router, Stats: statsService, close: closeFn}, nil
}

func initRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(), error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		logger.Log.Info("Подключение к Postgres", zap.String("dsn", cfg.GetDSNSafe()))
		pool, err := db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repository.NewPostgresRepositories(pool), pool.Close, nil
	default:
		logger.Log.Info("Хранилище в памяти: данные живут до перезапуска процесса")
		return repository.NewMemoryRepositories(), nil, nil
	}
}
