package main

import (
	"context"
	_ "mapify/docs"
	"mapify/internal/app"
	"mapify/internal/config"
	"mapify/internal/logger"
	"mapify/internal/middleware"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Mapify API
// @version 1.0
// @description Регистрация, вход (JWT), сброс пароля и пользовательские места на карте.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("не удалось загрузить конфиг: " + err.Error())
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Fatal("Невалидный конфиг", zap.Error(err))
	}
	for _, w := range warnings {
		logger.Log.Warn("Конфиг", zap.String("warning", w))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	application, err := app.InitApp(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}
	defer application.Close()

	prometheus.MustRegister(middleware.NewStoreCollector(application.Stats))

	router := application.Router
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	})

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
