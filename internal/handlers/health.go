package handlers

import (
	"mapify/internal/services"
	"mapify/internal/utils/helpers"
	"net/http"
)

type HealthHandler struct {
	stats *services.StatsService
}

func NewHealthHandler(stats *services.StatsService) *HealthHandler {
	return &HealthHandler{stats: stats}
}

// Status godoc
// @Summary Статус сервиса
// @Tags health
// @Produce json
// @Success 200 {object} models.SystemStats
// @Router / [get]
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.GetSystemStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, s)
}
