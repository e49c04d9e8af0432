package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mapify/internal/logger"
	"mapify/internal/models"
	"mapify/internal/reqctx"
	"mapify/internal/services"
	"mapify/internal/utils/helpers"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PlaceHandler struct {
	placeService *services.PlaceService
}

func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

type createPlaceRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Type        *string  `json:"type"`
	Address     *string  `json:"address"`
	Lat         *float64 `json:"lat" validate:"required"`
	Lon         *float64 `json:"lon" validate:"required"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

func (req createPlaceRequest) input() models.PlaceInput {
	return models.PlaceInput{
		Name:        req.Name,
		Type:        req.Type,
		Address:     req.Address,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// ListPlaces godoc
// @Summary Список всех мест
// @Tags places
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Place
// @Failure 401 {object} helpers.ErrorResponse
// @Router /places [get]
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.placeService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, places)
}

// CreatePlace godoc
// @Summary Создать место
// @Tags places
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createPlaceRequest true "Данные места"
// @Success 201 {object} models.Place
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /places [post]
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	principal, ok := reqctx.GetPrincipal(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createPlaceRequest
	if err := helpers.DecodeValidate(r.Body, &req); err != nil {
		log.Warn("Невалидный payload в CreatePlace", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "name, lat and lon are required", err.Error())
		return
	}

	place, err := h.placeService.Create(r.Context(), req.input(), principal.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, place)
}

// UpdatePlace godoc
// @Summary Обновить место (частично)
// @Description Переданные поля заменяют существующие, остальные не меняются.
// @Tags places
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID места"
// @Param input body models.PlaceInput false "Изменяемые поля"
// @Success 200 {object} models.Place
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Router /places/{id} [put]
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	if _, err := h.placeService.Get(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// пустое тело — обновление без изменений
	var in models.PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON в UpdatePlace", zap.Error(err))
		helpers.ErrorDetails(w, http.StatusBadRequest, "invalid JSON", err.Error())
		return
	}

	place, err := h.placeService.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, place)
}

// DeletePlace godoc
// @Summary Удалить место
// @Tags places
// @Security ApiKeyAuth
// @Param id path int true "ID места"
// @Success 204
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Router /places/{id} [delete]
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	if err := h.placeService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func placeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "place not found")
		return 0, false
	}
	return id, true
}
