package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plantcare/backend/api/transport"
	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/pkg/httpcontext"
	"github.com/plantcare/backend/repository"
	plantUC "github.com/plantcare/backend/usecase/plant"
)

type PlantHandler struct {
	baseHandler
	uc *plantUC.UseCase
}

func NewPlantHandler(uc *plantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PlantHandler {
	return &PlantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List plants
// @Tags plants
// @Router /api/v1/plants [get]
func (h *PlantHandler) GetPlants(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.PlantFilter{
		UserID: userID,
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	plants, err := h.uc.ListPlants(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, plants)
}

// @Summary Get plant
// @Tags plants
// @Router /api/v1/plants/{id} [get]
func (h *PlantHandler) GetPlant(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plant id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	plant, err := h.uc.GetPlant(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, plant)
}

// @Summary Create plant
// @Tags plants
// @Router /api/v1/plants [post]
func (h *PlantHandler) CreatePlant(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	plant, ok := h.parsePlant(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreatePlant(stdCtx, plant)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update plant
// @Tags plants
// @Router /api/v1/plants/{id} [put]
func (h *PlantHandler) UpdatePlant(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	plant, ok := h.parsePlant(ctx, userID)
	if !ok {
		return
	}

	if plant.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			plant.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdatePlant(stdCtx, plant)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete plant
// @Tags plants
// @Router /api/v1/plants/{id} [delete]
func (h *PlantHandler) DeletePlant(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plant id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeletePlant(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *PlantHandler) parsePlant(ctx *fasthttp.RequestCtx, userID string) (*domain.Plant, bool) {
	var req transport.PlantRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	var acquired *time.Time
	if req.AcquiredAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.AcquiredAt); err == nil {
			acquired = &parsed
		}
	}

	plant := &domain.Plant{
		ID:           req.ID,
		UserID:       userID,
		Name:         req.Name,
		Species:      req.Species,
		AcquiredAt:   acquired,
		WateringDays: req.WateringDays,
		Notes:        req.Notes,
	}

	return plant, true
}
