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
	readingUC "github.com/plantcare/backend/usecase/reading"
)

type ReadingHandler struct {
	baseHandler
	uc *readingUC.UseCase
}

func NewReadingHandler(uc *readingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReadingHandler {
	return &ReadingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Record an environment reading
// @Tags readings
// @Router /api/v1/plants/{id}/readings [post]
func (h *ReadingHandler) RecordReading(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	plantID, _ := ctx.UserValue("id").(string)
	if plantID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plant id", nil))
		return
	}

	var req transport.ReadingRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var recordedAt time.Time
	if req.RecordedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.RecordedAt); err == nil {
			recordedAt = parsed
		}
	}

	reading := &domain.Reading{
		PlantID:     plantID,
		UserID:      userID,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Light:       req.Light,
		RecordedAt:  recordedAt,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stored, err := h.uc.Record(stdCtx, reading)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, stored)
}

// @Summary List a plant's environment readings
// @Tags readings
// @Router /api/v1/plants/{id}/readings [get]
func (h *ReadingHandler) GetReadings(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	plantID, _ := ctx.UserValue("id").(string)
	if plantID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plant id", nil))
		return
	}

	filter := repository.ReadingFilter{
		PlantID: plantID,
		Limit:   parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:  parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	readings, err := h.uc.ListReadings(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, readings)
}
