package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plantcare/backend/api/transport"
	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/pkg/httpcontext"
	"github.com/plantcare/backend/repository"
	careUC "github.com/plantcare/backend/usecase/care"
)

type CareHandler struct {
	baseHandler
	uc *careUC.UseCase
}

func NewCareHandler(uc *careUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CareHandler {
	return &CareHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Ensure and list a plant's pending care tasks
// @Tags care
// @Router /api/v1/plants/{id}/tasks [get]
func (h *CareHandler) GetPlantTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	plantID, _ := ctx.UserValue("id").(string)
	if plantID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plant id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.EnsureTasks(stdCtx, plantID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks, h.uc.Now()))
}

// @Summary Complete a pending care task
// @Tags care
// @Router /api/v1/tasks/{id}/complete [post]
func (h *CareHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	h.reconcile(ctx, h.uc.Complete)
}

// @Summary Skip a pending care task
// @Tags care
// @Router /api/v1/tasks/{id}/skip [post]
func (h *CareHandler) SkipTask(ctx *fasthttp.RequestCtx) {
	h.reconcile(ctx, h.uc.Skip)
}

// @Summary Reschedule a pending care task
// @Tags care
// @Router /api/v1/tasks/{id}/reschedule [post]
func (h *CareHandler) RescheduleTask(ctx *fasthttp.RequestCtx) {
	var req transport.RescheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.DueDate == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid due date", nil))
		return
	}

	h.reconcile(ctx, func(stdCtx context.Context, taskID string) (*careUC.ReconcileResult, error) {
		return h.uc.Reschedule(stdCtx, taskID, dueDate)
	})
}

// @Summary List resolved care tasks (care history)
// @Tags care
// @Router /api/v1/history [get]
func (h *CareHandler) GetHistory(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.TaskFilter{
		UserID: userID,
		Type:   domain.CareType(string(ctx.QueryArgs().Peek("type"))),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "unknown care type", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.History(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

func (h *CareHandler) reconcile(ctx *fasthttp.RequestCtx, op func(context.Context, string) (*careUC.ReconcileResult, error)) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	taskID, _ := ctx.UserValue("id").(string)
	if taskID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := op(stdCtx, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"task":    result.Task,
		"pending": transport.NewTaskViews(result.Pending, h.uc.Now()),
	})
}
