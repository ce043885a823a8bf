package update_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig"
)

const (
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidStudioID    = "некорректный идентификатор студии"
	msgInvalidConfigID    = "некорректный идентификатор конфигурации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStudioNotFound     = "студия не найдена"
	msgMachineNotFound    = "тренажёр не найден"
	msgConfigNotFound     = "конфигурация не найдена"
	msgAccessDenied       = "доступ запрещён"
	msgInvalidInput       = "некорректные параметры конфигурации"
)

type Handler struct {
	service ScheduleConfigService
	logger  Logger
}

func NewHandler(service ScheduleConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/studios/{studioId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /studios/{id}/schedule-config - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule-config - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	var req UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(studioID, userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("PUT /studios/{id}/schedule-config - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, scheduleconfig.ErrMachineNotFound):
			h.logger.Warn("PUT /studios/{id}/schedule-config - Machine not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, scheduleconfig.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/schedule-config - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleconfig.ErrInvalidInput):
			h.logger.Warn("PUT /studios/{id}/schedule-config - Invalid config data: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /studios/{id}/schedule-config - Failed to upsert config: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/schedule-config - Config upserted: studio_id=%d, config_id=%d, user_id=%d",
		studioID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/studios/{studioId}/schedule-config/{configId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Invalid config ID: %s", vars["configId"])
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	if err := h.service.Delete(r.Context(), configID, studioID, userID); err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, scheduleconfig.ErrAccessDenied):
			h.logger.Warn("DELETE /studios/{id}/schedule-config/{configId} - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /studios/{id}/schedule-config/{configId} - Failed to delete config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /studios/{id}/schedule-config/{configId} - Config deleted: config_id=%d, studio_id=%d, user_id=%d",
		configID, studioID, userID)
	w.WriteHeader(http.StatusNoContent)
}
