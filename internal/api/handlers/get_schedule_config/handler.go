package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig"
	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig/models"
)

const (
	msgMissingUserID    = "отсутствует идентификатор пользователя"
	msgInvalidStudioID  = "некорректный идентификатор студии"
	msgInvalidMachineID = "некорректный идентификатор тренажёра"
	msgStudioNotFound   = "студия не найдена"
	msgAccessDenied     = "доступ запрещён"
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

// Handle GET /api/v1/studios/{studioId}/schedule-config?machineId=N
//
// Публичный endpoint: возвращает эффективную конфигурацию расписания
// (уровня тренажёра, уровня студии или значения по умолчанию).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/schedule-config - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	req := &models.GetConfigRequest{StudioID: studioID}

	if machineIDStr := r.URL.Query().Get("machineId"); machineIDStr != "" {
		machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /studios/{id}/schedule-config - Invalid machine ID: %s", machineIDStr)
			handlers.RespondBadRequest(w, msgInvalidMachineID)
			return
		}
		req.MachineID = &machineID
	}

	result, err := h.service.GetEffective(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/schedule-config - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		default:
			h.logger.Error("GET /studios/{id}/schedule-config - Failed to get config: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/schedule-config - Config retrieved: studio_id=%d, is_default=%t",
		studioID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/studios/{studioId}/schedule-configs
//
// Защищённый endpoint: возвращает все конфигурации студии, доступен только менеджерам.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/schedule-configs - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/schedule-configs - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	result, err := h.service.GetAllByStudio(r.Context(), studioID, userID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/schedule-configs - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, scheduleconfig.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/schedule-configs - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /studios/{id}/schedule-configs - Failed to get configs: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/schedule-configs - Configs retrieved: studio_id=%d, count=%d",
		studioID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
