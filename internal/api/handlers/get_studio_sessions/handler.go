package get_studio_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	"github.com/m04kA/GMS-SessionService/internal/service/sessions"
)

const (
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidStudioID    = "некорректный идентификатор студии"
	msgInvalidQueryParams = "некорректные параметры фильтрации"
	msgStudioNotFound     = "студия не найдена"
	msgAccessDenied       = "доступ запрещён"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/sessions - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/sessions - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	req, err := ToServiceRequest(studioID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /studios/{id}/sessions - Invalid query params: studio_id=%d, error=%v", studioID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.GetStudioSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/sessions - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/sessions - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/sessions - Invalid filter: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /studios/{id}/sessions - Failed to get sessions: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/sessions - Sessions retrieved: studio_id=%d, user_id=%d, count=%d",
		studioID, userID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
