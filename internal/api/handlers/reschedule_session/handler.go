package reschedule_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	rescheduleSession "github.com/m04kA/GMS-SessionService/internal/usecase/reschedule_session"
)

const (
	msgMissingUserID       = "отсутствует идентификатор пользователя"
	msgInvalidSessionID    = "некорректный идентификатор занятия"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgSessionNotFound     = "занятие не найдено"
	msgStudioNotFound      = "студия не найдена"
	msgAccessDenied        = "доступ запрещён"
	msgCannotReschedule    = "занятие нельзя перенести в текущем статусе"
	msgInvalidSessionDate  = "некорректная дата занятия"
	msgDateTooFar          = "дата занятия слишком далеко в будущем"
	msgStudioClosed        = "студия закрыта в выбранную дату"
	msgOutsideWorkingHours = "занятие выходит за пределы рабочих часов студии"
	msgTimeSlotTaken       = "выбранный интервал на тренажёре уже занят"
	msgTooLateToBook       = "слишком поздно для переноса на этот слот"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleSessionUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid session ID: %s", vars["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req RescheduleSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID, userID)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleSession.ErrTimeSlotTaken):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Time slot taken: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotTaken)

		case errors.Is(err, rescheduleSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, rescheduleSession.ErrStudioNotFound):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Studio not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, rescheduleSession.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Access denied: session_id=%d, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleSession.ErrCannotReschedule):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Cannot reschedule: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleSession.ErrInvalidDate):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid session date: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgInvalidSessionDate)

		case errors.Is(err, rescheduleSession.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Date too far in future: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleSession.ErrStudioClosed):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Studio closed: session_id=%d, date=%s", sessionID, req.SessionDate)
			handlers.RespondBadRequest(w, msgStudioClosed)

		case errors.Is(err, rescheduleSession.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Outside working hours: session_id=%d, start_time=%s",
				sessionID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleSession.ErrTooLateToBook):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Too late to book: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleSession.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /sessions/{id}/reschedule - Failed to reschedule: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/reschedule - Session rescheduled: session_id=%d, user_id=%d, new_date=%s",
		sessionID, userID, req.SessionDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
