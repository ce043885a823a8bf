package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	createSession "github.com/m04kA/GMS-SessionService/internal/usecase/create_session"
)

const (
	msgMissingUserID        = "отсутствует идентификатор пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты занятия, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgStudioNotFound       = "студия не найдена"
	msgMachineNotFound      = "тренажёр не найден"
	msgMachineInactive      = "тренажёр временно выведен из эксплуатации"
	msgMemberNotFound       = "участник не найден"
	msgNoActiveSubscription = "отсутствует активный абонемент"
	msgInvalidSessionDate   = "некорректная дата занятия"
	msgDateTooFar           = "дата занятия слишком далеко в будущем"
	msgStudioClosed         = "студия закрыта в выбранную дату"
	msgOutsideWorkingHours  = "занятие выходит за пределы рабочих часов студии"
	msgTimeSlotTaken        = "выбранный интервал на тренажёре уже занят"
	msgTooLateToBook        = "слишком поздно для записи на этот слот"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse request: %v", err)
		if req.SessionDate != "" && len(req.SessionDate) == len("2006-01-02") {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSession.ErrTimeSlotTaken):
			h.logger.Warn("POST /sessions - Time slot taken: member_id=%d, machine_id=%d", userID, req.MachineID)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotTaken)

		case errors.Is(err, createSession.ErrStudioNotFound):
			h.logger.Warn("POST /sessions - Studio not found: studio_id=%d", req.StudioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, createSession.ErrMachineNotFound):
			h.logger.Warn("POST /sessions - Machine not found: studio_id=%d, machine_id=%d", req.StudioID, req.MachineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, createSession.ErrMachineInactive):
			h.logger.Warn("POST /sessions - Machine inactive: studio_id=%d, machine_id=%d", req.StudioID, req.MachineID)
			handlers.RespondError(w, http.StatusConflict, msgMachineInactive)

		case errors.Is(err, createSession.ErrMemberNotFound):
			h.logger.Warn("POST /sessions - Member not found: member_id=%d", userID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createSession.ErrNoActiveSubscription):
			h.logger.Warn("POST /sessions - No active subscription: member_id=%d", userID)
			handlers.RespondForbidden(w, msgNoActiveSubscription)

		case errors.Is(err, createSession.ErrInvalidDate):
			h.logger.Warn("POST /sessions - Invalid session date: member_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgInvalidSessionDate)

		case errors.Is(err, createSession.ErrDateTooFarInFuture):
			h.logger.Warn("POST /sessions - Date too far in future: member_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createSession.ErrStudioClosed):
			h.logger.Warn("POST /sessions - Studio closed: studio_id=%d, date=%s", req.StudioID, req.SessionDate)
			handlers.RespondBadRequest(w, msgStudioClosed)

		case errors.Is(err, createSession.ErrOutsideWorkingHours):
			h.logger.Warn("POST /sessions - Outside working hours: studio_id=%d, start_time=%s", req.StudioID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createSession.ErrTooLateToBook):
			h.logger.Warn("POST /sessions - Too late to book: member_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: member_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions - Failed to create session: member_id=%d, studio_id=%d, error=%v",
				userID, req.StudioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, member_id=%d, machine_id=%d",
		result.ID, userID, req.MachineID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
