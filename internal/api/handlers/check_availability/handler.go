package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	checkAvailability "github.com/m04kA/GMS-SessionService/internal/usecase/check_availability"
)

const (
	msgInvalidStudioID    = "некорректный идентификатор студии"
	msgInvalidQueryParams = "некорректные параметры запроса, ожидаются machineId, date, startTime, durationMinutes"
	msgStudioNotFound     = "студия не найдена"
	msgMachineNotFound    = "тренажёр не найден"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/availability - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(studioID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /studios/{id}/availability - Invalid query params: studio_id=%d, error=%v", studioID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/availability - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, checkAvailability.ErrMachineNotFound):
			h.logger.Warn("GET /studios/{id}/availability - Machine not found: studio_id=%d, machine_id=%d",
				studioID, useCaseReq.MachineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/availability - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /studios/{id}/availability - Failed to check availability: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/availability - Availability checked: studio_id=%d, machine_id=%d, available=%t",
		studioID, useCaseReq.MachineID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
