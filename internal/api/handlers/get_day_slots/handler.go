package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	getDaySlots "github.com/m04kA/GMS-SessionService/internal/usecase/get_day_slots"
)

const (
	msgInvalidStudioID = "некорректный идентификатор студии"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStudioNotFound  = "студия не найдена"
	msgMachineNotFound = "тренажёр не найден"
	msgInvalidReqDate  = "некорректная дата запроса"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidInput    = "некорректные данные запроса"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/day-slots?date=YYYY-MM-DD&machineId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/day-slots - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(studioID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /studios/{id}/day-slots - Invalid query params: studio_id=%d, error=%v", studioID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/day-slots - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getDaySlots.ErrMachineNotFound):
			h.logger.Warn("GET /studios/{id}/day-slots - Machine not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, getDaySlots.ErrInvalidDate):
			h.logger.Warn("GET /studios/{id}/day-slots - Invalid date: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgInvalidReqDate)

		case errors.Is(err, getDaySlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /studios/{id}/day-slots - Date too far in future: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/day-slots - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /studios/{id}/day-slots - Failed to get slots: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/day-slots - Slots retrieved: studio_id=%d, date=%s, count=%d",
		studioID, result.Date.Format("2006-01-02"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
