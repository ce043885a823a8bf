package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/scheduling"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
)

// UseCase use case для проверки доступности интервала на тренажёре
//
// Проверка носит информационный характер: окончательное решение о занятости
// интервала принимается в момент записи внутри сериализуемой транзакции
type UseCase struct {
	sessionRepo  SessionRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: studio=%d, machine=%d, date=%s, time=%s, duration=%d, exclude=%v",
		req.StudioID, req.MachineID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.ExcludeSessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование студии и тренажёра
	if _, err := uc.studioClient.GetStudio(ctx, req.StudioID); err != nil {
		if errors.Is(err, studioservice.ErrStudioNotFound) {
			uc.logger.Warn("CheckAvailability: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	if _, err := uc.studioClient.GetMachine(ctx, req.StudioID, req.MachineID); err != nil {
		if errors.Is(err, studioservice.ErrMachineNotFound) {
			uc.logger.Warn("CheckAvailability: machine id=%d not found in studio id=%d", req.MachineID, req.StudioID)
			return nil, ErrMachineNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get machine id=%d: %v", req.MachineID, err)
		return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
	}

	// 3. Получаем все актуальные занятия на эту дату и тренажёр
	filter := domain.StudioSessionsFilter{
		StudioID:         req.StudioID,
		MachineID:        ptr.Ptr(req.MachineID),
		StartDate:        &req.Date,
		EndDate:          &req.Date,
		IncludeCancelled: false, // Отменённые занятия интервал не занимают
	}

	sessions, err := uc.sessionRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 4. Вычисляем границы запрошенного интервала
	start, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve start time: %v", ErrInternal, err)
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 5. Проверяем пересечения
	result := scheduling.CheckAvailability(start, end, sessions, req.ExcludeSessionID)

	resp := &Response{
		Available: result.Available,
		Conflicts: make([]Conflict, len(result.Conflicts)),
	}

	for i, conflict := range result.Conflicts {
		resp.Conflicts[i] = Conflict{
			SessionID:       conflict.ID,
			StartTime:       conflict.StartTime,
			DurationMinutes: conflict.DurationMinutes,
			Status:          string(conflict.Status),
		}
	}

	if result.Available {
		resp.Message = "interval is available"
	} else {
		resp.Message = fmt.Sprintf("interval overlaps with %d session(s)", len(result.Conflicts))
	}

	uc.logger.Info("CheckAvailability: studio=%d, machine=%d, date=%s, time=%s: available=%t, conflicts=%d",
		req.StudioID, req.MachineID, req.Date.Format(domain.DateFormat), req.StartTime,
		resp.Available, len(resp.Conflicts))

	return resp, nil
}
