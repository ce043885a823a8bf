package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/scheduling"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	sessionRepo  SessionRepository
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		configRepo:   configRepo,
		studioClient: studioClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
// Для каждого слота возвращается количество свободных тренажёров
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: studio=%d, machine=%v, date=%s",
		req.StudioID, req.MachineID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем студию
	studio, err := uc.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioservice.ErrStudioNotFound) {
			uc.logger.Warn("GetDaySlots: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 4. Определяем тренажёры, по которым считается доступность
	var machines []studioservice.Machine
	if req.MachineID != nil {
		machine, err := uc.studioClient.GetMachine(ctx, req.StudioID, *req.MachineID)
		if err != nil {
			if errors.Is(err, studioservice.ErrMachineNotFound) {
				uc.logger.Warn("GetDaySlots: machine id=%d not found in studio id=%d", *req.MachineID, req.StudioID)
				return nil, ErrMachineNotFound
			}
			uc.logger.Error("GetDaySlots: failed to get machine id=%d: %v", *req.MachineID, err)
			return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
		}
		machines = []studioservice.Machine{*machine}
	} else {
		all, err := uc.studioClient.GetMachines(ctx, req.StudioID)
		if err != nil {
			uc.logger.Error("GetDaySlots: failed to get machines for studio id=%d: %v", req.StudioID, err)
			return nil, fmt.Errorf("%w: failed to get machines: %v", ErrInternal, err)
		}
		machines = all
	}
	machines = activeMachines(machines)

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.StudioID, req.MachineID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDaySlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultScheduleConfig(req.StudioID)
		uc.logger.Info("GetDaySlots: using default config for studio=%d, machine=%v", req.StudioID, req.MachineID)
	} else {
		uc.logger.Info("GetDaySlots: using config id=%d", config.ID)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetDaySlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Генерируем сетку слотов на день
	// Fallback на дефолтные часы при некорректном расписании выполняется внутри
	day := dayHoursFromSchedule(studio.WorkingHours.ForDate(req.Date))
	slots := scheduling.GenerateSlots(req.Date, day, config.SlotDurationMinutes, uc.logger)

	// 8. Для сегодняшней даты отбрасываем слоты, нарушающие minBookingNoticeMinutes
	slots = filterSlotsByNotice(slots, req.Date, now, config.MinBookingNoticeMinutes)

	if len(slots) == 0 {
		uc.logger.Info("GetDaySlots: no slots for studio=%d on %s", req.StudioID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			StudioID:  req.StudioID,
			MachineID: req.MachineID,
			Slots:     []Slot{},
		}, nil
	}

	// 9. Получаем все актуальные занятия на эту дату
	filter := domain.StudioSessionsFilter{
		StudioID:         req.StudioID,
		MachineID:        req.MachineID,
		StartDate:        &req.Date,
		EndDate:          &req.Date,
		IncludeCancelled: false, // Отменённые занятия интервал не занимают
	}

	sessions, err := uc.sessionRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 10. Вычисляем доступность тренажёров для каждого слота
	result := calculateSlotAvailability(slots, machines, sessions)

	uc.logger.Info("GetDaySlots: generated %d slots for studio=%d, date=%s",
		len(result), req.StudioID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		StudioID:  req.StudioID,
		MachineID: req.MachineID,
		Slots:     result,
	}, nil
}
