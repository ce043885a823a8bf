package create_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/GMS-SessionService/internal/integrations/memberservice"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/scheduling"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
)

// UseCase use case для записи на занятие
type UseCase struct {
	sessionRepo  SessionRepository
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	memberClient MemberServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		configRepo:   configRepo,
		studioClient: studioClient,
		memberClient: memberClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case записи на занятие
// Использует сериализуемую транзакцию для предотвращения гонки данных
// при одновременной записи на один тренажёр
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: member=%d, studio=%d, machine=%d, date=%s, time=%s",
		req.MemberID, req.StudioID, req.MachineID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем студию
	studio, err := uc.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioservice.ErrStudioNotFound) {
			uc.logger.Warn("CreateSession: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CreateSession: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 4. Получаем тренажёр и проверяем его состояние
	machine, err := uc.studioClient.GetMachine(ctx, req.StudioID, req.MachineID)
	if err != nil {
		if errors.Is(err, studioservice.ErrMachineNotFound) {
			uc.logger.Warn("CreateSession: machine id=%d not found in studio id=%d", req.MachineID, req.StudioID)
			return nil, ErrMachineNotFound
		}
		uc.logger.Error("CreateSession: failed to get machine id=%d: %v", req.MachineID, err)
		return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
	}

	if !machine.IsActive {
		uc.logger.Warn("CreateSession: machine id=%d is inactive", req.MachineID)
		return nil, ErrMachineInactive
	}

	// 5. Получаем участника и проверяем абонемент
	member, err := uc.memberClient.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberservice.ErrMemberNotFound) {
			uc.logger.Warn("CreateSession: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CreateSession: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if !member.HasActiveSubscription() {
		uc.logger.Warn("CreateSession: member id=%d has no active subscription (status=%s)",
			req.MemberID, member.SubscriptionStatus)
		return nil, ErrNoActiveSubscription
	}

	// Переменная для хранения результата
	var result *domain.Session

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.StudioID, ptr.Ptr(req.MachineID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateSession: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultScheduleConfig(req.StudioID)
			uc.logger.Info("CreateSession: using default config for studio=%d, machine=%d",
				req.StudioID, req.MachineID)
		} else {
			uc.logger.Info("CreateSession: using config id=%d", config.ID)
		}

		// Длительность по умолчанию - длительность слота из конфигурации
		durationMinutes := req.DurationMinutes
		if durationMinutes == 0 {
			durationMinutes = config.SlotDurationMinutes
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateSession: date validation failed: %v", err)
			return err
		}

		// 6.3. Определяем рабочие часы на указанную дату
		day := studio.WorkingHours.ForDate(req.Date)
		openTime, closeTime, isOpen := effectiveWorkingHours(day, uc.logger)
		if !isOpen {
			uc.logger.Warn("CreateSession: studio is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrStudioClosed
		}

		// 6.4. Проверяем, что занятие укладывается в рабочие часы
		if err := validateWithinWorkingHours(req.StartTime, durationMinutes, openTime, closeTime); err != nil {
			uc.logger.Warn("CreateSession: session %s+%dmin is outside working hours %s-%s",
				req.StartTime, durationMinutes, openTime, closeTime)
			return err
		}

		// 6.5. Валидация времени записи (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateSession: booking time validation failed: %v", err)
			return err
		}

		// 6.6. Получаем все актуальные занятия на эту дату и тренажёр с блокировкой (FOR UPDATE)
		filter := domain.StudioSessionsFilter{
			StudioID:         req.StudioID,
			MachineID:        ptr.Ptr(req.MachineID),
			StartDate:        ptr.Ptr(req.Date),
			EndDate:          ptr.Ptr(req.Date),
			IncludeCancelled: false, // Отменённые занятия интервал не занимают
		}

		sessions, err := uc.sessionRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 6.7. Проверяем пересечения с существующими занятиями
		start, err := req.StartTime.OnDate(req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve start time: %v", ErrInternal, err)
		}
		end := start.Add(time.Duration(durationMinutes) * time.Minute)

		conflicts := scheduling.SessionConflicts(start, end, sessions, nil)
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateSession: slot %s+%dmin on machine=%d conflicts with %d session(s)",
				req.StartTime, durationMinutes, req.MachineID, len(conflicts))
			return ErrTimeSlotTaken
		}

		uc.logger.Info("CreateSession: slot %s+%dmin on machine=%d is free",
			req.StartTime, durationMinutes, req.MachineID)

		// 6.8. Создаем занятие с денормализацией данных
		session := &domain.Session{
			MemberID:        req.MemberID,
			StudioID:        req.StudioID,
			MachineID:       req.MachineID,
			SessionDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusScheduled,
			// Денормализация данных тренажёра и участника
			MachineName: &machine.Name,
			MemberName:  &member.FullName,
			// Заметки
			Notes: req.Notes,
		}

		// 6.9. Сохраняем занятие
		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSession: successfully created session id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		MemberID:        result.MemberID,
		StudioID:        result.StudioID,
		MachineID:       result.MachineID,
		SessionDate:     result.SessionDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		MachineName:     result.MachineName,
		MemberName:      result.MemberName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
