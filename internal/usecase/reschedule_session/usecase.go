package reschedule_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	sessionRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/session"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/scheduling"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
)

// UseCase use case для переноса занятия на другое время
type UseCase struct {
	sessionRepo  SessionRepository
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		configRepo:   configRepo,
		studioClient: studioClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса занятия
// Использует сериализуемую транзакцию для предотвращения гонки данных
// При проверке пересечений занятие исключается из рассмотрения,
// чтобы не конфликтовать с самим собой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleSession: session=%d, user=%d, date=%s, time=%s",
		req.SessionID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем занятие
	session, err := uc.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("RescheduleSession: session id=%d not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("RescheduleSession: repository error for session id=%d: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 4. Проверяем, можно ли перенести занятие
	if !session.CanBeRescheduled() {
		uc.logger.Warn("RescheduleSession: session id=%d cannot be rescheduled, status=%s",
			req.SessionID, session.Status)
		return nil, ErrCannotReschedule
	}

	// 5. Получаем студию (нужна для рабочих часов и проверки прав)
	studio, err := uc.studioClient.GetStudio(ctx, session.StudioID)
	if err != nil {
		if errors.Is(err, studioservice.ErrStudioNotFound) {
			uc.logger.Warn("RescheduleSession: studio id=%d not found", session.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("RescheduleSession: failed to get studio id=%d: %v", session.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 6. Проверяем права: владелец занятия либо менеджер студии
	if session.MemberID != req.UserID && !isManager(studio, req.UserID) {
		uc.logger.Warn("RescheduleSession: access denied for user=%d to session id=%d", req.UserID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// Переменная для хранения результата
	var result *domain.Session

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, session.StudioID, ptr.Ptr(session.MachineID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleSession: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultScheduleConfig(session.StudioID)
			uc.logger.Info("RescheduleSession: using default config for studio=%d, machine=%d",
				session.StudioID, session.MachineID)
		} else {
			uc.logger.Info("RescheduleSession: using config id=%d", config.ID)
		}

		// Длительность по умолчанию - прежняя длительность занятия
		durationMinutes := req.DurationMinutes
		if durationMinutes == 0 {
			durationMinutes = session.DurationMinutes
		}

		// 7.2. Валидация новой даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleSession: date validation failed: %v", err)
			return err
		}

		// 7.3. Определяем рабочие часы на новую дату
		day := studio.WorkingHours.ForDate(req.Date)
		openTime, closeTime, isOpen := effectiveWorkingHours(day, uc.logger)
		if !isOpen {
			uc.logger.Warn("RescheduleSession: studio is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrStudioClosed
		}

		// 7.4. Проверяем, что занятие укладывается в рабочие часы
		if err := validateWithinWorkingHours(req.StartTime, durationMinutes, openTime, closeTime); err != nil {
			uc.logger.Warn("RescheduleSession: session %s+%dmin is outside working hours %s-%s",
				req.StartTime, durationMinutes, openTime, closeTime)
			return err
		}

		// 7.5. Валидация времени записи (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleSession: booking time validation failed: %v", err)
			return err
		}

		// 7.6. Получаем все актуальные занятия на новую дату и тренажёр с блокировкой (FOR UPDATE)
		filter := domain.StudioSessionsFilter{
			StudioID:         session.StudioID,
			MachineID:        ptr.Ptr(session.MachineID),
			StartDate:        ptr.Ptr(req.Date),
			EndDate:          ptr.Ptr(req.Date),
			IncludeCancelled: false, // Отменённые занятия интервал не занимают
		}

		sessions, err := uc.sessionRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleSession: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 7.7. Проверяем пересечения, исключая переносимое занятие
		start, err := req.StartTime.OnDate(req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve start time: %v", ErrInternal, err)
		}
		end := start.Add(time.Duration(durationMinutes) * time.Minute)

		conflicts := scheduling.SessionConflicts(start, end, sessions, ptr.Ptr(session.ID))
		if len(conflicts) > 0 {
			uc.logger.Warn("RescheduleSession: slot %s+%dmin on machine=%d conflicts with %d session(s)",
				req.StartTime, durationMinutes, session.MachineID, len(conflicts))
			return ErrTimeSlotTaken
		}

		// 7.8. Переносим занятие
		if err := uc.sessionRepo.Reschedule(txCtx, session.ID, req.Date, req.StartTime, durationMinutes); err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			uc.logger.Error("RescheduleSession: failed to reschedule session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to reschedule session: %v", ErrInternal, err)
		}

		// 7.9. Перечитываем занятие с обновленными полями
		updated, err := uc.sessionRepo.GetByID(txCtx, session.ID)
		if err != nil {
			uc.logger.Error("RescheduleSession: failed to reload session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to reload session: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleSession: successfully rescheduled session id=%d to %s %s",
		result.ID, result.SessionDate.Format(domain.DateFormat), result.StartTime)

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

// isManager проверяет, что пользователь является менеджером студии
func isManager(studio *studioservice.Studio, userID int64) bool {
	for _, managerID := range studio.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}
