package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	studioClient "github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:   configRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// GetEffective получает действующую конфигурацию для пары (студия, тренажёр)
// Публичный метод - используется при генерации слотов и создании занятий
// Приоритет: machine > studio > значения по умолчанию
// Отсутствие настроек в БД не является ошибкой - возвращаются дефолты
func (s *Service) GetEffective(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for studio=%d, machine=%v", req.StudioID, req.MachineID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.StudioID, req.MachineID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetEffective: no config for studio=%d, machine=%v, using defaults", req.StudioID, req.MachineID)
			return models.FromDefaultConfig(req.StudioID, req.MachineID), nil
		}
		s.logger.Error("GetEffective: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEffective: successfully fetched config id=%d (level: %s)",
		config.ID, s.getConfigLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetAllByStudio получает все конфигурации студии
// Доступно только менеджерам студии
func (s *Service) GetAllByStudio(ctx context.Context, studioID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByStudio: fetching configs for studio=%d by user=%d", studioID, userID)

	// Получаем студию для проверки прав доступа
	studio, err := s.getStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, userID) {
		s.logger.Warn("GetAllByStudio: user=%d is not a manager of studio=%d", userID, studioID)
		return nil, ErrAccessDenied
	}

	configs, err := s.configRepo.GetAllByStudio(ctx, studioID)
	if err != nil {
		s.logger.Error("GetAllByStudio: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: GetAllByStudio - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByStudio: successfully fetched %d configs for studio=%d", len(configs), studioID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию для пары (студия, тренажёр)
// Доступно только менеджерам студии
// Если указан machineID, проверяется его принадлежность студии
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for studio=%d, machine=%v by user=%d",
		req.StudioID, req.MachineID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req.SlotDurationMinutes, req.AdvanceBookingDays, req.MinBookingNoticeMinutes); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студию для проверки прав доступа
	studio, err := s.getStudio(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, req.UserID) {
		s.logger.Warn("Upsert: user=%d is not a manager of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 4. Если указан machineID, проверяем его существование в студии
	if req.MachineID != nil {
		if _, err := s.studioClient.GetMachine(ctx, req.StudioID, *req.MachineID); err != nil {
			if errors.Is(err, studioClient.ErrMachineNotFound) {
				s.logger.Warn("Upsert: machine id=%d not found in studio=%d", *req.MachineID, req.StudioID)
				return nil, ErrMachineNotFound
			}
			s.logger.Error("Upsert: failed to get machine id=%d: %v", *req.MachineID, err)
			return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
		}
	}

	// 5. Создаем или обновляем конфигурацию
	saved, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Upsert: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d for studio=%d", saved.ID, req.StudioID)
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет конфигурацию по ID
// Доступно только менеджерам студии
// После удаления для пары (студия, тренажёр) начинает действовать
// конфигурация уровнем выше либо значения по умолчанию
func (s *Service) Delete(ctx context.Context, id int64, studioID int64, userID int64) error {
	s.logger.Info("Delete: deleting config id=%d for studio=%d by user=%d", id, studioID, userID)

	// Получаем студию для проверки прав доступа
	studio, err := s.getStudio(ctx, studioID)
	if err != nil {
		return err
	}

	// Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, userID) {
		s.logger.Warn("Delete: user=%d is not a manager of studio=%d", userID, studioID)
		return ErrAccessDenied
	}

	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", id)
	return nil
}

// Вспомогательные методы

// getStudio получает студию через StudioService
func (s *Service) getStudio(ctx context.Context, studioID int64) (*studioClient.Studio, error) {
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("getStudio: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("getStudio: failed to get studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}
	return studio, nil
}

// isManager проверяет, что пользователь является менеджером студии
func (s *Service) isManager(studio *studioClient.Studio, userID int64) bool {
	for _, managerID := range studio.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// getConfigLevel возвращает уровень конфигурации для логирования
func (s *Service) getConfigLevel(config *domain.StudioScheduleConfig) string {
	if config.IsMachineSpecific() {
		return "machine"
	}
	return "studio"
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(slotDuration, advanceDays, minNotice int) error {
	if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if advanceDays < domain.MinAdvanceBookingDays || advanceDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if minNotice < domain.MinBookingNoticeMinutes || minNotice > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
