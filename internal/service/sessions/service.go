package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	sessionRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/session"
	studioClient "github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
)

// Service сервис для работы с занятиями
type Service struct {
	sessionRepo  SessionRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	sessionRepo SessionRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// GetByID получает занятие по ID
// Проверяет права доступа - клиент может видеть только своё занятие
// или если он является менеджером студии
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, session, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched session id=%d", id)
	return models.FromDomainSession(session), nil
}

// GetMemberSessions получает историю занятий клиента
// Клиент видит только свою историю, менеджеры запрашивают через GetStudioSessions
// Опционально фильтрует по статусу
func (s *Service) GetMemberSessions(ctx context.Context, req *models.GetMemberSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetMemberSessions: fetching sessions for member=%d, user=%d, status=%v", req.MemberID, req.UserID, req.Status)

	// Клиент может смотреть только собственную историю
	if req.MemberID != req.UserID {
		s.logger.Warn("GetMemberSessions: access denied for user=%d to member=%d history", req.UserID, req.MemberID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.SessionStatus
	var domainStatus *domain.SessionStatus
	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberSessions: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	sessions, err := s.sessionRepo.GetByMemberID(ctx, req.MemberID, domainStatus)
	if err != nil {
		s.logger.Error("GetMemberSessions: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberSessions: successfully fetched %d sessions for member=%d", len(sessions), req.MemberID)
	return models.FromDomainSessionList(sessions), nil
}

// GetStudioSessions получает занятия студии с гибкой фильтрацией
// Поддерживает фильтрацию по тренажёру, периоду, статусу и включению отменённых занятий
// Доступно только менеджерам студии
//
// Примеры использования:
// - Все актуальные занятия: GetStudioSessions(ctx, &GetStudioSessionsRequest{StudioID: 123, UserID: 456})
// - Занятия на конкретном тренажёре: указать MachineID
// - Занятия на дату: StartDate и EndDate указывают на одну дату
// - Занятия за период: StartDate и EndDate указывают на разные даты
// - Только завершённые: указать Status = "completed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetStudioSessions(ctx context.Context, req *models.GetStudioSessionsRequest) (*models.SessionListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetStudioSessions: fetching sessions for studio=%d, user=%d", req.StudioID, req.UserID)
	if req.MachineID != nil {
		logMsg += fmt.Sprintf(", machine=%d", *req.MachineID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudioSessions: invalid filter for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем занятия с фильтрацией
	sessions, err := s.sessionRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioSessions: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetStudioSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioSessions: successfully fetched %d sessions for studio=%d", len(sessions), req.StudioID)
	return models.FromDomainSessionList(sessions), nil
}

// Cancel отменяет занятие
// Клиент может отменить только своё занятие,
// менеджер может отменить любое занятие студии
// Отменить можно только занятие в статусе scheduled
func (s *Service) Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) error {
	s.logger.Info("Cancel: cancelling session id=%d by user=%d", sessionID, req.UserID)

	// Получаем занятие
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить занятие
	if !session.CanBeCancelled() {
		s.logger.Warn("Cancel: session id=%d cannot be cancelled, status=%s", sessionID, session.Status)
		return ErrCannotCancel
	}

	// Проверяем права: владелец занятия либо менеджер студии
	if session.MemberID != req.UserID {
		if err := s.checkManagerAccess(ctx, session.StudioID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel session id=%d", req.UserID, sessionID)
			return ErrAccessDenied
		}
	}

	// Отменяем занятие
	if err := s.sessionRepo.Cancel(ctx, sessionID, req.CancellationReason); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found during cancellation", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled session id=%d", sessionID)
	return nil
}

// UpdateStatus обновляет статус занятия
// Доступно только менеджерам студии
func (s *Service) UpdateStatus(ctx context.Context, sessionID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating session id=%d to status=%s by user=%d",
		sessionID, req.Status, req.UserID)

	// Получаем занятие
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер студии)
	if err := s.checkManagerAccess(ctx, session.StudioID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainSessionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for session id=%d", req.Status, sessionID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена идёт через Cancel - там фиксируются причина и время отмены
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of session id=%d requested via status update", sessionID)
		return fmt.Errorf("%w: use cancel endpoint to cancel a session", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, newStatus); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found during update", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated session id=%d to status=%s", sessionID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к занятию
// Клиент может видеть своё занятие или если он менеджер студии
func (s *Service) checkUserAccess(ctx context.Context, session *domain.Session, userID int64) error {
	// Если пользователь владелец занятия - доступ разрешён
	if session.MemberID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером студии
	if err := s.checkManagerAccess(ctx, session.StudioID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером студии
func (s *Service) checkManagerAccess(ctx context.Context, studioID int64, userID int64) error {
	// Получаем студию через StudioService
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("checkManagerAccess: studio id=%d not found", studioID)
			return ErrStudioNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get studio id=%d: %v", studioID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get studio: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	for _, managerID := range studio.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of studio=%d", userID, studioID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of studio=%d", userID, studioID)
	return ErrAccessDenied
}
