package reschedule_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	sessionRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/session"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

type fakeSessionRepo struct {
	sessions map[int64]*domain.Session
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: make(map[int64]*domain.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioSessionsFilter) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.StudioID != filter.StudioID {
			continue
		}
		if filter.MachineID != nil && s.MachineID != *filter.MachineID {
			continue
		}
		if !filter.IncludeCancelled && s.Status == domain.StatusCancelled {
			continue
		}
		if filter.StartDate != nil && !s.SessionDate.Equal(*filter.StartDate) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString, durationMinutes int) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	s.SessionDate = date
	s.StartTime = startTime
	s.DurationMinutes = durationMinutes
	return nil
}

type fakeConfigRepo struct{}

func (fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.StudioScheduleConfig, error) {
	return nil, configRepo.ErrConfigNotFound
}

type fakeStudioClient struct {
	studio *studioservice.Studio
}

func (c *fakeStudioClient) GetStudio(_ context.Context, studioID int64) (*studioservice.Studio, error) {
	if c.studio == nil || c.studio.ID != studioID {
		return nil, studioservice.ErrStudioNotFound
	}
	return c.studio, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func allWeekOpen(open, close string) studioservice.WeekSchedule {
	day := studioservice.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}
	return studioservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func scheduledSession(id, memberID int64, startTime string) *domain.Session {
	return &domain.Session{
		ID:              id,
		MemberID:        memberID,
		StudioID:        7,
		MachineID:       10,
		SessionDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(startTime),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}
}

func newTestUseCase(repo *fakeSessionRepo) *UseCase {
	uc := NewUseCase(
		repo,
		fakeConfigRepo{},
		&fakeStudioClient{studio: &studioservice.Studio{
			ID:           7,
			Name:         "Iron Temple",
			ManagerIDs:   []int64{500},
			WorkingHours: allWeekOpen("09:00", "22:00"),
		}},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute_OwnerReschedules(t *testing.T) {
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    100,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), resp.SessionDate)
	// Длительность сохраняется, если не указана новая
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestUseCase_Execute_ManagerReschedules(t *testing.T) {
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    500,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)
}

func TestUseCase_Execute_StrangerDenied(t *testing.T) {
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    999,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_SelfExclusion(t *testing.T) {
	// Перенос в пределах собственного интервала не конфликтует с самим собой
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    100,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
}

func TestUseCase_Execute_ConflictWithOtherSession(t *testing.T) {
	repo := newFakeSessionRepo(
		scheduledSession(1, 100, "10:00"),
		scheduledSession(2, 200, "14:00"),
	)
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    100,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:30"),
	})
	require.ErrorIs(t, err, ErrTimeSlotTaken)
}

func TestUseCase_Execute_OnlyScheduledCanBeRescheduled(t *testing.T) {
	for _, status := range []domain.SessionStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			session := scheduledSession(1, 100, "10:00")
			session.Status = status
			uc := newTestUseCase(newFakeSessionRepo(session))

			_, err := uc.Execute(context.Background(), &Request{
				SessionID: 1,
				UserID:    100,
				Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("14:00"),
			})
			require.ErrorIs(t, err, ErrCannotReschedule)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeSessionRepo())

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 42,
		UserID:    100,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUseCase_Execute_OutsideWorkingHours(t *testing.T) {
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    100,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("21:30"),
	})
	require.ErrorIs(t, err, ErrOutsideWorkingHours)
}

// Перенос на слот, заканчивающийся ровно в полночь, не должен обходить
// проверку времени закрытия студии
func TestUseCase_Execute_MidnightEndRejected(t *testing.T) {
	repo := newFakeSessionRepo(scheduledSession(1, 100, "10:00"))
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 1,
		UserID:    100,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("23:00"),
	})
	require.ErrorIs(t, err, ErrOutsideWorkingHours)
}
