package create_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/GMS-SessionService/internal/integrations/memberservice"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

type fakeSessionRepo struct {
	sessions []*domain.Session
	created  *domain.Session
	nextID   int64
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	r.nextID++
	created := *session
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = &created
	return &created, nil
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
		out = append(out, s)
	}
	return out, nil
}

type fakeConfigRepo struct {
	config *domain.StudioScheduleConfig
}

func (r *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.StudioScheduleConfig, error) {
	if r.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.config, nil
}

type fakeStudioClient struct {
	studio  *studioservice.Studio
	machine *studioservice.Machine
}

func (c *fakeStudioClient) GetStudio(_ context.Context, studioID int64) (*studioservice.Studio, error) {
	if c.studio == nil || c.studio.ID != studioID {
		return nil, studioservice.ErrStudioNotFound
	}
	return c.studio, nil
}

func (c *fakeStudioClient) GetMachine(_ context.Context, _, machineID int64) (*studioservice.Machine, error) {
	if c.machine == nil || c.machine.ID != machineID {
		return nil, studioservice.ErrMachineNotFound
	}
	return c.machine, nil
}

type fakeMemberClient struct {
	member *memberservice.Member
}

func (c *fakeMemberClient) GetMember(_ context.Context, memberID int64) (*memberservice.Member, error) {
	if c.member == nil || c.member.ID != memberID {
		return nil, memberservice.ErrMemberNotFound
	}
	return c.member, nil
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

func newTestUseCase(sessions *fakeSessionRepo, configs *fakeConfigRepo) *UseCase {
	uc := NewUseCase(
		sessions,
		configs,
		&fakeStudioClient{
			studio:  &studioservice.Studio{ID: 7, Name: "Iron Temple", WorkingHours: allWeekOpen("09:00", "22:00")},
			machine: &studioservice.Machine{ID: 10, StudioID: 7, Name: "Leg Press", IsActive: true},
		},
		&fakeMemberClient{
			member: &memberservice.Member{ID: 100, FullName: "Anna K.", SubscriptionStatus: memberservice.SubscriptionActive},
		},
		fakeTxManager{},
		nopLogger{},
	)
	// Запросы тестируются на фиксированную дату в будущем
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		MemberID:  100,
		StudioID:  7,
		MachineID: 10,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func existingSession(id int64, startTime string, durationMinutes int, status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:              id,
		MemberID:        200,
		StudioID:        7,
		MachineID:       10,
		SessionDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(startTime),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	// Без явной длительности применяется длительность слота из конфигурации
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
	// Денормализация
	require.NotNil(t, resp.MachineName)
	assert.Equal(t, "Leg Press", *resp.MachineName)
	require.NotNil(t, resp.MemberName)
	assert.Equal(t, "Anna K.", *resp.MemberName)
}

func TestUseCase_Execute_ExplicitDuration(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{})

	req := validRequest()
	req.DurationMinutes = 90

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.Session
		wantErr  error
	}{
		{
			name:     "identical interval",
			existing: existingSession(50, "10:00", 30, domain.StatusScheduled),
			wantErr:  ErrTimeSlotTaken,
		},
		{
			name:     "partial overlap",
			existing: existingSession(50, "09:45", 30, domain.StatusScheduled),
			wantErr:  ErrTimeSlotTaken,
		},
		{
			name:     "completed session still occupies interval",
			existing: existingSession(50, "10:00", 30, domain.StatusCompleted),
			wantErr:  ErrTimeSlotTaken,
		},
		{
			name:     "adjacent interval does not conflict",
			existing: existingSession(50, "09:30", 30, domain.StatusScheduled),
		},
		{
			name:     "cancelled session frees interval",
			existing: existingSession(50, "10:00", 30, domain.StatusCancelled),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSessionRepo{sessions: []*domain.Session{tt.existing}}
			uc := newTestUseCase(repo, &fakeConfigRepo{})

			_, err := uc.Execute(context.Background(), validRequest())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUseCase_Execute_DateValidation(t *testing.T) {
	t.Run("past date rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

		req := validRequest()
		req.Date = time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("advance booking limit enforced", func(t *testing.T) {
		uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{
			config: &domain.StudioScheduleConfig{
				ID:                      1,
				StudioID:                7,
				SlotDurationMinutes:     30,
				AdvanceBookingDays:      3,
				MinBookingNoticeMinutes: 60,
			},
		})

		req := validRequest() // 2025-10-15, now = 2025-10-10

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestUseCase_Execute_MinBookingNotice(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

	// Запись на сегодня менее чем за 60 минут до начала
	req := validRequest()
	req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("12:30")

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestUseCase_Execute_WorkingHours(t *testing.T) {
	t.Run("session before opening rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

		req := validRequest()
		req.StartTime = types.TimeString("08:30")

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("session past closing rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

		req := validRequest()
		req.StartTime = types.TimeString("21:45")
		req.DurationMinutes = 60

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	// Занятие, заканчивающееся ровно в полночь, не должно проскакивать
	// проверку закрытия: конец "24:00" сравнивается как конец суток
	t.Run("session ending at midnight rejected when studio closes earlier", func(t *testing.T) {
		uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

		req := validRequest()
		req.StartTime = types.TimeString("23:00")
		req.DurationMinutes = 60

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("session ending at midnight allowed when studio closes at midnight", func(t *testing.T) {
		repo := &fakeSessionRepo{}
		uc := NewUseCase(
			repo,
			&fakeConfigRepo{},
			&fakeStudioClient{
				studio:  &studioservice.Studio{ID: 7, Name: "Iron Temple", WorkingHours: allWeekOpen("09:00", "24:00")},
				machine: &studioservice.Machine{ID: 10, StudioID: 7, Name: "Leg Press", IsActive: true},
			},
			&fakeMemberClient{
				member: &memberservice.Member{ID: 100, FullName: "Anna K.", SubscriptionStatus: memberservice.SubscriptionActive},
			},
			fakeTxManager{},
			nopLogger{},
		)
		uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}

		req := validRequest()
		req.StartTime = types.TimeString("23:00")
		req.DurationMinutes = 60

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("23:00"), resp.StartTime)
	})
}

func TestUseCase_Execute_SubscriptionRequired(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{})
	uc.memberClient = &fakeMemberClient{
		member: &memberservice.Member{ID: 100, FullName: "Anna K.", SubscriptionStatus: memberservice.SubscriptionExpired},
	}

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestUseCase_Execute_InactiveMachine(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{})
	uc.studioClient = &fakeStudioClient{
		studio:  &studioservice.Studio{ID: 7, WorkingHours: allWeekOpen("09:00", "22:00")},
		machine: &studioservice.Machine{ID: 10, StudioID: 7, Name: "Leg Press", IsActive: false},
	}

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrMachineInactive)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero member", func(r *Request) { r.MemberID = 0 }},
		{"zero studio", func(r *Request) { r.StudioID = 0 }},
		{"zero machine", func(r *Request) { r.MachineID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }},
		{"duration below minimum", func(r *Request) { r.DurationMinutes = 10 }},
		{"duration above maximum", func(r *Request) { r.DurationMinutes = 481 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_MachineOverlapIsolation(t *testing.T) {
	// Занятие на другом тренажёре не мешает записи
	other := existingSession(50, "10:00", 30, domain.StatusScheduled)
	other.MachineID = 11

	repo := &fakeSessionRepo{sessions: []*domain.Session{other}}
	uc := newTestUseCase(repo, &fakeConfigRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(10), repo.created.MachineID)
	assert.Equal(t, ptr.Ptr("Leg Press"), repo.created.MachineName)
}
