package get_day_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

type fakeSessionRepo struct {
	sessions []*domain.Session
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
	studio   *studioservice.Studio
	machines []studioservice.Machine
}

func (c *fakeStudioClient) GetStudio(_ context.Context, studioID int64) (*studioservice.Studio, error) {
	if c.studio == nil || c.studio.ID != studioID {
		return nil, studioservice.ErrStudioNotFound
	}
	return c.studio, nil
}

func (c *fakeStudioClient) GetMachine(_ context.Context, _, machineID int64) (*studioservice.Machine, error) {
	for i := range c.machines {
		if c.machines[i].ID == machineID {
			return &c.machines[i], nil
		}
	}
	return nil, studioservice.ErrMachineNotFound
}

func (c *fakeStudioClient) GetMachines(_ context.Context, _ int64) ([]studioservice.Machine, error) {
	return c.machines, nil
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

func openDay(open, close string) studioservice.DaySchedule {
	return studioservice.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}
}

func allWeek(day studioservice.DaySchedule) studioservice.WeekSchedule {
	return studioservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func newTestUseCase(repo *fakeSessionRepo, configs *fakeConfigRepo, client *fakeStudioClient) *UseCase {
	uc := NewUseCase(repo, configs, client, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func defaultClient() *fakeStudioClient {
	return &fakeStudioClient{
		studio: &studioservice.Studio{ID: 7, Name: "Iron Temple", WorkingHours: allWeek(openDay("09:00", "11:00"))},
		machines: []studioservice.Machine{
			{ID: 10, StudioID: 7, Name: "Leg Press", IsActive: true},
			{ID: 11, StudioID: 7, Name: "Lat Pulldown", IsActive: true},
			{ID: 12, StudioID: 7, Name: "Old Treadmill", IsActive: false},
		},
	}
}

func TestUseCase_Execute_SlotGrid(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 7,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00-11:00 с шагом 30 минут = 4 слота
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "09:00 - 09:30", resp.Slots[0].Label)
	assert.Equal(t, "10:30 - 11:00", resp.Slots[3].Label)

	// Неактивный тренажёр не участвует в подсчёте
	for _, slot := range resp.Slots {
		assert.Equal(t, 2, slot.TotalMachines)
		assert.Equal(t, 2, slot.AvailableMachines)
	}
}

func TestUseCase_Execute_OccupiedMachineReducesAvailability(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		{
			ID:              1,
			MemberID:        100,
			StudioID:        7,
			MachineID:       10,
			SessionDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("09:00"),
			DurationMinutes: 60,
			Status:          domain.StatusScheduled,
		},
	}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 7,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	// Занятие 09:00-10:00 занимает первые два слота на одном из двух тренажёров
	assert.Equal(t, 1, resp.Slots[0].AvailableMachines)
	assert.Equal(t, 1, resp.Slots[1].AvailableMachines)
	assert.Equal(t, 2, resp.Slots[2].AvailableMachines)
	assert.Equal(t, 2, resp.Slots[3].AvailableMachines)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	client := defaultClient()
	client.studio.WorkingHours = allWeek(studioservice.DaySchedule{IsOpen: false})
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, client)

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 7,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_TodayFiltersByNotice(t *testing.T) {
	client := defaultClient()
	client.studio.WorkingHours = allWeek(openDay("09:00", "22:00"))
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, client)

	// now = 12:00, minNotice = 60: первый доступный слот не раньше 13:00
	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 7,
		Date:     time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
}

// Фильтр по минимальному времени записи сравнивает настенное время:
// серверные часы в другой локации не должны сдвигать порог
func TestUseCase_Execute_NoticeFilterUsesWallClock(t *testing.T) {
	client := defaultClient()
	client.studio.WorkingHours = allWeek(openDay("09:00", "22:00"))
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, client)

	// На серверных часах 14:00 по местному времени (+03:00),
	// minNotice = 60: первый доступный слот не раньше 15:00
	msk := time.FixedZone("MSK", 3*60*60)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 10, 14, 0, 0, 0, msk)}

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 7,
		Date:     time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("15:00"), resp.Slots[0].StartTime)
}

func TestUseCase_Execute_SingleMachine(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID:  7,
		MachineID: ptr.Ptr(int64(10)),
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	for _, slot := range resp.Slots {
		assert.Equal(t, 1, slot.TotalMachines)
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeConfigRepo{}, defaultClient())

	t.Run("studio not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StudioID: 99,
			Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		})
		require.ErrorIs(t, err, ErrStudioNotFound)
	})

	t.Run("machine not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StudioID:  7,
			MachineID: ptr.Ptr(int64(99)),
			Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		})
		require.ErrorIs(t, err, ErrMachineNotFound)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StudioID: 7,
			Date:     time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StudioID: 7})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
