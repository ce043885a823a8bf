package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
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

type fakeStudioClient struct{}

func (fakeStudioClient) GetStudio(_ context.Context, studioID int64) (*studioservice.Studio, error) {
	if studioID != 7 {
		return nil, studioservice.ErrStudioNotFound
	}
	return &studioservice.Studio{ID: 7, Name: "Iron Temple"}, nil
}

func (fakeStudioClient) GetMachine(_ context.Context, _, machineID int64) (*studioservice.Machine, error) {
	if machineID != 10 {
		return nil, studioservice.ErrMachineNotFound
	}
	return &studioservice.Machine{ID: 10, StudioID: 7, Name: "Leg Press", IsActive: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func session(id int64, startTime string, durationMinutes int, status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:              id,
		MemberID:        100,
		StudioID:        7,
		MachineID:       10,
		SessionDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(startTime),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func request(startTime string, durationMinutes int) *Request {
	return &Request{
		StudioID:        7,
		MachineID:       10,
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(startTime),
		DurationMinutes: durationMinutes,
	}
}

func TestUseCase_Execute_Available(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		session(1, "09:00", 60, domain.StatusScheduled),
	}}
	uc := NewUseCase(repo, fakeStudioClient{}, nopLogger{})

	// Смежный интервал не считается пересечением
	resp, err := uc.Execute(context.Background(), request("10:00", 30))
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, "interval is available", resp.Message)
}

func TestUseCase_Execute_Conflicts(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		session(1, "09:00", 60, domain.StatusScheduled),
		session(2, "09:45", 30, domain.StatusCompleted),
		session(3, "09:50", 30, domain.StatusCancelled),
	}}
	uc := NewUseCase(repo, fakeStudioClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), request("09:30", 45))
	require.NoError(t, err)
	assert.False(t, resp.Available)

	// Отменённое занятие не конфликтует, порядок конфликтов совпадает со входным
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, int64(1), resp.Conflicts[0].SessionID)
	assert.Equal(t, int64(2), resp.Conflicts[1].SessionID)
	assert.Equal(t, "interval overlaps with 2 session(s)", resp.Message)
}

func TestUseCase_Execute_ExcludeSession(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		session(1, "10:00", 30, domain.StatusScheduled),
	}}
	uc := NewUseCase(repo, fakeStudioClient{}, nopLogger{})

	// Повторная проверка при переносе: занятие не конфликтует само с собой
	req := request("10:00", 30)
	req.ExcludeSessionID = ptr.Ptr(int64(1))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{}, fakeStudioClient{}, nopLogger{})

	t.Run("studio not found", func(t *testing.T) {
		req := request("10:00", 30)
		req.StudioID = 99
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrStudioNotFound)
	})

	t.Run("machine not found", func(t *testing.T) {
		req := request("10:00", 30)
		req.MachineID = 99
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrMachineNotFound)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), request("10:00", 5))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid start time", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), request("27:00", 30))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
