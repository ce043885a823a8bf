package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	sessionRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/session"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
	"github.com/m04kA/GMS-SessionService/pkg/ptr"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

type fakeSessionRepo struct {
	sessions map[int64]*domain.Session

	cancelledID     int64
	cancelledReason string
	updatedID       int64
	updatedStatus   domain.SessionStatus
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

func (r *fakeSessionRepo) GetByMemberID(_ context.Context, memberID int64, status *domain.SessionStatus) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.MemberID != memberID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioSessionsFilter) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.StudioID != filter.StudioID {
			continue
		}
		if !filter.IncludeCancelled && s.Status == domain.StatusCancelled {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id int64, status domain.SessionStatus) error {
	if _, ok := r.sessions[id]; !ok {
		return sessionRepo.ErrSessionNotFound
	}
	r.updatedID = id
	r.updatedStatus = status
	return nil
}

func (r *fakeSessionRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := r.sessions[id]; !ok {
		return sessionRepo.ErrSessionNotFound
	}
	r.cancelledID = id
	r.cancelledReason = reason
	return nil
}

type fakeStudioClient struct {
	studios map[int64]*studioservice.Studio
}

func (c *fakeStudioClient) GetStudio(_ context.Context, studioID int64) (*studioservice.Studio, error) {
	s, ok := c.studios[studioID]
	if !ok {
		return nil, studioservice.ErrStudioNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSession(id, memberID, studioID int64, status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:              id,
		MemberID:        memberID,
		StudioID:        studioID,
		MachineID:       10,
		SessionDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          status,
	}
}

func testStudioClient(studioID int64, managerIDs ...int64) *fakeStudioClient {
	return &fakeStudioClient{studios: map[int64]*studioservice.Studio{
		studioID: {ID: studioID, Name: "Iron Temple", ManagerIDs: managerIDs},
	}}
}

func TestService_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "owner has access", userID: 100},
		{name: "manager has access", userID: 500},
		{name: "stranger denied", userID: 999, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
			svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

			resp, err := svc.GetByID(context.Background(), 1, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "10:00", resp.StartTime)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeSessionRepo(), testStudioClient(7), nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 100)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_GetMemberSessions(t *testing.T) {
	repo := newFakeSessionRepo(
		testSession(1, 100, 7, domain.StatusScheduled),
		testSession(2, 100, 7, domain.StatusCancelled),
		testSession(3, 200, 7, domain.StatusScheduled),
	)
	svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

	t.Run("own history", func(t *testing.T) {
		resp, err := svc.GetMemberSessions(context.Background(), &models.GetMemberSessionsRequest{
			MemberID: 100,
			UserID:   100,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp, err := svc.GetMemberSessions(context.Background(), &models.GetMemberSessionsRequest{
			MemberID: 100,
			UserID:   100,
			Status:   ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 1)
		assert.Equal(t, "cancelled", resp.Sessions[0].Status)
	})

	t.Run("foreign history denied", func(t *testing.T) {
		_, err := svc.GetMemberSessions(context.Background(), &models.GetMemberSessionsRequest{
			MemberID: 100,
			UserID:   200,
		})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetMemberSessions(context.Background(), &models.GetMemberSessionsRequest{
			MemberID: 100,
			UserID:   100,
			Status:   ptr.Ptr("paused"),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetStudioSessions(t *testing.T) {
	repo := newFakeSessionRepo(
		testSession(1, 100, 7, domain.StatusScheduled),
		testSession(2, 200, 7, domain.StatusCancelled),
	)
	svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

	t.Run("manager sees sessions", func(t *testing.T) {
		resp, err := svc.GetStudioSessions(context.Background(), &models.GetStudioSessionsRequest{
			UserID:   500,
			StudioID: 7,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 1)
	})

	t.Run("includeCancelled", func(t *testing.T) {
		resp, err := svc.GetStudioSessions(context.Background(), &models.GetStudioSessionsRequest{
			UserID:           500,
			StudioID:         7,
			IncludeCancelled: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 2)
	})

	t.Run("non-manager denied", func(t *testing.T) {
		_, err := svc.GetStudioSessions(context.Background(), &models.GetStudioSessionsRequest{
			UserID:   100,
			StudioID: 7,
		})
		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels own session", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{
			UserID:             100,
			CancellationReason: "plans changed",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.cancelledID)
		assert.Equal(t, "plans changed", repo.cancelledReason)
	})

	t.Run("manager cancels member session", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{
			UserID:             500,
			CancellationReason: "machine maintenance",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.cancelledID)
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{UserID: 999})
		require.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("completed session cannot be cancelled", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusCompleted))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelSessionRequest{UserID: 100})
		require.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("manager updates status", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 500,
			Status: "in_progress",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, repo.updatedStatus)
	})

	t.Run("member denied", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 100,
			Status: "completed",
		})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 500,
			Status: "paused",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("cancellation via status update rejected", func(t *testing.T) {
		repo := newFakeSessionRepo(testSession(1, 100, 7, domain.StatusScheduled))
		svc := NewService(repo, testStudioClient(7, 500), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 500,
			Status: "cancelled",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
