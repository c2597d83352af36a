package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository"
)

func newTestEventService(repo EventRepository, users RegistrantRepository, now time.Time) *EventService {
	svc := NewEventService(repo, users)
	svc.now = func() time.Time { return now }

	return svc
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 4, 10, 15, 30, 0, 0, time.UTC)
	today := time.Date(2030, 4, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     string
		limit      int
		wantFilter domain.EventFilter
	}{
		{
			name:       "defaults to upcoming from today",
			wantFilter: domain.EventFilter{Status: domain.EventStatusUpcoming, From: today, Limit: DefaultEventListLimit},
		},
		{
			name:       "limit is capped",
			status:     domain.EventStatusUpcoming,
			limit:      1000,
			wantFilter: domain.EventFilter{Status: domain.EventStatusUpcoming, From: today, Limit: MaxEventListLimit},
		},
		{
			name:       "other statuses are not date bound",
			status:     domain.EventStatusCompleted,
			limit:      5,
			wantFilter: domain.EventFilter{Status: domain.EventStatusCompleted, Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockEventRepo)
			repo.On("Find", ctx, tt.wantFilter).Return([]domain.Event{{ID: 1}}, nil)

			events, err := newTestEventService(repo, nil, now).ListEvents(ctx, tt.status, tt.limit)
			require.NoError(t, err)
			assert.Len(t, events, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	repo := new(mockEventRepo)
	svc := newTestEventService(repo, nil, time.Now())

	repo.On("Create", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventTypeOther &&
			e.MaxParticipants == domain.DefaultMaxParticipants &&
			e.Status == domain.EventStatusUpcoming &&
			e.CreatedByID != nil && *e.CreatedByID == 9
	})).Return(domain.Event{ID: 4}, nil)

	created, err := svc.CreateEvent(ctx, domain.Event{Title: "Demo Day", Status: domain.EventStatusCompleted}, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(4), created.ID)
	repo.AssertExpectations(t)
}

func TestEventService_UpdateEvent_CapacityBelowRoster(t *testing.T) {
	ctx := context.Background()
	repo := new(mockEventRepo)
	svc := newTestEventService(repo, nil, time.Now())

	capacity := 1
	update := domain.EventUpdate{MaxParticipants: &capacity}
	repo.On("Update", ctx, uint(2), update).
		Return(domain.Event{ID: 2, MaxParticipants: 1, RegisteredUsers: []uint{5, 6}}, nil)

	event, err := svc.UpdateEvent(ctx, 2, update)
	require.NoError(t, err)
	assert.True(t, event.OverCapacity())
	assert.Equal(t, []uint{5, 6}, event.RegisteredUsers)
	assert.Zero(t, event.SpotsLeft())
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockEventRepo)
	svc := newTestEventService(repo, nil, time.Now())

	repo.On("FindByID", ctx, uint(8)).Return(domain.Event{}, repository.ErrEventNotFound)

	_, err := svc.GetEvent(ctx, 8)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_ListRegistrants(t *testing.T) {
	ctx := context.Background()
	events := new(mockEventRepo)
	users := new(mockUserRepo)
	svc := newTestEventService(events, users, time.Now())

	events.On("FindByID", ctx, uint(1)).Return(domain.Event{ID: 1, RegisteredUsers: []uint{30, 10, 20}}, nil)
	users.On("FindByIDs", ctx, []uint{30, 10, 20}).Return([]domain.User{{ID: 10}, {ID: 20}, {ID: 30}}, nil)

	got, err := svc.ListRegistrants(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint{30, 10, 20}, []uint{got[0].ID, got[1].ID, got[2].ID})
}

func TestEventService_CompletePastEvents(t *testing.T) {
	ctx := context.Background()
	repo := new(mockEventRepo)
	now := time.Date(2030, 4, 10, 23, 59, 0, 0, time.UTC)
	svc := newTestEventService(repo, nil, now)

	repo.On("MarkCompletedBefore", ctx, time.Date(2030, 4, 10, 0, 0, 0, 0, time.UTC)).Return(int64(3), nil)

	n, err := svc.CompletePastEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := new(mockEventRepo)
	svc := newTestEventService(repo, nil, time.Now())

	repo.On("Delete", ctx, uint(1)).Return(nil)
	repo.On("Delete", ctx, uint(2)).Return(repository.ErrEventNotFound)

	require.NoError(t, svc.DeleteEvent(ctx, 1))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, 2), ErrEventNotFound)
}
