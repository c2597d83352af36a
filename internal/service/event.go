package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository"
)

const (
	DefaultEventListLimit = 10
	MaxEventListLimit     = 100
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	Find(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type RegistrantRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
}

type EventService struct {
	repo  EventRepository
	users RegistrantRepository
	now   func() time.Time
}

func NewEventService(repo EventRepository, users RegistrantRepository) *EventService {
	return &EventService{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

// ListEvents lists events by ascending date. With the upcoming status only
// events dated today or later are returned.
func (s *EventService) ListEvents(ctx context.Context, status string, limit int) ([]domain.Event, error) {
	if status == "" {
		status = domain.EventStatusUpcoming
	}
	if limit <= 0 {
		limit = DefaultEventListLimit
	}
	if limit > MaxEventListLimit {
		limit = MaxEventListLimit
	}

	filter := domain.EventFilter{Status: status, Limit: limit}
	if status == domain.EventStatusUpcoming {
		filter.From = startOfDay(s.now())
	}

	events, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, creatorID uint) (domain.Event, error) {
	if event.Type == "" {
		event.Type = domain.EventTypeOther
	}
	if event.MaxParticipants == 0 {
		event.MaxParticipants = domain.DefaultMaxParticipants
	}
	event.Status = domain.EventStatusUpcoming
	if creatorID != 0 {
		event.CreatedByID = &creatorID
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateEvent applies an admin edit. Lowering the capacity below the current
// roster is allowed; nobody is removed and the event reports OverCapacity.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	event, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if event.OverCapacity() {
		zap.L().Warn("event capacity is below its roster size",
			zap.Uint("eventID", event.ID),
			zap.Int("capacity", event.MaxParticipants),
			zap.Int("registered", len(event.RegisteredUsers)),
		)
	}

	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// DeleteAllEvents removes every event and registration.
func (s *EventService) DeleteAllEvents(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteAll -> %w", err)
	}

	return n, nil
}

// ListRegistrants returns the users on the roster of an event in join order.
func (s *EventService) ListRegistrants(ctx context.Context, id uint) ([]domain.User, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	users, err := s.users.FindByIDs(ctx, event.RegisteredUsers)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByIDs -> %w", err)
	}

	byID := make(map[uint]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]domain.User, 0, len(event.RegisteredUsers))
	for _, id := range event.RegisteredUsers {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

// CompletePastEvents marks upcoming and ongoing events from previous days as
// completed.
func (s *EventService) CompletePastEvents(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkCompletedBefore(ctx, startOfDay(s.now()))
	if err != nil {
		return 0, fmt.Errorf("s.repo.MarkCompletedBefore -> %w", err)
	}

	return n, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
