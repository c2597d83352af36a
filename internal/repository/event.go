package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	Find(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Event, error)
	UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) Find(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.Find(ctx, dao.EventFilter{
		Status: filter.Status,
		From:   filter.From,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Event, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	columns := map[string]interface{}{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Date != nil {
		columns["event_date"] = *update.Date
	}
	if update.Time != nil {
		columns["time_slot"] = *update.Time
	}
	if update.Venue != nil {
		columns["venue"] = *update.Venue
	}
	if update.Type != nil {
		columns["type"] = *update.Type
	}
	if update.MaxParticipants != nil {
		columns["capacity"] = *update.MaxParticipants
	}
	if update.Status != nil {
		columns["status"] = *update.Status
	}
	if update.ImageURL != nil {
		columns["image_url"] = *update.ImageURL
	}

	updated, err := r.dao.UpdateColumns(ctx, id, columns)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.UpdateColumns -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.dao.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return n, nil
}

func (r *EventRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.dao.MarkCompletedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkCompletedBefore -> %w", err)
	}

	return n, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		TimeSlot:    e.Time,
		Venue:       e.Venue,
		Type:        e.Type,
		Capacity:    e.MaxParticipants,
		Status:      e.Status,
		ImageURL:    e.ImageURL,
		CreatedByID: e.CreatedByID,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.Date,
		Time:            e.TimeSlot,
		Venue:           e.Venue,
		Type:            e.Type,
		MaxParticipants: e.Capacity,
		RegisteredUsers: e.RegisteredUsers,
		Status:          e.Status,
		ImageURL:        e.ImageURL,
		CreatedByID:     e.CreatedByID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if event.RegisteredUsers == nil {
		event.RegisteredUsers = []uint{}
	}

	if e.CreatedBy != nil {
		event.CreatedBy = &domain.UserSummary{
			ID:    e.CreatedBy.ID,
			Name:  e.CreatedBy.Name,
			Email: e.CreatedBy.Email,
		}
	}

	return event
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = r.daoToDomain(e)
	}

	return out
}
