package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"column:event_date;not null;index"`
	TimeSlot    string    `gorm:"not null"`
	Venue       string    `gorm:"not null"`
	Type        string    `gorm:"not null;default:other"` // workshop, seminar, competition, networking or other
	Capacity    int       `gorm:"not null;default:100"`
	// RegisteredCount mirrors the number of Registration rows of the event.
	// It is only written together with those rows.
	RegisteredCount int    `gorm:"not null;default:0"`
	Status          string `gorm:"not null;default:upcoming;index"` // upcoming, ongoing, completed or cancelled
	ImageURL        string
	CreatedByID     *uint
	CreatedBy       *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	RegisteredUsers []uint `gorm:"-"`
}

type EventFilter struct {
	Status string
	From   time.Time
	Limit  int
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	event.RegisteredCount = 0
	result := d.db.WithContext(ctx).Omit("CreatedBy").Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	event.RegisteredUsers = []uint{}

	return event, nil
}

// FindByID loads the event with its roster and creator.
func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("CreatedBy").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	rosters, err := d.rosters(ctx, d.db, []uint{event.ID})
	if err != nil {
		return Event{}, err
	}
	event.RegisteredUsers = rosters[event.ID]

	return event, nil
}

// Find lists events matching the filter by ascending date.
func (d *EventDAO) Find(ctx context.Context, filter EventFilter) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Model(&Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("event_date >= ?", filter.From)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("event_date ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	return d.withRosters(ctx, events)
}

// FindByIDs returns the events with the given ids ordered by date.
func (d *EventDAO) FindByIDs(ctx context.Context, ids []uint) ([]Event, error) {
	events := []Event{}
	if len(ids) == 0 {
		return events, nil
	}

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("event_date ASC").Order("id ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return d.withRosters(ctx, events)
}

// UpdateColumns applies an admin edit. The roster and its count are not
// editable through this path.
func (d *EventDAO) UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (Event, error) {
	delete(columns, "registered_count")

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrEventNotFound
		}

		if len(columns) == 0 {
			return nil
		}

		return tx.Model(&Event{}).Where("id = ?", id).Updates(columns).Error
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, id)
}

// Delete removes the event together with every registration row pointing to
// it, so no user keeps a dangling joined event.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Registration{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

// DeleteAll empties the events table and the registrations pointing to it.
func (d *EventDAO) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Registration{}).Error; err != nil {
			return err
		}

		result := tx.Where("1 = 1").Delete(&Event{})
		deleted = result.RowsAffected

		return result.Error
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// MarkCompletedBefore moves upcoming and ongoing events dated before the
// cut-off to completed and returns how many changed.
func (d *EventDAO) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("status IN ? AND event_date < ?", []string{"upcoming", "ongoing"}, cutoff).
		Update("status", "completed")
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *EventDAO) withRosters(ctx context.Context, events []Event) ([]Event, error) {
	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	rosters, err := d.rosters(ctx, d.db, ids)
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].RegisteredUsers = rosters[events[i].ID]
	}

	return events, nil
}

// rosters returns the user ids registered for each event, in join order.
// Every requested event gets a non-nil slice.
func (d *EventDAO) rosters(ctx context.Context, db *gorm.DB, eventIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = []uint{}
	}
	if len(eventIDs) == 0 {
		return out, nil
	}

	var rows []Registration
	err := db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Order("created_at ASC").Order("user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.EventID] = append(out[row.EventID], row.UserID)
	}

	return out, nil
}
