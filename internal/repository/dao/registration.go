package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is full")
	ErrNotRegistered     = errors.New("not registered for this event")
)

// Registration is one edge of the user/event join relation. An event's
// roster and a user's joined events are both read from these rows.
type Registration struct {
	EventID   uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Event     Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Registration) TableName() string {
	return "event_registrations"
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// Register joins a user to an event.
//
// Existence, duplicate and capacity are checked in that order inside one
// transaction. The capacity check is repeated by the conditional update of
// registered_count and the duplicate check by the primary key of the
// registration row, so concurrent callers cannot overshoot either.
func (d *RegistrationDAO) Register(ctx context.Context, eventID, userID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEvent(tx, eventID); err != nil {
			return err
		}
		if err := requireUser(tx, userID); err != nil {
			return err
		}

		registered, err := isRegistered(tx, eventID, userID)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}

		result := tx.Model(&Event{}).
			Where("id = ? AND registered_count < capacity", eventID).
			UpdateColumn("registered_count", gorm.Expr("registered_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The event may have been deleted since it was read.
			if err := requireEvent(tx, eventID); err != nil {
				return err
			}

			return ErrEventFull
		}

		row := Registration{EventID: eventID, UserID: userID}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			if isUniqueViolation(err, "event_registrations") {
				return ErrAlreadyRegistered
			}

			return err
		}

		return nil
	})

	return translateTxErr(err)
}

// Unregister removes a user from an event, the inverse of Register.
func (d *RegistrationDAO) Unregister(ctx context.Context, eventID, userID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEvent(tx, eventID); err != nil {
			return err
		}

		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&Registration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotRegistered
		}

		return tx.Model(&Event{}).
			Where("id = ? AND registered_count > 0", eventID).
			UpdateColumn("registered_count", gorm.Expr("registered_count - ?", 1)).Error
	})

	return translateTxErr(err)
}

// FindEventIDsByUser returns the joined-events view for one user, in join order.
func (d *RegistrationDAO) FindEventIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}

	err := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("event_id ASC").
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// FindUserIDsByEvent returns the roster view for one event, in join order.
func (d *RegistrationDAO) FindUserIDsByEvent(ctx context.Context, eventID uint) ([]uint, error) {
	ids := []uint{}

	err := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC").Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func requireEvent(tx *gorm.DB, eventID uint) error {
	var count int64
	if err := tx.Model(&Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrEventNotFound
	}

	return nil
}

func requireUser(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}

	return nil
}

func isRegistered(tx *gorm.DB, eventID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func translateTxErr(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrEventFull),
		errors.Is(err, ErrNotRegistered):
		return err
	case isWriteConflict(err):
		return ErrWriteConflict
	}

	return err
}
