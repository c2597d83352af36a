package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserEmailExists      = errors.New("user with this email already exists")
	ErrUserRollNumberExists = errors.New("user with this roll number already exists")
	ErrUserNotFound         = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email      string `gorm:"uniqueIndex:idx_users_email;not null"`
	RollNumber string `gorm:"uniqueIndex:idx_users_roll_number;not null"`
	Password   string `gorm:"not null"`

	Name   string `gorm:"not null"`
	Branch string `gorm:"not null"`
	Year   int    `gorm:"not null"`
	Phone  string `gorm:"not null"`
	Role   string `gorm:"not null;default:member"` // "member" or "admin"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		switch {
		case isUniqueViolation(result.Error, "email"):
			return User{}, ErrUserEmailExists
		case isUniqueViolation(result.Error, "roll_number"):
			return User{}, ErrUserRollNumberExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByEmailOrRollNumber returns any user holding either identity.
func (d *UserDAO) FindByEmailOrRollNumber(ctx context.Context, email, rollNumber string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		Where("email = ? OR roll_number = ?", email, rollNumber).
		Order("id").
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByIDs(ctx context.Context, ids []uint) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// UpdateColumns applies the given column values to one user.
func (d *UserDAO) UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (User, error) {
	var user User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&User{}).Where("id = ?", id).Updates(columns).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}
