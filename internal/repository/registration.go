package repository

import (
	"context"
	"fmt"

	"github.com/ecell/portal-api/internal/repository/dao"
)

var (
	ErrAlreadyRegistered = dao.ErrAlreadyRegistered
	ErrEventFull         = dao.ErrEventFull
	ErrNotRegistered     = dao.ErrNotRegistered
	ErrWriteConflict     = dao.ErrWriteConflict
)

type RegistrationDAO interface {
	Register(ctx context.Context, eventID, userID uint) error
	Unregister(ctx context.Context, eventID, userID uint) error
	FindUserIDsByEvent(ctx context.Context, eventID uint) ([]uint, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

// Register appends the user to the event roster and the event to the user's
// joined events as one write.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Register(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Register -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) Unregister(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Unregister(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Unregister -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) FindUserIDsByEvent(ctx context.Context, eventID uint) ([]uint, error) {
	ids, err := r.dao.FindUserIDsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUserIDsByEvent -> %w", err)
	}

	return ids, nil
}
