package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecell/portal-api/internal/repository"
)

var (
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
	ErrEventFull         = repository.ErrEventFull
	ErrNotRegistered     = repository.ErrNotRegistered
	ErrWriteConflict     = repository.ErrWriteConflict
)

var registrationKinds = []error{
	ErrEventNotFound,
	ErrUserNotFound,
	ErrAlreadyRegistered,
	ErrEventFull,
	ErrNotRegistered,
	ErrWriteConflict,
}

// RegistrationError names the check that failed and the ids involved.
// It unwraps to one of the registration error kinds, or to the underlying
// error when the failure was not a rule violation.
type RegistrationError struct {
	Op      string
	EventID uint
	UserID  uint
	Kind    error
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s user %d for event %d: %v", e.Op, e.UserID, e.EventID, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}

	return e.Err
}

type RegistrationRepository interface {
	Register(ctx context.Context, eventID, userID uint) error
	Unregister(ctx context.Context, eventID, userID uint) error
}

// RegistrationService is the only writer of the user/event join relation.
type RegistrationService struct {
	repo RegistrationRepository
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
	}
}

// Register joins userID to eventID. A repeated call reports
// ErrAlreadyRegistered; ErrWriteConflict means the whole call may be retried.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID uint) error {
	if err := s.repo.Register(ctx, eventID, userID); err != nil {
		return newRegistrationError("register", eventID, userID, err)
	}

	return nil
}

// Unregister removes userID from eventID, undoing Register.
func (s *RegistrationService) Unregister(ctx context.Context, userID, eventID uint) error {
	if err := s.repo.Unregister(ctx, eventID, userID); err != nil {
		return newRegistrationError("unregister", eventID, userID, err)
	}

	return nil
}

func newRegistrationError(op string, eventID, userID uint, err error) *RegistrationError {
	regErr := &RegistrationError{
		Op:      op,
		EventID: eventID,
		UserID:  userID,
		Err:     err,
	}

	for _, kind := range registrationKinds {
		if errors.Is(err, kind) {
			regErr.Kind = kind
			break
		}
	}

	return regErr
}
