package service

import (
	"context"
	"fmt"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) (domain.User, error)
}

type JoinedEventRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Event, error)
}

type UserService struct {
	repo   UserRepository
	events JoinedEventRepository
}

func NewUserService(repo UserRepository, events JoinedEventRepository) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	user, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) (domain.User, error) {
	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return user, nil
}

// GetRegisteredEvents resolves the joined-events set of a user into events.
func (s *UserService) GetRegisteredEvents(ctx context.Context, id uint) ([]domain.Event, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	events, err := s.events.FindByIDs(ctx, user.RegisteredEvents)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindByIDs -> %w", err)
	}

	return events, nil
}
