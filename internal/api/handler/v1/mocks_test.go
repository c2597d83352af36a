package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ecell/portal-api/internal/domain"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	args := m.Called(ctx, userID, current, next)
	return args.Error(0)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(userID uint, role, userAgent string) (string, error) {
	args := m.Called(userID, role, userAgent)
	return args.String(0), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateRole(ctx context.Context, id uint, role string) (domain.User, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) GetRegisteredEvents(ctx context.Context, id uint) ([]domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Event), args.Error(1)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) ListEvents(ctx context.Context, status string, limit int) ([]domain.Event, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event domain.Event, creatorID uint) (domain.Event, error) {
	args := m.Called(ctx, event, creatorID)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventService) ListRegistrants(ctx context.Context, id uint) ([]domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) Register(ctx context.Context, userID, eventID uint) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *mockRegistrationService) Unregister(ctx context.Context, userID, eventID uint) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}
