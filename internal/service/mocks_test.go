package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ecell/portal-api/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmailOrRollNumber(ctx context.Context, email, rollNumber string) (domain.User, error) {
	args := m.Called(ctx, email, rollNumber)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uint, role string) (domain.User, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Find(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Event, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEventRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Register(ctx context.Context, eventID, userID uint) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockRegistrationRepo) Unregister(ctx context.Context, eventID, userID uint) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}
