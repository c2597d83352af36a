package repository

import (
	"context"
	"fmt"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository/dao"
)

var (
	ErrUserEmailExists      = dao.ErrUserEmailExists
	ErrUserRollNumberExists = dao.ErrUserRollNumberExists
	ErrUserNotFound         = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByEmailOrRollNumber(ctx context.Context, email, rollNumber string) (dao.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.User, error)
	UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (dao.User, error)
}

type JoinedEventsDAO interface {
	FindEventIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type UserRepository struct {
	dao    UserDAO
	joined JoinedEventsDAO
}

func NewUserRepository(dao UserDAO, joined JoinedEventsDAO) *UserRepository {
	return &UserRepository{
		dao:    dao,
		joined: joined,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:      user.Email,
		RollNumber: user.RollNumber,
		Password:   user.Password,
		Name:       user.Name,
		Branch:     user.Branch,
		Year:       user.Year,
		Phone:      user.Phone,
		Role:       user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	u := r.daoToDomain(created)
	u.RegisteredEvents = []uint{}

	return u, nil
}

// FindByID returns the user with the joined-events view filled in.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.withJoinedEvents(ctx, r.daoToDomain(found))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.withJoinedEvents(ctx, r.daoToDomain(found))
}

func (r *UserRepository) FindByEmailOrRollNumber(ctx context.Context, email, rollNumber string) (domain.User, error) {
	found, err := r.dao.FindByEmailOrRollNumber(ctx, email, rollNumber)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmailOrRollNumber -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	columns := map[string]interface{}{}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.Phone != nil {
		columns["phone"] = *update.Phone
	}
	if update.Branch != nil {
		columns["branch"] = *update.Branch
	}

	updated, err := r.dao.UpdateColumns(ctx, id, columns)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateColumns -> %w", err)
	}

	return r.withJoinedEvents(ctx, r.daoToDomain(updated))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if _, err := r.dao.UpdateColumns(ctx, id, map[string]interface{}{"password": hash}); err != nil {
		return fmt.Errorf("r.dao.UpdateColumns -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string) (domain.User, error) {
	updated, err := r.dao.UpdateColumns(ctx, id, map[string]interface{}{"role": role})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateColumns -> %w", err)
	}

	return r.withJoinedEvents(ctx, r.daoToDomain(updated))
}

func (r *UserRepository) withJoinedEvents(ctx context.Context, user domain.User) (domain.User, error) {
	ids, err := r.joined.FindEventIDsByUser(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.joined.FindEventIDsByUser -> %w", err)
	}
	user.RegisteredEvents = ids

	return user, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:         u.ID,
		Email:      u.Email,
		Password:   u.Password,
		Name:       u.Name,
		RollNumber: u.RollNumber,
		Branch:     u.Branch,
		Year:       u.Year,
		Phone:      u.Phone,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = r.daoToDomain(u)
	}

	return out
}
