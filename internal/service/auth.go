package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/repository"
)

var (
	ErrUserEmailExists      = repository.ErrUserEmailExists
	ErrUserRollNumberExists = repository.ErrUserRollNumberExists
	ErrUserExists           = errors.New("user with this email or roll number already exists")
	ErrWrongPassword        = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByEmailOrRollNumber(ctx context.Context, email, rollNumber string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type AuthService struct {
	repo AuthUserRepository
	cost int
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
		cost: bcrypt.DefaultCost,
	}
}

// Signup creates a member account. Email and roll number must both be unused.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = NormalizeEmail(user.Email)
	user.RollNumber = strings.TrimSpace(user.RollNumber)
	user.Role = domain.RoleMember

	_, err := s.repo.FindByEmailOrRollNumber(ctx, user.Email, user.RollNumber)
	if err == nil {
		return domain.User{}, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmailOrRollNumber -> %w", err)
	}

	hash, err := s.hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hash

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent signup for the same identity.
		if errors.Is(err, repository.ErrUserEmailExists) || errors.Is(err, repository.ErrUserRollNumberExists) {
			return domain.User{}, fmt.Errorf("%w: %w", ErrUserExists, err)
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if !checkPassword(user.Password, password) {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// VerifySecret compares candidate with the stored hash of the user.
func (s *AuthService) VerifySecret(ctx context.Context, userID uint, candidate string) (bool, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return checkPassword(user.Password, candidate), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	ok, err := s.VerifySecret(ctx, userID, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

func checkPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
