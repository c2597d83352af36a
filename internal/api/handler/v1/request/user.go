package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ecell/portal-api/internal/domain"
)

var errEmptyUpdate = errors.New("at least one field must be provided")

// UpdateProfileRequest only accepts the fields members may edit.
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Branch *string `json:"branch"`
}

func (req *UpdateProfileRequest) Validate() error {
	if req.Name == nil && req.Phone == nil && req.Branch == nil {
		return errEmptyUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.NilOrNotEmpty, validation.Match(phoneExp)),
		validation.Field(&req.Branch, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (req *UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:   trimmed(req.Name),
		Phone:  trimmed(req.Phone),
		Branch: trimmed(req.Branch),
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (req *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In(domain.RoleMember, domain.RoleAdmin)),
	)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)

	return &v
}
