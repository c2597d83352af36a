package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{6,}$`
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	phoneExp    = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,18}[0-9]$`)

	errInvalidPassword         = errors.New("the password must be at least 6 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
	RollNumber      string `json:"roll_number"`
	Branch          string `json:"branch"`
	Year            int    `json:"year"`
	Phone           string `json:"phone"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.RollNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Branch, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Year, validation.Required, validation.Min(1), validation.Max(4)),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
	)
	if err != nil {
		return err
	}

	if err = validatePassword(req.Password); err != nil {
		return err
	}

	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.NewPassword)
}

func validatePassword(password string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
