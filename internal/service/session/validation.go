package session

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// RegisterForm данные формы регистрации
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// validateLoginInput валидирует форму входа
func validateLoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

// validateRegisterInput валидирует форму регистрации
func validateRegisterInput(form RegisterForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(form.Phone) == "" {
		return fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	if strings.TrimSpace(form.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailPattern.MatchString(form.Email) {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if len(form.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, domain.MinPasswordLength)
	}
	if form.Password != form.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	return nil
}
