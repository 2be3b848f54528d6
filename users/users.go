package users

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is the identity record held by the session. Fields other than the
// role are whatever the backend chooses to return; at least one of
// Username or Email is always present.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
}

// DisplayName picks the friendliest identifier available
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// Valid reports whether the record identifies anyone at all
func (u *User) Valid() bool {
	return u != nil && (u.ID != "" || u.Username != "" || u.Email != "")
}

// Credentials are submitted by the login form
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// SignupRequest carries the registration form fields
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=manager developer"`
}

func (s SignupRequest) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fieldErrors(err)
	}
	return ValidatePasswordStrength(s.Password)
}

// Credentials returns the login credentials matching this registration
func (s SignupRequest) Credentials() Credentials {
	return Credentials{Email: s.Email, Password: s.Password}
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// fieldErrors turns validator output into a single readable message
func fieldErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "email":
		return fmt.Errorf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "max":
		return fmt.Errorf("%s must be between 3 and 32 characters", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
