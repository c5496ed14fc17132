package credential

import (
	"errors"  // Error inspection
	"reflect" // Struct field tags
	"strings" // Tag parsing

	"github.com/go-playground/validator/v10" // Struct validation

	"tube_places/internal/domain" // Domain models and errors
)

// userFields is the validated projection of a user.
type userFields struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email_length,email_shape"`
	Password string `json:"password" validate:"required"`
}

// Validator checks user records against a Policy.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the policy predicates as validator tags.
func NewValidator(p Policy) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return p.Email(fl.Field().String())
	})
	_ = v.RegisterValidation("email_length", func(fl validator.FieldLevel) bool {
		n := len(fl.Field().String())
		return n >= p.EmailMinLength && n <= p.EmailMaxLength
	})
	_ = v.RegisterValidation("password_length", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes // bcrypt input limit, whatever the policy
	})
	_ = v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return p.Password(fl.Field().String())
	})
	return &Validator{validate: v} // Return the configured validator
}

// ValidateFields checks presence of name, username, email and password and
// the email format. The password complexity rule runs only when the
// password was set since the last save, since a stored hash is not subject
// to it. Failures are reported as a *domain.ValidationError.
func (v *Validator) ValidateFields(u *domain.User) error {
	var fields []domain.FieldError

	err := v.validate.Struct(userFields{
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	})
	fields = append(fields, fieldErrors(err, "")...) // Presence and email rules

	if u.PasswordModified() && u.Password != "" {
		fields = append(fields, fieldErrors(v.validate.Var(u.Password, "password_length,password_policy"), "password")...)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// fieldErrors converts validator output. name overrides the field name for
// Var checks, which carry none.
func fieldErrors(err error, name string) []domain.FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: name, Reason: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		out = append(out, domain.FieldError{Field: field, Reason: fe.Tag()})
	}
	return out
}
