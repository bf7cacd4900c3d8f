// Package validation checks submitted forms against their struct tags and
// reports failures per field, keyed by the field's JSON name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown next to a failing field.
const (
	MsgRequired = "Required"
	MsgEmail    = "Invalid email"
	MsgInvalid  = "Invalid value"
)

// ErrInvalid matches every *Error.
var ErrInvalid = errors.New("validation failed")

// Error carries one message per failing field.
type Error struct {
	Fields map[string]string `json:"fields"`
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, ", "))
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Errors collects field messages before they become an error.
type Errors map[string]string

// Add records msg for field unless the field already failed.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &Error{Fields: map[string]string(e)}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustomValidators registers the dashboard's own tags.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("notblank", notBlank)
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Check validates v and returns the failing fields. The result is never nil.
func Check(v any) Errors {
	errs := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("_", MsgInvalid)
		return errs
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe.Tag()))
	}
	return errs
}

func message(tag string) string {
	switch tag {
	case "required", "notblank":
		return MsgRequired
	case "email":
		return MsgEmail
	default:
		return MsgInvalid
	}
}
