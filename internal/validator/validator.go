package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one failed rule. Path is the list of keys leading
// to the offending value in the request body.
type FieldError struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
	Type    string   `json:"type"`
}

// Validator collects field errors in the order they were found.
type Validator struct {
	Errors []FieldError
}

func New() *Validator {
	return &Validator{Errors: []FieldError{}}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// First returns the message of the first error, or "" when valid.
func (v *Validator) First() string {
	if v.Valid() {
		return ""
	}
	return v.Errors[0].Message
}

// AddError records message for key unless key already has an error.
func (v *Validator) AddError(key, message string) {
	v.add(FieldError{Message: message, Path: []string{key}, Type: "any.custom"})
}

// Struct checks s against its `validate` struct tags and records one error
// per failing field.
func (v *Validator) Struct(s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var errs playground.ValidationErrors
	if !errors.As(err, &errs) {
		v.AddError("value", err.Error())
		return
	}

	for _, fe := range errs {
		v.add(translate(fe))
	}
}

func (v *Validator) add(fe FieldError) {
	key := strings.Join(fe.Path, ".")
	for _, existing := range v.Errors {
		if strings.Join(existing.Path, ".") == key {
			return
		}
	}
	v.Errors = append(v.Errors, fe)
}

func translate(fe playground.FieldError) FieldError {
	path := strings.Split(fe.Namespace(), ".")[1:]
	if len(path) == 0 {
		path = []string{fe.Field()}
	}
	label := fmt.Sprintf("%q", fe.Field())
	isString := fe.Kind() == reflect.String

	var message, kind string
	switch {
	case fe.Tag() == "required":
		message, kind = label+" is required", "any.required"
	case fe.Tag() == "min" && isString:
		message, kind = fmt.Sprintf("%s length must be at least %s characters long", label, fe.Param()), "string.min"
	case fe.Tag() == "max" && isString:
		message, kind = fmt.Sprintf("%s length must be less than or equal to %s characters long", label, fe.Param()), "string.max"
	case fe.Tag() == "min":
		message, kind = numberMin(label, fe.Param()), "number.min"
	case fe.Tag() == "max":
		message, kind = numberMax(label, fe.Param()), "number.max"
	case fe.Tag() == "email":
		message, kind = label+" must be a valid email", "string.email"
	case fe.Tag() == "mongodb":
		message, kind = label+" must be a valid id", "string.objectId"
	default:
		message, kind = fmt.Sprintf("%s failed the %s rule", label, fe.Tag()), "any."+fe.Tag()
	}

	return FieldError{Message: message, Path: path, Type: kind}
}

func numberMin(label, limit string) string {
	return fmt.Sprintf("%s must be greater than or equal to %s", label, limit)
}

func numberMax(label, limit string) string {
	return fmt.Sprintf("%s must be less than or equal to %s", label, limit)
}
