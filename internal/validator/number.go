package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number is a numeric request field. Besides JSON numbers it accepts
// strings holding a number, so "5" decodes as 5. Any other JSON value is
// kept as "not a number" and reported by Validator.Number.
type Number struct {
	Value float64
	set   bool
	bad   bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	n.set = true
	n.bad = false

	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		n.bad = true
		return nil
	}
	n.Value = f
	return nil
}

// Int is n truncated toward zero.
func (n Number) Int() int {
	return int(n.Value)
}

// Number checks a required numeric field against the inclusive range
// [min, max]. With integer set, fractional values are rejected.
func (v *Validator) Number(key string, n Number, min, max float64, integer bool) {
	label := fmt.Sprintf("%q", key)
	path := []string{key}

	switch {
	case !n.set:
		v.add(FieldError{Message: label + " is required", Path: path, Type: "any.required"})
	case n.bad:
		v.add(FieldError{Message: label + " must be a number", Path: path, Type: "number.base"})
	case integer && n.Value != math.Trunc(n.Value):
		v.add(FieldError{Message: label + " must be an integer", Path: path, Type: "number.integer"})
	case n.Value < min:
		v.add(FieldError{Message: numberMin(label, formatFloat(min)), Path: path, Type: "number.min"})
	case n.Value > max:
		v.add(FieldError{Message: numberMax(label, formatFloat(max)), Path: path, Type: "number.max"})
	}
}

// TypeError records a request value whose JSON type does not match the
// field it was decoded into, such as a number sent for a string field.
func (v *Validator) TypeError(err *json.UnmarshalTypeError) {
	path := []string{"value"}
	if err.Field != "" {
		path = strings.Split(err.Field, ".")
	}
	label := fmt.Sprintf("%q", path[len(path)-1])

	kind := reflect.Struct
	if t := err.Type; t != nil {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		kind = t.Kind()
	}

	var message, typ string
	switch kind {
	case reflect.String:
		message, typ = label+" must be a string", "string.base"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		message, typ = label+" must be a number", "number.base"
	case reflect.Bool:
		message, typ = label+" must be a boolean", "boolean.base"
	case reflect.Slice, reflect.Array:
		message, typ = label+" must be an array", "array.base"
	default:
		message, typ = label+" must be of type object", "object.base"
	}

	v.add(FieldError{Message: message, Path: path, Type: typ})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
