package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidUserPayload = errors.New("invalid user payload")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrUnknownField       = errors.New("unknown field")
)

// PayloadError carries the per-field reasons a payload was rejected.
type PayloadError struct {
	Err     error
	Details []string
}

func (e *PayloadError) Error() string {
	if len(e.Details) == 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func newPayloadError(err error, details ...string) error {
	return &PayloadError{Err: err, Details: details}
}

// Details returns the field details of a PayloadError, if err is one.
func Details(err error) []string {
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return payloadErr.Details
	}
	return nil
}

var registerTagNames sync.Once

// useJSONNames makes validator report fields by their json or form name.
func useJSONNames() {
	registerTagNames.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.Split(field.Tag.Get(tag), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

// validate runs the binding tags of req.
func validate(req any, kind error) error {
	useJSONNames()
	return toPayloadError(binding.Validator.ValidateStruct(req), kind)
}

// BindQuery binds and validates the query string of c into obj.
func BindQuery(c *gin.Context, obj any) error {
	useJSONNames()
	return toPayloadError(c.ShouldBindQuery(obj), ErrInvalidQuery)
}

func toPayloadError(err error, kind error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newPayloadError(kind, err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describe(fe))
	}
	return newPayloadError(kind, details...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// DecodeJSON decodes a JSON object body into req and also returns the raw
// fields, so callers can tell an explicit null from an absent key. Keys not in
// allowed are rejected with ErrUnknownField.
func DecodeJSON(body []byte, req any, allowed []string, kind error) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, newPayloadError(kind, "body must be a JSON object")
	}

	var unknown []string
	for key := range raw {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, newPayloadError(ErrUnknownField, unknown...)
	}

	if err := json.Unmarshal(body, req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newPayloadError(kind, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
		}
		return nil, newPayloadError(kind, err.Error())
	}
	return raw, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// nonNullable reports the fields that are present but null even though the
// column cannot hold null.
func nonNullable(raw map[string]json.RawMessage, fields ...string) []string {
	var details []string
	for _, field := range fields {
		if value, ok := raw[field]; ok && isJSONNull(value) {
			details = append(details, field+" cannot be null")
		}
	}
	return details
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
