// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"phonenumber_service/platform/phone"
)

// PhoneTag is the generic phone tag. Its optional param is the default
// region: `validate:"phone"` or `validate:"phone=GB"`.
const PhoneTag = "phone"

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v     *validator.Validate
	phone *phone.ConstraintValidator

	mu          sync.RWMutex
	constraints map[string]phone.Constraint
}

// FieldViolation is one failed field in a struct or variable validation.
type FieldViolation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// New creates a new Validator instance with the phone tag registered.
// Domain-specific validation rules can be registered using RegisterValidation
// or RegisterConstraint.
func New(cv *phone.ConstraintValidator) *Validator {
	val := &Validator{
		v:           validator.New(),
		phone:       cv,
		constraints: make(map[string]phone.Constraint),
	}
	// The tag is fixed and the function is non-nil, so registration cannot fail.
	_ = val.v.RegisterValidation(PhoneTag, val.validatePhoneTag)
	return val
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// RegisterConstraint binds c to tag so struct fields can use it directly:
// `validate:"uk_mobile"`. The constraint is checked first; a bad constraint
// is a configuration error.
func (val *Validator) RegisterConstraint(tag string, c phone.Constraint) error {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == PhoneTag {
		return fmt.Errorf("invalid phone constraint tag %q", tag)
	}
	if err := c.Check(); err != nil {
		return err
	}

	if err := val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return val.validateField(fl, c)
	}); err != nil {
		return err
	}

	val.mu.Lock()
	val.constraints[tag] = c
	val.mu.Unlock()
	return nil
}

func (val *Validator) validatePhoneTag(fl validator.FieldLevel) bool {
	return val.validateField(fl, phone.NewConstraint(phone.WithDefaultRegion(fl.Param())))
}

// validateField only handles string fields; go-playground does not run
// custom tags on struct-typed fields.
func (val *Validator) validateField(fl validator.FieldLevel, c phone.Constraint) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	var parent any
	if p := fl.Parent(); p.IsValid() && p.CanInterface() {
		parent = p.Interface()
	}

	violation, err := val.phone.Validate(field.String(), c, parent)
	return err == nil && violation == nil
}

// FieldViolations flattens a validation error into per-field diagnostics.
// Phone tags report phone.ErrorCode and the constraint message; other tags
// report the validator's own message. A nil or foreign error yields nil.
func (val *Validator) FieldViolations(err error) []FieldViolation {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	result := make([]FieldViolation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		item := FieldViolation{Field: fe.Field(), Tag: fe.Tag(), Message: fe.Error()}
		if c, ok := val.constraintFor(fe); ok {
			item.Code = phone.ErrorCode
			item.Message = phoneMessage(c, fe.Value())
		}
		result = append(result, item)
	}
	return result
}

func (val *Validator) constraintFor(fe validator.FieldError) (phone.Constraint, bool) {
	if fe.Tag() == PhoneTag {
		return phone.NewConstraint(phone.WithDefaultRegion(fe.Param())), true
	}
	val.mu.RLock()
	defer val.mu.RUnlock()
	c, ok := val.constraints[fe.Tag()]
	return c, ok
}

func phoneMessage(c phone.Constraint, value any) string {
	labels, _ := c.TypeLabels()
	violation := phone.Violation{
		Message: c.Message(),
		Parameters: map[string]string{
			"{{ type }}":  strings.Join(labels, ", "),
			"{{ value }}": fmt.Sprint(value),
		},
	}
	return violation.Render()
}
