package phone

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"phonenumber_service/platform/logger"
)

// ConstraintValidator checks candidate values against a Constraint.
type ConstraintValidator struct {
	engine Engine
	log    *logger.Logger
}

// NewConstraintValidator creates a validator on top of engine. A nil log
// falls back to logger.Default.
func NewConstraintValidator(engine Engine, log *logger.Logger) *ConstraintValidator {
	if log == nil {
		log = logger.Default()
	}
	return &ConstraintValidator{engine: engine, log: log}
}

// Validate checks value against c. object is the value under validation that
// holds value; it is only read when c has a region path.
//
// nil and empty strings pass: requiring a value is left to the caller. A
// failure is returned as a *Violation; the error result is reserved for
// configuration problems such as an unsupported value type.
func (v *ConstraintValidator) Validate(value any, c Constraint, object any) (*Violation, error) {
	labels, err := c.TypeLabels()
	if err != nil {
		return nil, err
	}

	var (
		number *phonenumbers.PhoneNumber
		text   string
		region string
	)

	switch typed := value.(type) {
	case nil:
		return nil, nil
	case *phonenumbers.PhoneNumber:
		if typed == nil {
			return nil, nil
		}
		number = typed
	case string:
		text = typed
	case *string:
		if typed == nil {
			return nil, nil
		}
		text = *typed
	case fmt.Stringer:
		if rv := reflect.ValueOf(typed); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil
		}
		text = typed.String()
	default:
		return nil, &ConfigurationError{
			Err:    ErrUnsupportedType,
			Detail: fmt.Sprintf("cannot validate value of type %T as a phone number", value),
		}
	}

	if number == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}

		region = v.region(c, object)
		parsed, err := v.engine.Parse(text, region)
		if err != nil {
			return v.violation(c, labels, text, region, CauseParse), nil
		}

		if format, ok := c.Format(); ok && text != v.engine.Format(parsed, format) {
			return v.violation(c, labels, text, region, CauseFormat), nil
		}
		number = parsed
	} else {
		text = v.engine.Format(number, E164)
	}

	if !v.engine.IsValid(number) {
		return v.violation(c, labels, text, region, CauseInvalid), nil
	}

	classified := v.engine.Classify(number)
	for _, accepted := range c.types {
		if accepted.Matches(classified) {
			return nil, nil
		}
	}
	return v.violation(c, labels, text, region, CauseType), nil
}

func (v *ConstraintValidator) region(c Constraint, object any) string {
	if c.RegionPath() == "" {
		return c.ResolveRegion("")
	}
	sibling, _ := LookupPath(object, c.RegionPath())
	return c.ResolveRegion(sibling)
}

func (v *ConstraintValidator) violation(c Constraint, labels []string, value, region string, cause Cause) *Violation {
	v.log.ValidationFailed(c.Name(), string(cause), region)

	return &Violation{
		Code:    ErrorCode,
		Message: c.Message(),
		Parameters: map[string]string{
			"{{ type }}":  strings.Join(labels, ", "),
			"{{ value }}": value,
		},
		Cause: cause,
		Value: value,
	}
}
