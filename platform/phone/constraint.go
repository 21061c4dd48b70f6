package phone

import (
	"fmt"
	"strings"

	"phonenumber_service/platform/logger"
)

const (
	genericMessage  = "This value is not a valid number."
	singularMessage = "This value is not a valid %s."
)

// Constraint describes which phone numbers are acceptable: the accepted
// types, how the region is chosen and, optionally, the exact textual form the
// input must already be in. A Constraint is immutable once built and safe for
// concurrent use.
type Constraint struct {
	name          string
	types         []NumberType
	defaultRegion string
	regionPath    string
	format        DisplayFormat
	hasFormat     bool
	message       string
	groups        []string
	payload       any
	log           *logger.Logger
}

// ConstraintOption configures a Constraint.
type ConstraintOption func(*Constraint)

// WithName labels the constraint in logs and metrics.
func WithName(name string) ConstraintOption {
	return func(c *Constraint) { c.name = strings.TrimSpace(name) }
}

// WithTypes adds accepted types. Empty values are ignored.
func WithTypes(types ...NumberType) ConstraintOption {
	return func(c *Constraint) {
		for _, t := range types {
			if t != "" {
				c.types = append(c.types, t)
			}
		}
	}
}

// WithDefaultRegion sets the region used when the validated object supplies none.
func WithDefaultRegion(region string) ConstraintOption {
	return func(c *Constraint) { c.defaultRegion = strings.ToUpper(strings.TrimSpace(region)) }
}

// WithRegionPath names the sibling field holding the region, e.g. "country"
// or "address.country".
func WithRegionPath(path string) ConstraintOption {
	return func(c *Constraint) { c.regionPath = strings.TrimSpace(path) }
}

// WithFormat requires the input to already equal its canonical form in format.
func WithFormat(format DisplayFormat) ConstraintOption {
	return func(c *Constraint) {
		c.format = format
		c.hasFormat = true
	}
}

// WithMessage overrides the diagnostic. Placeholders ({{ type }}, {{ value }})
// are left for the caller to substitute.
func WithMessage(message string) ConstraintOption {
	return func(c *Constraint) { c.message = message }
}

// WithGroups attaches validation groups. They are passed through untouched.
func WithGroups(groups ...string) ConstraintOption {
	return func(c *Constraint) { c.groups = append(c.groups, groups...) }
}

// WithPayload attaches opaque caller data.
func WithPayload(payload any) ConstraintOption {
	return func(c *Constraint) { c.payload = payload }
}

// WithLogger sets where deprecation notices go.
func WithLogger(log *logger.Logger) ConstraintOption {
	return func(c *Constraint) { c.log = log }
}

// NewConstraint builds a Constraint. It never fails: without types the
// constraint accepts Any. Duplicate types are dropped, order is kept.
func NewConstraint(opts ...ConstraintOption) Constraint {
	var c Constraint
	for _, opt := range opts {
		opt(&c)
	}

	c.types = dedupeTypes(c.types)
	if len(c.types) == 0 {
		c.types = []NumberType{Any}
	}
	if c.log == nil {
		c.log = logger.Default()
	}
	return c
}

func dedupeTypes(types []NumberType) []NumberType {
	seen := make(map[NumberType]struct{}, len(types))
	result := make([]NumberType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}

// Name returns the constraint label, if any.
func (c Constraint) Name() string { return c.name }

// AcceptedTypes returns the accepted types in configuration order.
func (c Constraint) AcceptedTypes() []NumberType {
	return append([]NumberType(nil), c.types...)
}

// Type returns the first accepted type.
//
// Deprecated: Use AcceptedTypes. Every call logs a deprecation warning.
func (c Constraint) Type() (NumberType, bool) {
	log := c.log
	if log == nil {
		log = logger.Default()
	}
	log.Deprecated("phone.Constraint.Type", "phone.Constraint.AcceptedTypes")

	if len(c.types) == 0 {
		return "", false
	}
	return c.types[0], true
}

// TypeLabels returns the label of every accepted type. An unknown type is a
// configuration error.
func (c Constraint) TypeLabels() ([]string, error) {
	labels := make([]string, 0, len(c.types))
	for _, t := range c.types {
		label, err := t.Label()
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// Message returns the configured message, or one derived from the accepted
// types. It panics when the single accepted type has no label; Check reports
// that case as an error.
func (c Constraint) Message() string {
	if c.message != "" {
		return c.message
	}
	if len(c.types) != 1 {
		return genericMessage
	}
	label, err := c.types[0].Label()
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf(singularMessage, label)
}

// Check reports configuration errors: accepted types without a label and
// unknown formats.
func (c Constraint) Check() error {
	if _, err := c.TypeLabels(); err != nil {
		return err
	}
	if c.hasFormat && !c.format.Valid() {
		return &ConfigurationError{Err: ErrUnknownFormat, Detail: fmt.Sprintf("unknown display format %d", int(c.format))}
	}
	return nil
}

func (c Constraint) DefaultRegion() string { return c.defaultRegion }

func (c Constraint) RegionPath() string { return c.regionPath }

// Format returns the required canonical format, if one is set.
func (c Constraint) Format() (DisplayFormat, bool) { return c.format, c.hasFormat }

func (c Constraint) Groups() []string { return append([]string(nil), c.groups...) }

func (c Constraint) Payload() any { return c.payload }

// ResolveRegion picks the region to parse with: the sibling value when a
// region path is configured and the value is non-empty, then the default
// region, then UnknownRegion.
func (c Constraint) ResolveRegion(sibling string) string {
	if c.regionPath != "" {
		if region := strings.TrimSpace(sibling); region != "" {
			return strings.ToUpper(region)
		}
	}
	if c.defaultRegion != "" {
		return c.defaultRegion
	}
	return UnknownRegion
}

// ConstraintFromOptions builds a Constraint from the associative form used by
// declarative configs. "type" may be a single value or a list; "value" is an
// alias for "format". Unknown keys are ignored.
func ConstraintFromOptions(options map[string]any, extra ...ConstraintOption) (Constraint, error) {
	var opts []ConstraintOption

	if raw, ok := options["type"]; ok && raw != nil {
		types, err := toNumberTypes(raw)
		if err != nil {
			return Constraint{}, err
		}
		opts = append(opts, WithTypes(types...))
	}

	formatRaw, ok := options["format"]
	if !ok {
		formatRaw, ok = options["value"]
	}
	if ok && formatRaw != nil {
		format, err := toDisplayFormat(formatRaw)
		if err != nil {
			return Constraint{}, err
		}
		opts = append(opts, WithFormat(format))
	}

	for key, apply := range map[string]func(string) ConstraintOption{
		"defaultRegion": WithDefaultRegion,
		"regionPath":    WithRegionPath,
		"message":       WithMessage,
		"name":          WithName,
	} {
		raw, ok := options[key]
		if !ok || raw == nil {
			continue
		}
		text, isString := raw.(string)
		if !isString {
			return Constraint{}, optionTypeError(key, raw)
		}
		opts = append(opts, apply(text))
	}

	if raw, ok := options["groups"]; ok && raw != nil {
		groups, err := toStrings("groups", raw)
		if err != nil {
			return Constraint{}, err
		}
		opts = append(opts, WithGroups(groups...))
	}

	if raw, ok := options["payload"]; ok {
		opts = append(opts, WithPayload(raw))
	}

	return NewConstraint(append(opts, extra...)...), nil
}

func toNumberTypes(raw any) ([]NumberType, error) {
	switch typed := raw.(type) {
	case NumberType:
		return parseTypeValues([]string{string(typed)})
	case []NumberType:
		values := make([]string, 0, len(typed))
		for _, t := range typed {
			values = append(values, string(t))
		}
		return parseTypeValues(values)
	default:
		values, err := toStrings("type", raw)
		if err != nil {
			return nil, err
		}
		return parseTypeValues(values)
	}
}

func parseTypeValues(values []string) ([]NumberType, error) {
	types := make([]NumberType, 0, len(values))
	for _, value := range values {
		t, err := ParseNumberType(value)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func toDisplayFormat(raw any) (DisplayFormat, error) {
	switch typed := raw.(type) {
	case DisplayFormat:
		if !typed.Valid() {
			return 0, &ConfigurationError{Err: ErrUnknownFormat, Detail: fmt.Sprintf("unknown display format %d", int(typed))}
		}
		return typed, nil
	case string:
		return ParseDisplayFormat(typed)
	default:
		return 0, optionTypeError("format", raw)
	}
}

func toStrings(key string, raw any) ([]string, error) {
	switch typed := raw.(type) {
	case string:
		return []string{typed}, nil
	case []string:
		return typed, nil
	case []any:
		values := make([]string, 0, len(typed))
		for _, item := range typed {
			text, ok := item.(string)
			if !ok {
				return nil, optionTypeError(key, item)
			}
			values = append(values, text)
		}
		return values, nil
	default:
		return nil, optionTypeError(key, raw)
	}
}

func optionTypeError(key string, value any) error {
	return &ConfigurationError{
		Err:    ErrUnsupportedType,
		Detail: fmt.Sprintf("option %q: unsupported value of type %T", key, value),
	}
}
