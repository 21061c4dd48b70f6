package phonecheck

// ValidateRequest checks Value against a named constraint or, when
// Constraint is empty, against an ad hoc one built from the other fields.
// Context is the object the value belongs to; RegionPath is read from it.
type ValidateRequest struct {
	Value         string         `json:"value" validate:"max=64"`
	Constraint    string         `json:"constraint,omitempty" validate:"omitempty,max=64"`
	Types         []string       `json:"types,omitempty" validate:"omitempty,max=11,dive,oneof=any fixed_line mobile pager personal_number premium_rate shared_cost toll_free uan voip voicemail"`
	DefaultRegion string         `json:"defaultRegion,omitempty" validate:"omitempty,min=2,max=3,alphanum"`
	RegionPath    string         `json:"regionPath,omitempty" validate:"omitempty,max=128"`
	Format        string         `json:"format,omitempty" validate:"omitempty,oneof=e164 international national rfc3966"`
	Message       string         `json:"message,omitempty" validate:"omitempty,max=256"`
	Context       map[string]any `json:"context,omitempty"`
}

// ValidateResponse reports the outcome. Code is set only on failure and is
// always the same stable value.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NormalizeRequest decodes Value for Region (or the configured default) and
// re-encodes it in Format (or the configured default).
type NormalizeRequest struct {
	Value  *string `json:"value" validate:"omitempty,max=64"`
	Region string  `json:"region,omitempty" validate:"omitempty,min=2,max=3,alphanum"`
	Format string  `json:"format,omitempty" validate:"omitempty,oneof=e164 international national rfc3966"`
}

// NormalizeResponse holds the canonical form. Number is null for empty input.
type NormalizeResponse struct {
	Number *string `json:"number"`
	Type   string  `json:"type,omitempty"`
	Region string  `json:"region,omitempty"`
	Valid  bool    `json:"valid"`
}

// ConstraintSummary describes a configured constraint.
type ConstraintSummary struct {
	Name          string   `json:"name"`
	Types         []string `json:"types"`
	DefaultRegion string   `json:"defaultRegion,omitempty"`
	RegionPath    string   `json:"regionPath,omitempty"`
	Format        string   `json:"format,omitempty"`
	Message       string   `json:"message"`
}
