// Package phone provides phone number validation and normalization.
// This is part of the platform layer and contains no business logic.
//
// Parsing, formatting and classification are delegated to an Engine
// (libphonenumber via github.com/nyaruka/phonenumbers by default). The package
// owns the decisions around it: which types a number may have, which region it
// is parsed for, and how failures are reported.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NumberType is a numbering-plan category a constraint can accept.
type NumberType string

const (
	Any            NumberType = "any"
	FixedLine      NumberType = "fixed_line"
	Mobile         NumberType = "mobile"
	Pager          NumberType = "pager"
	PersonalNumber NumberType = "personal_number"
	PremiumRate    NumberType = "premium_rate"
	SharedCost     NumberType = "shared_cost"
	TollFree       NumberType = "toll_free"
	UAN            NumberType = "uan"
	VoIP           NumberType = "voip"
	Voicemail      NumberType = "voicemail"
)

// AllNumberTypes lists every NumberType in declaration order.
var AllNumberTypes = []NumberType{
	Any, FixedLine, Mobile, Pager, PersonalNumber, PremiumRate,
	SharedCost, TollFree, UAN, VoIP, Voicemail,
}

var typeLabels = map[NumberType]string{
	Any:            "phone number",
	FixedLine:      "fixed-line number",
	Mobile:         "mobile number",
	Pager:          "pager number",
	PersonalNumber: "personal number",
	PremiumRate:    "premium-rate number",
	SharedCost:     "shared-cost number",
	TollFree:       "toll-free number",
	UAN:            "UAN",
	VoIP:           "VoIP number",
	Voicemail:      "voicemail access number",
}

// Label returns the human-readable name used in diagnostics.
func (t NumberType) Label() (string, error) {
	label, ok := typeLabels[t]
	if !ok {
		return "", &ConfigurationError{
			Err:    ErrUnknownType,
			Detail: fmt.Sprintf("unknown phone number type %q", string(t)),
		}
	}
	return label, nil
}

// Valid reports whether t is one of the known types.
func (t NumberType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t NumberType) String() string {
	return string(t)
}

// ParseNumberType maps a configuration value such as "mobile" or "TOLL_FREE"
// to a NumberType.
func ParseNumberType(value string) (NumberType, error) {
	t := NumberType(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", &ConfigurationError{
			Err:    ErrUnknownType,
			Detail: fmt.Sprintf("unknown phone number type %q", value),
		}
	}
	return t, nil
}

// engineTypes lists the engine classifications that satisfy each type.
// FIXED_LINE_OR_MOBILE is returned for regions where the two ranges overlap,
// so it counts for both.
var engineTypes = map[NumberType][]phonenumbers.PhoneNumberType{
	FixedLine:      {phonenumbers.FIXED_LINE, phonenumbers.FIXED_LINE_OR_MOBILE},
	Mobile:         {phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE},
	Pager:          {phonenumbers.PAGER},
	PersonalNumber: {phonenumbers.PERSONAL_NUMBER},
	PremiumRate:    {phonenumbers.PREMIUM_RATE},
	SharedCost:     {phonenumbers.SHARED_COST},
	TollFree:       {phonenumbers.TOLL_FREE},
	UAN:            {phonenumbers.UAN},
	VoIP:           {phonenumbers.VOIP},
	Voicemail:      {phonenumbers.VOICEMAIL},
}

// Matches reports whether an engine classification satisfies t.
func (t NumberType) Matches(classified phonenumbers.PhoneNumberType) bool {
	if t == Any {
		return true
	}
	for _, candidate := range engineTypes[t] {
		if candidate == classified {
			return true
		}
	}
	return false
}

// TypeOf maps an engine classification back to the closest NumberType.
// FIXED_LINE_OR_MOBILE reports Mobile; UNKNOWN reports false.
func TypeOf(classified phonenumbers.PhoneNumberType) (NumberType, bool) {
	switch classified {
	case phonenumbers.FIXED_LINE:
		return FixedLine, true
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return Mobile, true
	case phonenumbers.PAGER:
		return Pager, true
	case phonenumbers.PERSONAL_NUMBER:
		return PersonalNumber, true
	case phonenumbers.PREMIUM_RATE:
		return PremiumRate, true
	case phonenumbers.SHARED_COST:
		return SharedCost, true
	case phonenumbers.TOLL_FREE:
		return TollFree, true
	case phonenumbers.UAN:
		return UAN, true
	case phonenumbers.VOIP:
		return VoIP, true
	case phonenumbers.VOICEMAIL:
		return Voicemail, true
	default:
		return "", false
	}
}
