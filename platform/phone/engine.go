package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// UnknownRegion is the region used when none is configured. National-format
// numbers do not parse for it; international ones do.
const UnknownRegion = "ZZ"

// Engine is the numbering-plan capability the package builds on.
type Engine interface {
	// Parse reads text for region. Failures are *ParseError.
	Parse(text, region string) (*phonenumbers.PhoneNumber, error)
	Format(number *phonenumbers.PhoneNumber, format DisplayFormat) string
	Classify(number *phonenumbers.PhoneNumber) phonenumbers.PhoneNumberType
	IsValid(number *phonenumbers.PhoneNumber) bool
	Region(number *phonenumbers.PhoneNumber) string
}

// LibPhoneNumber is the Engine backed by github.com/nyaruka/phonenumbers.
type LibPhoneNumber struct{}

// NewEngine returns the default libphonenumber engine.
func NewEngine() *LibPhoneNumber {
	return &LibPhoneNumber{}
}

func (LibPhoneNumber) Parse(text, region string) (*phonenumbers.PhoneNumber, error) {
	number, err := phonenumbers.Parse(text, strings.ToUpper(region))
	if err != nil {
		return nil, &ParseError{Reason: err.Error(), Code: parseErrorCode(err), Err: err}
	}
	return number, nil
}

func (LibPhoneNumber) Format(number *phonenumbers.PhoneNumber, format DisplayFormat) string {
	return phonenumbers.Format(number, format.engineFormat())
}

func (LibPhoneNumber) Classify(number *phonenumbers.PhoneNumber) phonenumbers.PhoneNumberType {
	return phonenumbers.GetNumberType(number)
}

func (LibPhoneNumber) IsValid(number *phonenumbers.PhoneNumber) bool {
	return phonenumbers.IsValidNumber(number)
}

func (LibPhoneNumber) Region(number *phonenumbers.PhoneNumber) string {
	return phonenumbers.GetRegionCodeForNumber(number)
}

func parseErrorCode(err error) ParseErrorCode {
	switch {
	case errors.Is(err, phonenumbers.ErrInvalidCountryCode):
		return ParseErrorInvalidCountry
	case errors.Is(err, phonenumbers.ErrNotANumber):
		return ParseErrorNotANumber
	case errors.Is(err, phonenumbers.ErrTooShortAfterIDD):
		return ParseErrorTooShortAfterIDD
	case errors.Is(err, phonenumbers.ErrTooShortNSN):
		return ParseErrorTooShortNSN
	case errors.Is(err, phonenumbers.ErrNumTooLong):
		return ParseErrorTooLong
	default:
		return ParseErrorUnknown
	}
}

var _ Engine = LibPhoneNumber{}
