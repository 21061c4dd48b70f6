package phone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the stable diagnostic code attached to every validation failure.
// Consumers may match on it programmatically.
const ErrorCode = "INVALID_PHONE_NUMBER"

// LegacyErrorID is the UUID older clients used for the same failure.
const LegacyErrorID = "ca23f4ca-38f4-4325-9bcc-eb570a4abe7f"

var errorNames = map[string]string{
	ErrorCode:     ErrorCode,
	LegacyErrorID: ErrorCode,
}

// ErrorName resolves a code or legacy id to its symbolic name.
func ErrorName(code string) (string, bool) {
	name, ok := errorNames[code]
	return name, ok
}

var (
	// ErrUnknownType is returned for a number type without a label.
	ErrUnknownType = errors.New("unknown phone number type")
	// ErrUnknownFormat is returned for an unrecognised display format.
	ErrUnknownFormat = errors.New("unknown display format")
	// ErrUnsupportedType is returned when a value or target type pairing
	// cannot be handled. It signals a caller or wiring mismatch, not bad data.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ConfigurationError reports a setup mistake. It is fatal and should not be
// swallowed by callers.
type ConfigurationError struct {
	Err    error
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Detail
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParseErrorCode mirrors libphonenumber's NumberParseException codes.
type ParseErrorCode int

const (
	ParseErrorUnknown          ParseErrorCode = -1
	ParseErrorInvalidCountry   ParseErrorCode = 0
	ParseErrorNotANumber       ParseErrorCode = 1
	ParseErrorTooShortAfterIDD ParseErrorCode = 2
	ParseErrorTooShortNSN      ParseErrorCode = 3
	ParseErrorTooLong          ParseErrorCode = 4
)

func (c ParseErrorCode) String() string {
	switch c {
	case ParseErrorInvalidCountry:
		return "INVALID_COUNTRY_CODE"
	case ParseErrorNotANumber:
		return "NOT_A_NUMBER"
	case ParseErrorTooShortAfterIDD:
		return "TOO_SHORT_AFTER_IDD"
	case ParseErrorTooShortNSN:
		return "TOO_SHORT_NSN"
	case ParseErrorTooLong:
		return "TOO_LONG"
	default:
		return "UNKNOWN"
	}
}

// ParseError is the engine's native parse failure.
type ParseError struct {
	Reason string
	Code   ParseErrorCode
	Err    error
}

func (e *ParseError) Error() string {
	return e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError is returned by Codec.Decode when text cannot be parsed for the
// configured region. Reason and Code carry the engine's diagnosis.
type DecodeError struct {
	Input  string
	Region string
	Reason string
	Code   ParseErrorCode
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode phone number %q (region %s): %s", e.Input, e.Region, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(input, region string, err error) *DecodeError {
	decodeErr := &DecodeError{Input: input, Region: region, Err: err, Code: ParseErrorUnknown, Reason: err.Error()}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		decodeErr.Reason = parseErr.Reason
		decodeErr.Code = parseErr.Code
	}
	return decodeErr
}

// Cause is the internal reason a value failed validation. It is kept for
// logging only; every cause surfaces under the same ErrorCode.
type Cause string

const (
	CauseParse   Cause = "parse"
	CauseFormat  Cause = "format"
	CauseInvalid Cause = "invalid"
	CauseType    Cause = "type"
)

// Violation is a failed validation.
type Violation struct {
	Code       string
	Message    string
	Parameters map[string]string
	Cause      Cause
	Value      string
}

func (v *Violation) Error() string {
	return v.Render()
}

// Render substitutes the violation parameters into the message.
func (v *Violation) Render() string {
	if len(v.Parameters) == 0 {
		return v.Message
	}
	pairs := make([]string, 0, len(v.Parameters)*2)
	for key, value := range v.Parameters {
		pairs = append(pairs, key, value)
	}
	return strings.NewReplacer(pairs...).Replace(v.Message)
}
