package phone

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	numberType = reflect.TypeOf((*phonenumbers.PhoneNumber)(nil))
	stringType = reflect.TypeOf("")
)

// Codec converts between phone numbers and their textual form. Decoding uses
// the codec region for numbers written in national format; encoding always
// produces the codec output format. A Codec is immutable and safe for
// concurrent use.
type Codec struct {
	engine Engine
	region string
	format DisplayFormat
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithCodecRegion sets the region national-format input is parsed for.
func WithCodecRegion(region string) CodecOption {
	return func(c *Codec) {
		if region = strings.ToUpper(strings.TrimSpace(region)); region != "" {
			c.region = region
		}
	}
}

// WithOutputFormat sets the format Encode produces.
func WithOutputFormat(format DisplayFormat) CodecOption {
	return func(c *Codec) { c.format = format }
}

// NewCodec creates a codec with region UnknownRegion and format E164 unless
// overridden.
func NewCodec(engine Engine, opts ...CodecOption) *Codec {
	c := &Codec{engine: engine, region: UnknownRegion, format: E164}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Region() string { return c.region }

func (c *Codec) OutputFormat() DisplayFormat { return c.format }

// Encode returns the canonical text of number in the output format. It does
// not validate.
func (c *Codec) Encode(number *phonenumbers.PhoneNumber) string {
	return c.engine.Format(number, c.format)
}

// EncodeValue encodes value, which must be a *phonenumbers.PhoneNumber.
func (c *Codec) EncodeValue(value any) (string, error) {
	number, ok := value.(*phonenumbers.PhoneNumber)
	if !ok || number == nil {
		return "", unsupported("encode", reflect.TypeOf(value), stringType)
	}
	return c.Encode(number), nil
}

// SupportsEncode reports whether EncodeValue accepts value.
func (c *Codec) SupportsEncode(value any) bool {
	number, ok := value.(*phonenumbers.PhoneNumber)
	return ok && number != nil
}

// Decode parses text. Empty input is not an error: it returns nil, nil.
// Unparseable input returns a *DecodeError carrying the engine's reason and
// code. The parsed number is returned as is: type and format constraints are
// ConstraintValidator's job.
func (c *Codec) Decode(text string) (*phonenumbers.PhoneNumber, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	number, err := c.engine.Parse(trimmed, c.region)
	if err != nil {
		return nil, newDecodeError(trimmed, c.region, err)
	}
	return number, nil
}

// DecodeValue decodes data into target, which must be the
// *phonenumbers.PhoneNumber type. data must be a string or nil.
func (c *Codec) DecodeValue(data any, target reflect.Type) (*phonenumbers.PhoneNumber, error) {
	if !c.SupportsDecode(data, target) {
		return nil, unsupported("decode", reflect.TypeOf(data), target)
	}
	if data == nil {
		return nil, nil
	}
	return c.Decode(data.(string))
}

// SupportsDecode reports whether DecodeValue handles the data/target pairing.
func (c *Codec) SupportsDecode(data any, target reflect.Type) bool {
	if target != numberType {
		return false
	}
	if data == nil {
		return true
	}
	_, ok := data.(string)
	return ok
}

func unsupported(op string, from, to reflect.Type) error {
	return &ConfigurationError{
		Err:    ErrUnsupportedType,
		Detail: fmt.Sprintf("phone codec cannot %s %v to %v", op, from, to),
	}
}
