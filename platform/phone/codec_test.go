package phone

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nyaruka/phonenumbers"
)

func TestDecodeEmptyInput(t *testing.T) {
	codec := NewCodec(NewEngine())

	for _, input := range []string{"", "   ", "\t\n"} {
		number, err := codec.Decode(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if number != nil {
			t.Fatalf("%q: expected nil number, got %v", input, number)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	engine := NewEngine()
	inputs := []string{
		"+44 20 7031 3000",
		" 07400 123456 ",
		"tel:+44-7400-123456",
		"+1 (800) 253-0000",
		"+31 20 794 2000",
	}

	for _, format := range []DisplayFormat{E164, International} {
		codec := NewCodec(engine, WithCodecRegion("gb"), WithOutputFormat(format))
		for _, input := range inputs {
			t.Run(format.String()+"/"+input, func(t *testing.T) {
				number, err := codec.Decode(input)
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				encoded := codec.Encode(number)

				again, err := codec.Decode(encoded)
				if err != nil {
					t.Fatalf("decode canonical form %q: %v", encoded, err)
				}
				if got := codec.Encode(again); got != encoded {
					t.Fatalf("expected %q to be stable, got %q", encoded, got)
				}
				if again.GetCountryCode() != number.GetCountryCode() || again.GetNationalNumber() != number.GetNationalNumber() {
					t.Fatalf("expected equal numbers, got %v and %v", number, again)
				}
				if engine.Classify(again) != engine.Classify(number) || engine.Region(again) != engine.Region(number) {
					t.Fatalf("expected classification and region to survive the round trip")
				}
			})
		}
	}
}

func TestDecodeNationalToE164(t *testing.T) {
	codec := NewCodec(NewEngine(), WithCodecRegion("gb"))

	number, err := codec.Decode(" 07400 123456 ")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := codec.Encode(number); got != "+447400123456" {
		t.Fatalf("expected +447400123456, got %q", got)
	}
}

func TestEncodeOutputFormats(t *testing.T) {
	engine := NewEngine()
	number, err := phonenumbers.Parse("+442070313000", UnknownRegion)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := map[DisplayFormat]string{
		E164:          "+442070313000",
		International: "+44 20 7031 3000",
		National:      "020 7031 3000",
		RFC3966:       "tel:+44-20-7031-3000",
	}
	for format, want := range cases {
		if got := NewCodec(engine, WithOutputFormat(format)).Encode(number); got != want {
			t.Fatalf("%v: expected %q, got %q", format, want, got)
		}
	}
}

func TestDecodeError(t *testing.T) {
	codec := NewCodec(NewEngine())

	_, err := codec.Decode("07400123456")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decodeErr.Code != ParseErrorInvalidCountry {
		t.Fatalf("expected %s, got %s", ParseErrorInvalidCountry, decodeErr.Code)
	}
	if decodeErr.Region != UnknownRegion || decodeErr.Input != "07400123456" {
		t.Fatalf("unexpected decode error fields: %+v", decodeErr)
	}
	if !errors.Is(err, phonenumbers.ErrInvalidCountryCode) {
		t.Fatalf("expected engine error in chain")
	}
}

func TestDecodeErrorCodes(t *testing.T) {
	tests := []struct {
		input string
		want  ParseErrorCode
		cause error
	}{
		{"07400123456", ParseErrorInvalidCountry, phonenumbers.ErrInvalidCountryCode},
		{"not a phone", ParseErrorNotANumber, phonenumbers.ErrNotANumber},
		{"+12", ParseErrorTooShortAfterIDD, phonenumbers.ErrTooShortAfterIDD},
		{"+441", ParseErrorTooShortNSN, phonenumbers.ErrTooShortNSN},
		{"+4412345678901234567890", ParseErrorTooLong, phonenumbers.ErrNumTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			region := "GB"
			if tt.want == ParseErrorInvalidCountry {
				region = UnknownRegion
			}
			_, err := NewCodec(NewEngine(), WithCodecRegion(region)).Decode(tt.input)

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if decodeErr.Code != tt.want {
				t.Fatalf("expected %s, got %s (%s)", tt.want, decodeErr.Code, decodeErr.Reason)
			}
			if decodeErr.Reason == "" {
				t.Fatalf("expected engine reason to be kept")
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("expected %v in chain", tt.cause)
			}
		})
	}
}

func TestDecodeValue(t *testing.T) {
	codec := NewCodec(NewEngine())
	target := reflect.TypeOf((*phonenumbers.PhoneNumber)(nil))

	number, err := codec.DecodeValue("+18002530000", target)
	if err != nil || number == nil {
		t.Fatalf("expected number, got %v, %v", number, err)
	}

	number, err = codec.DecodeValue(nil, target)
	if err != nil || number != nil {
		t.Fatalf("expected nil, nil for nil data, got %v, %v", number, err)
	}

	if _, err := codec.DecodeValue(42, target); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for int data, got %v", err)
	}
	if _, err := codec.DecodeValue("+18002530000", reflect.TypeOf("")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for string target, got %v", err)
	}
}

func TestEncodeValue(t *testing.T) {
	codec := NewCodec(NewEngine())

	if codec.SupportsEncode("+18002530000") {
		t.Fatalf("expected strings to be unsupported")
	}
	if _, err := codec.EncodeValue("+18002530000"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	number, _ := phonenumbers.Parse("+18002530000", UnknownRegion)
	got, err := codec.EncodeValue(number)
	if err != nil || got != "+18002530000" {
		t.Fatalf("expected +18002530000, got %q, %v", got, err)
	}
}

func TestNormalizeE164(t *testing.T) {
	engine := NewEngine()

	if got := NormalizeE164(engine, "07400 123456", "GB"); got != "+447400123456" {
		t.Fatalf("expected +447400123456, got %q", got)
	}
	if got := NormalizeE164(engine, " not a phone ", "GB"); got != "not a phone" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestLookupPath(t *testing.T) {
	object := map[string]any{
		"billing": map[string]any{"country": "NL"},
		"count":   3,
	}
	if got, ok := LookupPath(object, "billing.country"); !ok || got != "NL" {
		t.Fatalf("expected NL, got %q (%v)", got, ok)
	}
	if _, ok := LookupPath(object, "count"); ok {
		t.Fatalf("expected non-string value to be ignored")
	}
	if _, ok := LookupPath(object, "billing.missing"); ok {
		t.Fatalf("expected missing segment to fail")
	}
	if _, ok := LookupPath(&contact{}, "address.country"); ok {
		t.Fatalf("expected nil pointer segment to fail")
	}
}
