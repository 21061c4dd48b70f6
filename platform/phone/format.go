package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DisplayFormat selects the textual form produced on output.
type DisplayFormat int

const (
	E164 DisplayFormat = iota
	International
	National
	RFC3966
)

var formatNames = map[DisplayFormat]string{
	E164:          "e164",
	International: "international",
	National:      "national",
	RFC3966:       "rfc3966",
}

func (f DisplayFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("DisplayFormat(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f DisplayFormat) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

func (f DisplayFormat) engineFormat() phonenumbers.PhoneNumberFormat {
	switch f {
	case International:
		return phonenumbers.INTERNATIONAL
	case National:
		return phonenumbers.NATIONAL
	case RFC3966:
		return phonenumbers.RFC3966
	default:
		return phonenumbers.E164
	}
}

// ParseDisplayFormat maps "e164", "international", "national" or "rfc3966"
// (any case) to a DisplayFormat.
func ParseDisplayFormat(value string) (DisplayFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for format, name := range formatNames {
		if name == normalized {
			return format, nil
		}
	}
	return 0, &ConfigurationError{
		Err:    ErrUnknownFormat,
		Detail: fmt.Sprintf("unknown display format %q", value),
	}
}
