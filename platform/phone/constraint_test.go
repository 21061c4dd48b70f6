package phone

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"phonenumber_service/platform/logger"
)

func TestNewConstraintDefaults(t *testing.T) {
	c := NewConstraint()

	types := c.AcceptedTypes()
	if len(types) != 1 || types[0] != Any {
		t.Fatalf("expected [any], got %v", types)
	}
	if c.Message() != "This value is not a valid phone number." {
		t.Fatalf("unexpected default message %q", c.Message())
	}
	if c.ResolveRegion("") != UnknownRegion {
		t.Fatalf("expected region %s, got %s", UnknownRegion, c.ResolveRegion(""))
	}
	if _, ok := c.Format(); ok {
		t.Fatalf("expected no required format")
	}
}

func TestNewConstraintDedupesTypes(t *testing.T) {
	c := NewConstraint(WithTypes(Mobile, FixedLine, Mobile, ""))

	types := c.AcceptedTypes()
	if len(types) != 2 || types[0] != Mobile || types[1] != FixedLine {
		t.Fatalf("expected [mobile fixed_line], got %v", types)
	}
}

func TestAcceptedTypesReturnsCopy(t *testing.T) {
	c := NewConstraint(WithTypes(Mobile))
	types := c.AcceptedTypes()
	types[0] = TollFree

	if got := c.AcceptedTypes()[0]; got != Mobile {
		t.Fatalf("expected constraint to stay mobile, got %q", got)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		opts []ConstraintOption
		want string
	}{
		{"single type", []ConstraintOption{WithTypes(TollFree)}, "This value is not a valid toll-free number."},
		{"several types", []ConstraintOption{WithTypes(Mobile, VoIP)}, "This value is not a valid number."},
		{"explicit", []ConstraintOption{WithTypes(Mobile), WithMessage("Bad {{ type }}")}, "Bad {{ type }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewConstraint(tt.opts...).Message(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessagePanicsOnUnknownSingleType(t *testing.T) {
	c := NewConstraint(WithTypes(NumberType("satellite")))

	if err := c.Check(); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected Check to report ErrUnknownType, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Message to panic")
		}
	}()
	_ = c.Message()
}

func TestTypeLogsDeprecationOncePerCall(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("production", &buf)
	c := NewConstraint(WithTypes(Mobile, VoIP), WithLogger(log))

	got, ok := c.Type()
	if !ok || got != Mobile {
		t.Fatalf("expected mobile, got %q (%v)", got, ok)
	}
	if n := strings.Count(buf.String(), "deprecated_call"); n != 1 {
		t.Fatalf("expected one deprecation log line, got %d: %s", n, buf.String())
	}

	_, _ = c.Type()
	if n := strings.Count(buf.String(), "deprecated_call"); n != 2 {
		t.Fatalf("expected a deprecation line per call, got %d", n)
	}
}

func TestResolveRegion(t *testing.T) {
	withPath := NewConstraint(WithRegionPath("country"), WithDefaultRegion("nl"))
	if got := withPath.ResolveRegion("gb"); got != "GB" {
		t.Fatalf("expected sibling region GB, got %s", got)
	}
	if got := withPath.ResolveRegion(" "); got != "NL" {
		t.Fatalf("expected default region NL, got %s", got)
	}

	withoutPath := NewConstraint(WithDefaultRegion("NL"))
	if got := withoutPath.ResolveRegion("GB"); got != "NL" {
		t.Fatalf("expected sibling to be ignored without a path, got %s", got)
	}
}

func TestConstraintFromOptions(t *testing.T) {
	c, err := ConstraintFromOptions(map[string]any{
		"type":          []any{"mobile", "voip"},
		"defaultRegion": "gb",
		"value":         "e164",
		"name":          "contact",
		"groups":        "signup",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types := c.AcceptedTypes()
	if len(types) != 2 || types[0] != Mobile || types[1] != VoIP {
		t.Fatalf("expected [mobile voip], got %v", types)
	}
	if c.DefaultRegion() != "GB" {
		t.Fatalf("expected region GB, got %s", c.DefaultRegion())
	}
	if format, ok := c.Format(); !ok || format != E164 {
		t.Fatalf("expected e164 format, got %v (%v)", format, ok)
	}
	if c.Name() != "contact" {
		t.Fatalf("expected name contact, got %q", c.Name())
	}
	if groups := c.Groups(); len(groups) != 1 || groups[0] != "signup" {
		t.Fatalf("expected [signup], got %v", groups)
	}
}

func TestConstraintFromOptionsScalarType(t *testing.T) {
	c, err := ConstraintFromOptions(map[string]any{"type": "toll_free"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Message(); got != "This value is not a valid toll-free number." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestConstraintFromOptionsRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]any{
		"unknown type":   {"type": "satellite"},
		"unknown format": {"format": "pretty"},
		"non-string":     {"defaultRegion": 44},
		"bad type value": {"type": 7},
	}
	for name, options := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ConstraintFromOptions(options)
			var configErr *ConfigurationError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
		})
	}
}
