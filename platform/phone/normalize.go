package phone

import "strings"

// NormalizeE164 formats input to E.164, parsing national numbers for region.
// If parsing fails or the number is invalid, it returns the trimmed input.
func NormalizeE164(engine Engine, input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := engine.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !engine.IsValid(number) {
		return trimmed
	}

	return engine.Format(number, E164)
}
