package utils

// NormalizeDigits strips every non-digit rune from a phone number so
// that search queries and stored values compare on digits alone.
// "555-0100", "(555) 0100" and "5550100" all normalize to the same
// string.
func NormalizeDigits(phone string) string {
	out := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}
