package transform

import "regexp"

var bracePattern = regexp.MustCompile(`\{.*?\}`)

// StripBraces removes every {...} span, braces included. These spans
// are internal configurator annotations and never reach the customer.
// Surrounding text and spacing are preserved as-is.
func StripBraces(s string) string {
	return bracePattern.ReplaceAllString(s, "")
}
