package links

import (
	"net/url"
	"regexp"
)

// MaxURLLength is the longest original URL accepted at write time.
const MaxURLLength = 2048

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// ValidationError is a recoverable input error whose message is safe to show
// to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateURL checks that rawURL is an absolute URL of acceptable length.
// Scheme safety is deliberately not checked here; the resolver re-validates
// every stored URL at redirect time and is the authority on safe schemes.
func ValidateURL(rawURL string) error {
	if len(rawURL) > MaxURLLength {
		return &ValidationError{Message: "URL must be at most 2048 characters"}
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return &ValidationError{Message: "Please enter a valid URL"}
	}

	return nil
}

// ValidateSlug checks a user-chosen short code against the allowed pattern.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return &ValidationError{
			Message: "Custom slug must be 3-20 characters using only letters, numbers, hyphens, and underscores",
		}
	}

	return nil
}
