package validate

import (
	"fmt"
	"regexp"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// nameRx allows letters, digits, spaces, hyphens and apostrophes.
var nameRx = regexp.MustCompile(`^[A-Za-z0-9' -]+$`)

// Name validates a person name:
// - 1-80 bytes
// - letters/digits/space/hyphen/apostrophe only
func Name(v string) error {
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 80 {
		return fmt.Errorf("name exceeds 80 characters")
	}
	if !nameRx.MatchString(v) {
		return fmt.Errorf("name contains invalid characters; allowed letters, digits, space, hyphen, apostrophe")
	}
	return nil
}

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// OptionalEmail accepts empty input and otherwise applies Email.
func OptionalEmail(v string) error {
	if v == "" {
		return nil
	}
	return Email(v)
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// Age bounds a kid age to something sensible for a pediatric practice.
func Age(v int) error {
	if v < 0 || v > 21 {
		return fmt.Errorf("age must be between 0 and 21")
	}
	return nil
}
