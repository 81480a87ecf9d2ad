package validation

import (
	"errors"
)

// ValidateUsername validates account username shape.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if len(username) > 150 {
		return errors.New("username is too long (max 150 characters)")
	}

	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-' || r == '@' || r == '+':
		default:
			return errors.New("username may contain only letters, digits and @/./+/-/_")
		}
	}

	return nil
}
