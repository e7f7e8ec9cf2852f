package utils

import "regexp"

const MAX_KEY_LENGTH = 64

var urlSafePattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// IsURLSafe checks if a string value can be safely used as a part of an URL
// and as a part of a DB or collection name.
func IsURLSafe(value string) bool {
	if value == "" || len(value) > MAX_KEY_LENGTH {
		return false
	}
	return urlSafePattern.MatchString(value)
}
