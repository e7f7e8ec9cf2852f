package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)

// GenerateEnvVarName generates a standardized environment variable name from a given string.
// It converts the input to uppercase and replaces any non-alphanumeric characters with underscores.
// Leading and trailing underscores are removed.
func GenerateEnvVarName(input string) string {
	normalized := nonAlphanumeric.ReplaceAllString(strings.ToUpper(input), "_")
	return strings.Trim(normalized, "_")
}

// GenerateAPIClientKeyEnvVarName generates the environment variable name holding the API key of
// a configured API client. Format: API_CLIENT_KEY_FOR_{NORMALIZED_NAME}
func GenerateAPIClientKeyEnvVarName(clientName string) string {
	return "API_CLIENT_KEY_FOR_" + GenerateEnvVarName(clientName)
}
