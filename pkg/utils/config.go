package utils

import (
	"errors"
	"os"

	"gopkg.in/yaml.v2"
)

// ReadYamlConfig strictly decodes the yaml file at path into out. Unknown keys
// are an error.
func ReadYamlConfig(path string, out interface{}) error {
	if path == "" {
		return errors.New("config file path not set")
	}
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(yamlFile, out)
}

// OverrideFromEnv replaces *target with the value of envName if it is set
// and not empty.
func OverrideFromEnv(target *string, envName string) {
	if value := os.Getenv(envName); value != "" {
		*target = value
	}
}
