package db

import (
	"fmt"
	"log/slog"
	"net/url"
)

// DBConfigFromYamlObj resolves the yaml DB section into a DBConfig. Missing
// numeric settings fall back to the package defaults.
func DBConfigFromYamlObj(yamlObj DBConfigYaml, instanceIDs []string) DBConfig {
	if yamlObj.ConnectionStr == "" {
		slog.Error("DB connection string missing")
		panic("DB connection string missing")
	}

	URI := buildURI(yamlObj)

	timeout := yamlObj.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT_SECONDS
	}
	idleConnTimeout := yamlObj.IdleConnTimeout
	if idleConnTimeout <= 0 {
		idleConnTimeout = DEFAULT_IDLE_CONN_TIMEOUT
	}
	maxPoolSize := DEFAULT_MAX_POOL_SIZE
	if yamlObj.MaxPoolSize > 0 {
		maxPoolSize = uint64(yamlObj.MaxPoolSize)
	}

	return DBConfig{
		URI:              URI,
		Timeout:          timeout,
		IdleConnTimeout:  idleConnTimeout,
		MaxPoolSize:      maxPoolSize,
		NoCursorTimeout:  yamlObj.UseNoCursorTimeout,
		DBNamePrefix:     yamlObj.DBNamePrefix,
		InstanceIDs:      instanceIDs,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}

func buildURI(yamlObj DBConfigYaml) string {
	if yamlObj.Username == "" && yamlObj.Password == "" {
		return fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}
	return fmt.Sprintf(`mongodb%s://%s:%s@%s`,
		yamlObj.ConnectionPrefix,
		url.QueryEscape(yamlObj.Username),
		url.QueryEscape(yamlObj.Password),
		yamlObj.ConnectionStr,
	)
}
