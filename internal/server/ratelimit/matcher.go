package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request path and method to its endpoint
// configuration, or nil when the global default applies. Exact matches win
// over prefix matches; patterns ending in "/" match by prefix so "/runs/"
// covers "/runs/{id}". The health check is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
