// Package config loads client configuration from a YAML file with
// environment variable overrides.
//
// Merge order: built-in defaults, then the file, then the
// environment. The API base URL and request timeout feed the request
// pipeline; the telemetry section maps onto the telemetry package.
package config
