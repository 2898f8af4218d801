// Package telemetry provides tracing, metrics, and structured logging
// for the session core.
//
// Every outbound request through the authenticated pipeline is traced,
// measured, and logged through this package. Credential-bearing fields
// are redacted before they reach any log writer.
package telemetry
