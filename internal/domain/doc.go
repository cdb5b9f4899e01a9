// Package domain contains shared domain types used across entity sub-packages.
// The club entity lives in domain/club. This root package holds sentinel
// errors and the structured error types (ValidationError, AuthorizationError)
// that every layer checks with errors.Is and errors.As.
package domain
