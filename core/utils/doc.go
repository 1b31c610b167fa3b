// Package utils provides small helpers shared across the auto-reference application
// that don't belong to a domain-specific package.
package utils
