// Package diagnostic provides structured warnings and errors for the
// record composer.
//
// Key capabilities:
//   - Structural declaration errors (duplicate fields, variadic conflicts)
//   - Unknown operation / category reports
//   - Severity-colored terminal rendering for the check command
package diagnostic
