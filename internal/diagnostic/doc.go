// Package diagnostic provides structured warnings and errors collected while
// loading model declarations and resolving schemas.
//
// Key capabilities:
//   - Unknown model and property reports with "did you mean" suggestions
//   - Unsupported field type warnings
//   - Conflicting key mapping, ignore and required declarations
package diagnostic
