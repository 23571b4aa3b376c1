// Package sanitizer normalizes free-form input before it is validated,
// compared or stored.
//
// All functions are idempotent: applying them twice yields the same result.
//
// Normalization includes:
//   - Identifiers (emails, DNIs): trim surrounding space, lower-case
//   - Free text (names, notes): collapse inner whitespace, trim
package sanitizer
