// Package identifiers validates Spanish national, tax and professional identifiers
// (DNI, NIE, CIF, social-security numbers, health-card numbers, professional license
// numbers, REGCESS codes) and the contact fields collected next to them (email, phone).
//
// Every check runs the same pipeline: Normalize the raw input for its Kind, confirm the
// structural shape with Matches, and, for kinds that carry a control character, verify it
// with the checksum engine. Malformed input is an expected outcome, so the package reports
// it through Result values rather than errors. Passing a Kind the package does not know is
// a programming error and panics.
//
// All functions are pure and safe for concurrent use.
package identifiers
