package sqlassets

import _ "embed"

// ValidationEventsSQL creates the validation journal table and its indexes.
//
//go:embed schema/validation_events.sql
var ValidationEventsSQL string
