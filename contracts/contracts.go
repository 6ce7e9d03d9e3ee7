// Package contracts embeds the HTTP contract and the registration payload schemas
// so binaries do not depend on the working directory at runtime.
package contracts

import "embed"

// ValidationsYAML is the OpenAPI document for the validation API.
//
//go:embed validations.yaml
var ValidationsYAML []byte

// Registrations holds one JSON Schema per registration record type,
// named registrations/<record-type>.schema.json.
//
//go:embed registrations/*.schema.json
var Registrations embed.FS
