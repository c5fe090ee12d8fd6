// Package configs embeds the default data tables shipped with the binaries.
package configs

import _ "embed"

// Machines is the default slot machine catalog
//
//go:embed machines.json
var Machines []byte

// MachinesSchema is the JSON schema every machine catalog must satisfy
//
//go:embed schemas/machines.schema.json
var MachinesSchema []byte

// File locations relative to the repository root
const (
	MachinesPath       = "configs/machines.json"
	MachinesSchemaPath = "configs/schemas/machines.schema.json"
)
