package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Manifest Structures ---

// Extension is the on-disk shape of an `extension` block inside a manifest
// file. Every attribute is optional at the syntax level; identity rules
// (name and source being mandatory) are enforced after translation so that
// the error can say which file and which field is at fault.
type Extension struct {
	Name        string         `hcl:"name,optional"`
	Source      string         `hcl:"source,optional"`
	Author      string         `hcl:"author,optional"`
	Version     string         `hcl:"version,optional"`
	License     string         `hcl:"license,optional"`
	Summary     string         `hcl:"summary,optional"`
	Description string         `hcl:"description,optional"`
	Requires    []string       `hcl:"requires,optional"`
	Supports    []string       `hcl:"supports,optional"`
	Implements  []string       `hcl:"implements,optional"`
	Settings    *SettingsBlock `hcl:"settings,block"`
}

// SettingsBlock holds the raw body of a `settings` block. Decoding is
// deferred until load time, when the owning module's settings struct and
// the evaluation context are known.
type SettingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
