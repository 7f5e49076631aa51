package extension

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2"
)

// Defaults for the optional manifest fields. Name and source have no
// defaults: they constitute identity and their absence is a hard error.
const (
	DefaultAuthor      = "Unknown"
	DefaultVersion     = "<unknown>"
	DefaultLicense     = "No license"
	DefaultSummary     = "No summary provided"
	DefaultDescription = "No description provided"
)

// Descriptor is the parsed, pre-load metadata of one extension package.
type Descriptor struct {
	// Path is the directory the manifest was found in. Unique per
	// descriptor, owned by the descriptor.
	Path string

	// Name is the human-readable identifier. Not guaranteed unique on its
	// own, but it participates in the capability set and therefore must
	// not collide within a batch.
	Name string

	// Source is the canonical, globally-unique identity declared by the
	// author. It keys the compiled-in factory lookup and derives the
	// stable storage hash.
	Source string

	Author      string
	Version     string
	License     string
	Summary     string
	Description string

	// Requires lists identities that must be provided by another
	// descriptor in the same batch.
	Requires []string

	// Supports lists identities that order this extension after their
	// providers when present, without failing when absent.
	Supports []string

	// Implements lists additional identities this extension satisfies
	// beyond its own name and source.
	Implements []string

	// Settings is the raw, not yet decoded settings body from the
	// manifest. Nil when the manifest has no settings block.
	Settings hcl.Body

	version *semver.Version
}

// ApplyDefaults fills every unset optional field with its default value.
// Explicitly declared fields are never overwritten.
func (d *Descriptor) ApplyDefaults() {
	if d.Author == "" {
		d.Author = DefaultAuthor
	}
	if d.Version == "" {
		d.Version = DefaultVersion
	}
	if d.License == "" {
		d.License = DefaultLicense
	}
	if d.Summary == "" {
		d.Summary = DefaultSummary
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
}

// Validate checks the identity invariants of the descriptor. It returns a
// *MetadataError when name or source is missing, or when a declared
// version does not parse as semver. Call after ApplyDefaults.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return &MetadataError{Path: d.Path, Reason: "manifest is missing required attribute 'name'"}
	}
	if d.Source == "" {
		return &MetadataError{Path: d.Path, Reason: "manifest is missing required attribute 'source'"}
	}
	if d.Version != "" && d.Version != DefaultVersion {
		v, err := semver.NewVersion(d.Version)
		if err != nil {
			return &MetadataError{
				Path:   d.Path,
				Reason: fmt.Sprintf("version %q is not a valid semantic version", d.Version),
				Err:    err,
			}
		}
		d.version = v
	}
	return nil
}

// SemVer returns the parsed version, or nil when the manifest declared
// none.
func (d *Descriptor) SemVer() *semver.Version {
	return d.version
}

// String renders the descriptor for logs and error messages.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Source)
}
