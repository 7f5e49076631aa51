package hcl

import (
	"context"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/chathostgo/internal/config"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/fsutil"
	"github.com/vk/chathostgo/internal/schema"
)

// ManifestExtension is the file suffix manifests are discovered by.
const ManifestExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of one manifest file. Remain
// tolerates unrelated blocks so a manifest can sit next to other HCL.
type fileRoot struct {
	Extensions []*schema.Extension `hcl:"extension,block"`
	Remain     hcl.Body            `hcl:",remain"`
}

// Load orchestrates the manifest loading process: walk the given paths
// for manifest files, parse each one, translate every extension block
// into a descriptor, apply defaults, and validate identity. The order of
// the returned descriptors follows the walk order of the paths; it is the
// batch order the scheduler breaks ties with.
//
// Parse failures and identity violations surface as
// *extension.MetadataError.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(ManifestExtension, paths...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, &extension.MetadataError{Path: file, Reason: "manifest is not valid HCL", Err: diags}
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, &extension.MetadataError{Path: file, Reason: "manifest structure is invalid", Err: diags}
		}

		for _, block := range root.Extensions {
			d := translateExtension(block, file)
			d.ApplyDefaults()
			if err := d.Validate(); err != nil {
				return nil, nil, err
			}
			model.Extensions = append(model.Extensions, d)
			logger.Debug("Loaded extension manifest.", "source", d.Source, "file", file)
		}
	}

	logger.Debug("HCL loading complete.", "extensions", len(model.Extensions))
	return model, NewConverter(), nil
}

// translateExtension converts the HCL-specific schema into the agnostic
// descriptor. The descriptor's path is the directory containing the
// manifest, which is the extension package directory.
func translateExtension(s *schema.Extension, file string) *extension.Descriptor {
	d := &extension.Descriptor{
		Path:        filepath.Dir(file),
		Name:        s.Name,
		Source:      s.Source,
		Author:      s.Author,
		Version:     s.Version,
		License:     s.License,
		Summary:     s.Summary,
		Description: s.Description,
		Requires:    s.Requires,
		Supports:    s.Supports,
		Implements:  s.Implements,
	}
	if s.Settings != nil {
		d.Settings = s.Settings.Body
	}
	return d
}
