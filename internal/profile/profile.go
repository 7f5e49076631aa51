// Package profile manages the on-disk directory a session runs against: a
// properties file with user-editable settings and the per-extension
// storage area keyed by source hash.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// PropertiesFilename is the name of the properties document inside a
	// profile directory.
	PropertiesFilename = "profile.json"

	// StorageDirname is the directory holding per-extension storage,
	// one subdirectory per source hash.
	StorageDirname = "extension_data"
)

// Properties is the persisted, user-editable part of a profile.
type Properties struct {
	Name string `json:"name"`

	// ExtensionDirs lists extra directories scanned for extension
	// manifests. Entries are taken relative to the profile root unless
	// absolute.
	ExtensionDirs []string `json:"extension_dirs"`
}

// Profile is one open profile directory.
type Profile struct {
	root  string
	props Properties
}

// Open loads the profile at root. On first use it creates the directory
// layout and writes a default properties file named after the directory.
func Open(root string) (*Profile, error) {
	if root == "" {
		return nil, errors.New("profile root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving profile root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, StorageDirname), 0o755); err != nil {
		return nil, fmt.Errorf("creating profile layout: %w", err)
	}

	p := &Profile{root: abs}

	propsPath := filepath.Join(abs, PropertiesFilename)
	data, err := os.ReadFile(propsPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		p.props = Properties{Name: filepath.Base(abs)}
		if err := p.Save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", PropertiesFilename, err)
	default:
		if err := json.Unmarshal(data, &p.props); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", PropertiesFilename, err)
		}
		if p.props.Name == "" {
			p.props.Name = filepath.Base(abs)
		}
	}

	return p, nil
}

// Save writes the properties document back to disk.
func (p *Profile) Save() error {
	data, err := json.MarshalIndent(p.props, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", PropertiesFilename, err)
	}
	path := filepath.Join(p.root, PropertiesFilename)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", PropertiesFilename, err)
	}
	return nil
}

// Root returns the absolute profile directory.
func (p *Profile) Root() string { return p.root }

// Name returns the profile's display name.
func (p *Profile) Name() string { return p.props.Name }

// StorageRoot returns the directory under which extensions keep their
// private storage.
func (p *Profile) StorageRoot() string {
	return filepath.Join(p.root, StorageDirname)
}

// ExtensionDirs returns the profile's extra manifest directories as
// absolute paths.
func (p *Profile) ExtensionDirs() []string {
	out := make([]string, 0, len(p.props.ExtensionDirs))
	for _, dir := range p.props.ExtensionDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.root, dir)
		}
		out = append(out, dir)
	}
	return out
}
