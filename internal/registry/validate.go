package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/chathostgo/internal/config"
	"github.com/vk/chathostgo/internal/ctxlog"
)

// Validate performs a parity check between discovered manifests and the
// compiled-in factories. It collects every problem instead of stopping at
// the first so a broken profile is diagnosed in one pass.
//
// A registered factory without a manifest is not a problem; the module
// simply does not load in this profile.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, d := range model.Extensions {
		ext, ok := r.factories[d.Source]
		if !ok {
			errs = append(errs, fmt.Sprintf("extension '%s': no factory registered for source '%s'", d.Name, d.Source))
			continue
		}
		if d.Settings != nil && ext.NewSettings == nil {
			errs = append(errs, fmt.Sprintf("extension '%s': manifest declares settings, but the module accepts none", d.Source))
		}
	}

	for _, source := range r.Sources() {
		if model.BySource(source) == nil {
			logger.Debug("Registered extension has no manifest in this profile; it will not load.", "source", source)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
