package bundleconfig

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge deep merges overlay onto dst. Slices such as plugins, rules and
// entries are appended; scalars set in overlay replace those in dst.
// Zero valued scalars in overlay leave dst untouched.
func Merge(dst *Config, overlay *Config) error {
	if overlay == nil {
		return nil
	}
	if err := mergo.Merge(dst, *overlay, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return fmt.Errorf("failed to merge config overlay: %w", err)
	}
	return nil
}
