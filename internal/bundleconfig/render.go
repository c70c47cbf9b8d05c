package bundleconfig

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Render writes cfg to w as an indented key/value tree.
func Render(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	return enc.Close()
}

func renderVerbose(w io.Writer, cfg *Config) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Using bundler config:"); err != nil {
		return err
	}
	if err := Render(w, cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
