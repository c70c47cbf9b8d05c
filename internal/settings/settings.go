package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/styleguide/internal/bundleconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle         = "Style guide"
	DefaultStyleguideDir = "styleguide"
)

// ErrInvalidSettings is returned when a settings or overlay file cannot be decoded.
var ErrInvalidSettings = errors.New("invalid settings")

// Default returns settings with default values resolved against dir.
func Default(dir string) bundleconfig.Settings {
	return bundleconfig.Settings{
		Title:         DefaultTitle,
		StyleguideDir: filepath.Join(dir, DefaultStyleguideDir),
	}
}

// Load reads settings from a YAML file. Relative paths are resolved against
// the directory holding the file, missing values fall back to Default.
func Load(path string) (bundleconfig.Settings, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return bundleconfig.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default(dir)
	if err := decodeStrict(data, &s); err != nil {
		return bundleconfig.Settings{}, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
	}

	s.StyleguideDir = absPath(dir, s.StyleguideDir)
	if s.Template != "" {
		s.Template = absPath(dir, s.Template)
	}
	if s.Title == "" {
		s.Title = DefaultTitle
	}

	log.Debug().Str("path", path).Str("styleguideDir", s.StyleguideDir).Msg("settings loaded")

	return s, nil
}

// OverlayHook returns an update hook which deep merges the config overlay
// stored in the YAML file at path onto the built config. The file is decoded
// on every call so returned configs never share state.
func OverlayHook(path string) (bundleconfig.UpdateFunc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay: %w", err)
	}

	// decode once up front so a broken file fails before any build
	if _, err := decodeOverlay(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
	}

	return func(cfg *bundleconfig.Config, env bundleconfig.Environment) (*bundleconfig.Config, error) {
		overlay, err := decodeOverlay(data)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("overlay", path).Str("env", string(env)).Msg("applying config overlay")

		if err := bundleconfig.Merge(cfg, overlay); err != nil {
			return nil, err
		}
		return cfg, nil
	}, nil
}

func decodeOverlay(data []byte) (*bundleconfig.Config, error) {
	var overlay bundleconfig.Config
	if err := decodeStrict(data, &overlay); err != nil {
		return nil, err
	}
	return &overlay, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func absPath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
