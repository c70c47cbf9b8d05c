package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/styleguide/internal/bundleconfig"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("relative paths resolved against file", func(t *testing.T) {
		path := writeFile(t, dir, "styleguide.yaml", `
title: My components
styleguideDir: out
template: templates/index.html
verbose: true
`)
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "My components", s.Title)
		assert.Equal(t, filepath.Join(dir, "out"), s.StyleguideDir)
		assert.Equal(t, filepath.Join(dir, "templates", "index.html"), s.Template)
		assert.True(t, s.Verbose)
		assert.Nil(t, s.UpdateConfig)
	})

	t.Run("defaults", func(t *testing.T) {
		path := writeFile(t, dir, "empty.yaml", "")
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultTitle, s.Title)
		assert.Equal(t, filepath.Join(dir, DefaultStyleguideDir), s.StyleguideDir)
		assert.Empty(t, s.Template)
	})

	t.Run("absolute paths kept", func(t *testing.T) {
		path := writeFile(t, dir, "abs.yaml", "styleguideDir: /var/www/styleguide\n")
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/www/styleguide", s.StyleguideDir)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeFile(t, dir, "unknown.yaml", "updateWebpackConfig: true\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestOverlayHook(t *testing.T) {
	dir := t.TempDir()

	t.Run("appends rules and plugins", func(t *testing.T) {
		path := writeFile(t, dir, "overlay.yaml", `
plugins:
  - name: banner
    options:
      text: hello
module:
  rules:
    - test: \.svg$
      include: [/app/src]
      use:
        - loader: url
          options:
            limit: 8192
`)
		hook, err := OverlayHook(path)
		require.NoError(t, err)

		cfg := &bundleconfig.Config{
			Plugins: []bundleconfig.Plugin{{Name: bundleconfig.PluginHTML}},
			Module: bundleconfig.Module{Rules: []bundleconfig.Rule{
				{Test: `\.css$`, Include: []string{"/app/src"}},
			}},
		}

		out, err := hook(cfg, bundleconfig.Production)
		require.NoError(t, err)
		assert.Same(t, cfg, out)
		require.Len(t, out.Plugins, 2)
		assert.Equal(t, "banner", out.Plugins[1].Name)
		assert.Equal(t, "hello", out.Plugins[1].Options["text"])
		require.Len(t, out.Module.Rules, 2)
		assert.Equal(t, bundleconfig.Pattern(`\.svg$`), out.Module.Rules[1].Test)
		assert.Equal(t, "url", out.Module.Rules[1].Use[0].Name)
		assert.Equal(t, 8192, out.Module.Rules[1].Use[0].Options["limit"])
	})

	t.Run("invalid overlay fails early", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "modulez: {}\n")
		_, err := OverlayHook(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestOverlayHook_UnscopedRuleFailsBuild(t *testing.T) {
	root := t.TempDir()
	for _, pkg := range []string{"codemirror", "highlight.js"} {
		pkgDir := filepath.Join(root, "node_modules", pkg)
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		writeFile(t, pkgDir, "package.json", `{"name": "`+pkg+`"}`)
	}

	path := writeFile(t, root, "overlay.yaml", `
module:
  rules:
    - test: \.svg$
      use:
        - loader: file
`)
	hook, err := OverlayHook(path)
	require.NoError(t, err)

	s := Default(root)
	s.UpdateConfig = hook

	_, err = bundleconfig.New(root).Build(s, bundleconfig.Development)
	require.Error(t, err)
	assert.ErrorIs(t, err, bundleconfig.ErrValidation)
	assert.Contains(t, err.Error(), `\.svg$`)
}
