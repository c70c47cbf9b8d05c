package bundleconfig

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr bool
	}{
		{
			name:  "no rules",
			rules: nil,
		},
		{
			name:  "include only",
			rules: []Rule{{Test: `\.css$`, Include: []string{"/src"}}},
		},
		{
			name:  "exclude only",
			rules: []Rule{{Test: `\.css$`, Exclude: []string{"/node_modules"}}},
		},
		{
			name:    "neither include nor exclude",
			rules:   []Rule{{Test: `\.css$`, Include: []string{"/src"}}, {Test: `\.svg$`}},
			wantErr: true,
		},
		{
			name:    "empty include slice",
			rules:   []Rule{{Test: `\.svg$`, Include: []string{}}},
			wantErr: true,
		},
		{
			name:    "empty string include",
			rules:   []Rule{{Test: `\.svg$`, Include: []string{""}}},
			wantErr: true,
		},
		{
			name:    "blank include and exclude",
			rules:   []Rule{{Test: `\.svg$`, Include: []string{"  "}, Exclude: []string{""}}},
			wantErr: true,
		},
		{
			name:  "blank entry next to a directory",
			rules: []Rule{{Test: `\.svg$`, Include: []string{"", "/src"}}},
		},
		{
			name:    "invalid test",
			rules:   []Rule{{Test: `(\.svg$`, Include: []string{"/src"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Config{Module: Module{Rules: tt.rules}})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("production")
	require.NoError(t, err)
	assert.Equal(t, Production, env)

	env, err = ParseEnvironment("development")
	require.NoError(t, err)
	assert.Equal(t, Development, env)

	_, err = ParseEnvironment("Production")
	assert.ErrorIs(t, err, ErrUnknownEnvironment)
}

func TestPattern_MatchString(t *testing.T) {
	assert.True(t, Pattern(`node_modules[/\\]entities[/\\].*\.json$`).MatchString("/app/node_modules/entities/maps/entities.json"))
	assert.False(t, Pattern(`\.jsx?$`).MatchString("/app/src/index.css"))
	assert.False(t, Pattern(`(`).MatchString("("))
}

func TestRender(t *testing.T) {
	cfg := &Config{
		Output: Output{Path: "/out", Filename: BundleFilename},
		Module: Module{Rules: []Rule{{
			Test:    `\.css$`,
			Include: []string{"/src"},
			Use:     []Loader{{Name: "style"}, {Name: "css", Options: map[string]any{"modules": true}}},
		}}},
		Entry: []string{"/src/index"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "output:\n  path: /out\n  filename: build/bundle.js\n")
	assert.Contains(t, out, "entry:\n  - /src/index\n")
	assert.Contains(t, out, "modules: true")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, cfg.Module.Rules[0].Test, decoded.Module.Rules[0].Test)
}
