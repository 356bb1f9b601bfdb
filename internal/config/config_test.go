package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty home directory so tests never
// pick up a real ~/.ydiff.json.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestDefault(t *testing.T) {
	t.Parallel()

	def := Default()
	assert.Equal(t, 3, def.Context)
	assert.Equal(t, 0, def.Width)
	assert.Equal(t, 8, def.TabSize)
	assert.True(t, def.Signs)
	assert.True(t, def.Background)
	assert.False(t, def.LineNumbers)
	assert.Equal(t, "auto", def.Color)
	assert.False(t, def.Debug)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	opts, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)

	data := `{"context": 7, "signs": false, "color": "never"}`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ydiff.json"), []byte(data), 0o644))

	opts, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Context)
	assert.False(t, opts.Signs)
	assert.Equal(t, "never", opts.Color)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8, opts.TabSize)
	assert.True(t, opts.Background)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(home, ".ydiff.json"), []byte("{not json"), 0o644))

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := isolate(t)

	data := `{"context": 7}`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ydiff.json"), []byte(data), 0o644))
	t.Setenv("YDIFF_CONTEXT", "9")

	opts, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 9, opts.Context)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	home := isolate(t)

	data := `{"context": 7, "width": 100}`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ydiff.json"), []byte(data), 0o644))
	t.Setenv("YDIFF_CONTEXT", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("unified", "U", DefaultContext, "")
	flags.IntP("width", "w", 0, "")
	flags.IntP("expand-tabs", "t", DefaultTabSize, "")
	flags.BoolP("signs", "s", true, "")
	flags.BoolP("background", "b", true, "")
	flags.BoolP("line-numbers", "l", false, "")
	flags.String("color", "auto", "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--unified", "2", "--line-numbers"}))

	opts, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Context)
	assert.True(t, opts.LineNumbers)
	// Flags left at their defaults do not mask file values.
	assert.Equal(t, 100, opts.Width)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(o *Options) {}},
		{
			name:    "negative context",
			mutate:  func(o *Options) { o.Context = -1 },
			wantErr: "context",
		},
		{
			name:    "negative tab size",
			mutate:  func(o *Options) { o.TabSize = -2 },
			wantErr: "tab size",
		},
		{
			name:    "width too small",
			mutate:  func(o *Options) { o.Width = 3 },
			wantErr: "width",
		},
		{name: "width zero means autodetect", mutate: func(o *Options) { o.Width = 0 }},
		{name: "explicit width", mutate: func(o *Options) { o.Width = 80 }},
		{
			name:    "unknown color mode",
			mutate:  func(o *Options) { o.Color = "sometimes" },
			wantErr: "color",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := Default()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
