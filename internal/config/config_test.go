package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "fitsummary")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`export_dir = "~/fit/out"`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "fit", "out"), cfg.ExportDir)
	assert.Equal(t, FormatJSON, cfg.OutputFormat)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output_format = "Parquet"
uniform_singletons = true
copy_source = false
overwrite = true
log_level = "DEBUG"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		OutputFormat:      FormatParquet,
		ExportDir:         "exports",
		UniformSingletons: true,
		CopySource:        false,
		Overwrite:         true,
		LogLevel:          "debug",
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{
			name: "missing explicit file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			want: "stat config",
		},
		{
			name: "bad toml",
			path: func(t *testing.T) string { return writeConfig(t, `output_format = `) },
			want: "parse config",
		},
		{
			name: "unknown format",
			path: func(t *testing.T) string { return writeConfig(t, `output_format = "xml"`) },
			want: "output_format",
		},
		{
			name: "unknown level",
			path: func(t *testing.T) string { return writeConfig(t, `log_level = "loud"`) },
			want: "log_level",
		},
		{
			name: "empty export dir",
			path: func(t *testing.T) string { return writeConfig(t, `export_dir = " "`) },
			want: "export_dir",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/me/x", expandHome("~/x", "/home/me"))
	assert.Equal(t, "~x", expandHome("~x", "/home/me"))
	assert.Equal(t, "/abs", expandHome("/abs", "/home/me"))
}
