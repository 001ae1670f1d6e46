package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/classkit/pkg/types"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[watch]
paths = ["build/classes", "/abs/Foo.class"]
interval = "250ms"

[log]
level = "debug"
format = "json"

[decode]
strict-magic = true
max-payload-bytes = 1024
`)

	c, err := Load(dir)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, c.Dir)
	assert.Equal(t, 250*time.Millisecond, c.Watch.Interval.Duration)
	assert.Equal(t, []string{filepath.Join(abs, "build/classes"), "/abs/Foo.class"}, c.WatchPaths())
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)

	opts := c.Options()
	assert.True(t, opts.StrictMagic)
	require.NotNil(t, opts.Limits)
	assert.Equal(t, 1024, opts.Limits.MaxPayloadBytes)
	assert.Equal(t, types.MaxConstantPoolCount, opts.Limits.MaxConstantPoolCount)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, c.Watch.Interval.Duration)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Empty(t, c.WatchPaths())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[watch\n", "parse error"},
		{"bad duration", "[watch]\ninterval = \"soon\"\n", "parse error"},
		{"unknown key", "[watch]\npoll = 3\n", "unknown keys: watch.poll"},
		{"negative interval", "[watch]\ninterval = \"-1s\"\n", "watch.interval must be positive"},
		{"bad format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"pool count", "[decode]\nmax-constant-pool-count = 70000\n", "max-constant-pool-count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[log]\nlevel = \"warn\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "warn", c.Log.Level)
}
