package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
title = "Pump station"
model = "gear"
res_inv = 4
listen = "localhost:7070"
`))
	require.NoError(t, err)
	want := DefaultConfig()
	want.Title = "Pump station"
	want.Model = ModelGear
	want.ResInv = 4
	want.Listen = "localhost:7070"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, cfg.Options(), 6)
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":   `colour = "red"`,
		"unknown model": `model = "turbine"`,
		"bad damping":   `damping = 2.0`,
		"bad res_inv":   `res_inv = 0`,
		"bad size":      "width = 0\nheight = -1",
		"syntax":        `model = `,
	} {
		_, err := ParseConfig([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"gear\"\nwatch_file = \"model.txt\"\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ModelGear, cfg.Model)
	assert.Len(t, cfg.Options(), 7)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
