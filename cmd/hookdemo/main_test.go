package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/hookparty/demos"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// should return defaults without a path
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Style)
	assert.Equal(t, 72, cfg.MarkupWidth)

	// should read routes and style from yaml
	path := filepath.Join(t.TempDir(), "hookdemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes:\n  - /useState\n  - /useRef\nstyle: rounded\nmarkup: true\n"), 0644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/useState", "/useRef"}, cfg.Routes)
	assert.Equal(t, table.StyleRounded, cfg.tableStyle(true))
	assert.True(t, cfg.Markup)
	assert.Equal(t, 72, cfg.MarkupWidth)

	// should reject unknown styles
	require.NoError(t, os.WriteFile(path, []byte("style: neon\n"), 0644))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "unknown style")

	// should fail on a missing file
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTableStyle(t *testing.T) {
	cfg := defaultConfig()

	// should pick colors only on a terminal
	assert.Equal(t, table.StyleColoredBright, cfg.tableStyle(true))
	assert.Equal(t, table.StyleLight, cfg.tableStyle(false))
}

func TestFormatRenders(t *testing.T) {
	// should sort by component name
	assert.Equal(t, "App×1 Child×2", formatRenders(map[string]int{"Child": 2, "App": 1}))
	assert.Equal(t, "", formatRenders(nil))
}

func TestWriteTrace(t *testing.T) {
	trace, err := demos.Run(context.Background(), "/useState")
	require.NoError(t, err)

	cfg := defaultConfig()
	cfg.Markup = true
	var buf bytes.Buffer
	writeTrace(&buf, trace, cfg, table.StyleLight)

	// should title the table with the route and list every frame
	out := buf.String()
	assert.Contains(t, out, "/useState")
	assert.Contains(t, out, trace.RootID)
	for _, f := range trace.Frames {
		assert.Contains(t, out, f.Step)
	}
	assert.Contains(t, out, "MARKUP")
}
