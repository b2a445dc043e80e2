package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoverlay/internal/config"
)

func TestApplyOverridesOnlySetFlags(t *testing.T) {
	cfg := config.Default()
	opts := Options{FillColor: "#00FF00", Zoom: 2}
	opts.apply(cfg)

	assert.Equal(t, "#00FF00", cfg.Style.FillColor)
	assert.Equal(t, 2.0, cfg.Zoom)
	assert.Equal(t, config.Default().Style.StrokeColor, cfg.Style.StrokeColor)
	assert.Equal(t, config.Default().Style.StrokeWidth, cfg.Style.StrokeWidth)
}

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.geojson")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestBatchValidate(t *testing.T) {
	path := writeDoc(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},
		{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[1,2]}}
	]}`)
	var opts Options
	opts.Validate = true
	opts.Args.File = path

	var out bytes.Buffer
	assert.Equal(t, 1, batch(opts, &out))
	assert.Contains(t, out.String(), "feature 1")
}

func TestBatchDump(t *testing.T) {
	path := writeDoc(t, `{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Point","coordinates":[1,2]}}`)
	var opts Options
	opts.Dump = true
	opts.Args.File = path

	var out bytes.Buffer
	require.Equal(t, 0, batch(opts, &out))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "FeatureCollection", doc["type"])
	assert.Len(t, doc["features"], 1)
}

func TestBatchNeedsFile(t *testing.T) {
	assert.Equal(t, 1, batch(Options{Dump: true}, &bytes.Buffer{}))
}
