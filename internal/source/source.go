// Package source loads feature collections from files. GeoJSON is read
// as-is; WKT, CSV, KML and OSM PBF inputs are converted into features so the
// same overlay pipeline can draw them.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"geoverlay/internal/feature"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".csv", ".kml", ".pbf"}

// Supported reports whether Load can read path, judging by its extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the file at path, picking the decoder from its extension.
func Load(path string) (feature.Collection, error) {
	var (
		c   feature.Collection
		err error
	)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		c, err = LoadGeoJSON(path)
	case ".wkt":
		c, err = LoadWKT(path)
	case ".csv":
		c, err = LoadCSV(path)
	case ".kml":
		c, err = LoadKML(path)
	case ".pbf":
		c, err = LoadOSM(path)
	default:
		return feature.Collection{}, fmt.Errorf("unsupported file: %q", ext)
	}
	if err != nil {
		return feature.Collection{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	log.Debug().
		Str("path", path).
		Int("features", len(c.Features)).
		Msg("Features loaded")
	return c, nil
}

// LoadGeoJSON reads a FeatureCollection, Feature or bare geometry.
func LoadGeoJSON(path string) (feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return feature.Collection{}, err
	}
	defer f.Close()
	return feature.Decode(f)
}
