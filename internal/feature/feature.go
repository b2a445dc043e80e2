// Package feature holds the GeoJSON input model: feature collections, features,
// geometries with their raw coordinate trees, and typed style properties.
package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// GeometryType is the GeoJSON geometry "type" member.
type GeometryType string

const (
	Point              GeometryType = "Point"
	MultiPoint         GeometryType = "MultiPoint"
	LineString         GeometryType = "LineString"
	MultiLineString    GeometryType = "MultiLineString"
	Polygon            GeometryType = "Polygon"
	MultiPolygon       GeometryType = "MultiPolygon"
	GeometryCollection GeometryType = "GeometryCollection"
)

// Geometry is a GeoJSON geometry. Coordinates is kept as the nested tree
// produced by encoding/json ([]any down to float64 leaves) and is only
// interpreted when overlays are built.
type Geometry struct {
	Type        GeometryType `json:"type"`
	Coordinates any          `json:"coordinates,omitempty"`
}

// Feature is a single GeoJSON feature. A nil Geometry is allowed.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Collection is a GeoJSON FeatureCollection.
type Collection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// New wraps features into a FeatureCollection.
func New(features ...Feature) Collection {
	return Collection{Type: "FeatureCollection", Features: features}
}

// OnPress attaches fn to every feature that has no tap callback yet.
func (c Collection) OnPress(fn func(*Properties)) {
	for i := range c.Features {
		if c.Features[i].Properties.OnPress == nil {
			c.Features[i].Properties.OnPress = fn
		}
	}
}

// Decode reads a GeoJSON document from r. See Unmarshal.
func Decode(r io.Reader) (Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Collection{}, err
	}
	return Unmarshal(data)
}

// Unmarshal parses a FeatureCollection, a single Feature, or a bare geometry
// object. The latter two are wrapped into a one-feature collection.
func Unmarshal(data []byte) (Collection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Collection{}, err
	}
	switch head.Type {
	case "":
		return Collection{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		var c Collection
		if err := json.Unmarshal(data, &c); err != nil {
			return Collection{}, fmt.Errorf("feature collection: %w", err)
		}
		return c, nil
	case "Feature":
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return Collection{}, fmt.Errorf("feature: %w", err)
		}
		return New(f), nil
	default:
		var g Geometry
		if err := json.Unmarshal(data, &g); err != nil {
			return Collection{}, fmt.Errorf("geometry: %w", err)
		}
		return New(Feature{Type: "Feature", Geometry: &g}), nil
	}
}
