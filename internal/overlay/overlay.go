// Package overlay turns GeoJSON features into display-ready overlays:
// markers, polylines and polygons with holes, in the order a map should draw
// them.
package overlay

import (
	"fmt"

	"geoverlay/internal/feature"
)

// LatLng is a map coordinate. GeoJSON positions are [lon, lat]; overlays
// store them the other way round.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FromPosition converts a [lon, lat] pair. No range checks are applied.
func FromPosition(p [2]float64) LatLng {
	return LatLng{Latitude: p[1], Longitude: p[0]}
}

// Kind is the rendering type of an overlay.
type Kind int

const (
	Point Kind = iota
	Polyline
	Polygon
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Polyline:
		return "polyline"
	case Polygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Overlay is one geometry unit of a feature. Points hold a single
// coordinate, polylines their path, polygons their outer ring. Holes is
// nil unless the source polygon has more than one ring.
type Overlay struct {
	Feature     *feature.Feature `json:"-"`
	Kind        Kind             `json:"type"`
	Coordinates []LatLng         `json:"coordinates"`
	Holes       [][]LatLng       `json:"holes,omitempty"`
}

// Position returns the marker position of a point overlay.
func (o *Overlay) Position() LatLng {
	if len(o.Coordinates) == 0 {
		return LatLng{}
	}
	return o.Coordinates[0]
}

// Properties returns the properties of the source feature.
func (o *Overlay) Properties() *feature.Properties {
	if o.Feature == nil {
		return &feature.Properties{}
	}
	return &o.Feature.Properties
}
