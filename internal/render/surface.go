// Package render binds overlays to map primitives and owns the polygon
// selection state.
//
// Drawing is delegated to a Surface. The renderer emits one primitive per
// overlay, in list order, and identifies each primitive by its overlay
// index. Polygon primitives hand back a PolygonHandle that the renderer
// keeps and uses to restyle them in place when the selection changes.
package render

import "geoverlay/internal/overlay"

// Style holds the defaults for every overlay. Polygons may override the
// stroke and fill through feature properties; markers and polylines always
// use these values.
type Style struct {
	Color       string  `yaml:"color"`
	StrokeColor string  `yaml:"strokeColor"`
	FillColor   string  `yaml:"fillColor"`
	StrokeWidth float64 `yaml:"strokeWidth"`
}

type LineStyle struct {
	Color string
	Width float64
}

type PolygonStyle struct {
	FillColor   string
	StrokeColor string
	StrokeWidth float64
}

type PolygonOptions struct {
	Outer    []overlay.LatLng
	Holes    [][]overlay.LatLng
	Style    PolygonStyle
	Tappable bool
}

// Surface is the map drawing the overlays. Implementations decide how to
// hit-test and report taps; they call Renderer.Tap with the overlay index.
type Surface interface {
	Marker(index int, at overlay.LatLng, color string)
	Polyline(index int, path []overlay.LatLng, stroke LineStyle)
	Polygon(index int, p PolygonOptions) PolygonHandle
}

// PolygonHandle restyles an already drawn polygon without redrawing the
// rest of the surface.
type PolygonHandle interface {
	SetStyle(PolygonStyle)
}
