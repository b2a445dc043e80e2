package feature

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FromOrb converts an orb geometry into a Geometry whose coordinate tree has
// the same shape encoding/json would produce. Rings and bounds become
// polygons. Collections are kept as GeometryCollection without coordinates.
func FromOrb(g orb.Geometry) *Geometry {
	switch g := g.(type) {
	case nil:
		return nil
	case orb.Point:
		return &Geometry{Type: Point, Coordinates: position(g)}
	case orb.MultiPoint:
		return &Geometry{Type: MultiPoint, Coordinates: positions(g)}
	case orb.LineString:
		return &Geometry{Type: LineString, Coordinates: positions(g)}
	case orb.MultiLineString:
		out := make([]any, len(g))
		for i, ls := range g {
			out[i] = positions(ls)
		}
		return &Geometry{Type: MultiLineString, Coordinates: out}
	case orb.Ring:
		return &Geometry{Type: Polygon, Coordinates: rings(orb.Polygon{g})}
	case orb.Polygon:
		return &Geometry{Type: Polygon, Coordinates: rings(g)}
	case orb.MultiPolygon:
		out := make([]any, len(g))
		for i, p := range g {
			out[i] = rings(p)
		}
		return &Geometry{Type: MultiPolygon, Coordinates: out}
	case orb.Bound:
		return &Geometry{Type: Polygon, Coordinates: rings(g.ToPolygon())}
	case orb.Collection:
		return &Geometry{Type: GeometryCollection}
	}
	return nil
}

// FromOrbFeature converts an orb/geojson feature.
func FromOrbFeature(f *geojson.Feature) Feature {
	values := make(map[string]any, len(f.Properties))
	for k, v := range f.Properties {
		values[k] = v
	}
	return Feature{
		Type:       "Feature",
		Geometry:   FromOrb(f.Geometry),
		Properties: NewProperties(values),
	}
}

// FromOrbCollection converts an orb/geojson feature collection.
func FromOrbCollection(fc *geojson.FeatureCollection) Collection {
	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, FromOrbFeature(f))
	}
	return New(features...)
}

func position(p orb.Point) []any {
	return []any{p[0], p[1]}
}

func positions[T ~[]orb.Point](ps T) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = position(p)
	}
	return out
}

func rings(p orb.Polygon) []any {
	out := make([]any, len(p))
	for i, r := range p {
		out[i] = positions(r)
	}
	return out
}
