package overlay

import (
	"fmt"

	"geoverlay/internal/feature"
)

// family groups geometry types that become the same kind of overlay.
// The order of the constants is the order of the output buckets.
type family int

const (
	pointFamily family = iota
	lineFamily
	polygonFamily
	multiPolygonFamily
	numFamilies

	noFamily family = -1
)

func familyOf(t feature.GeometryType) family {
	switch t {
	case feature.Point, feature.MultiPoint:
		return pointFamily
	case feature.LineString, feature.MultiLineString:
		return lineFamily
	case feature.Polygon:
		return polygonFamily
	case feature.MultiPolygon:
		return multiPolygonFamily
	}
	return noFamily
}

func (f family) kind() Kind {
	switch f {
	case pointFamily:
		return Point
	case lineFamily:
		return Polyline
	}
	return Polygon
}

// group is the coordinate group of one geometry unit: a single point, a
// single line, or the rings of a single polygon (ring 0 outer, rest holes).
type group struct {
	feature *feature.Feature
	rings   [][]LatLng
}

func (g group) overlay(k Kind) Overlay {
	o := Overlay{Feature: g.feature, Kind: k, Coordinates: g.rings[0]}
	if k == Polygon && len(g.rings) > 1 {
		o.Holes = g.rings[1:]
	}
	return o
}

// Build converts features into overlays: all points, then all polylines,
// then all polygons, with simple polygons ahead of those split out of
// multipolygons. Within each bucket source order is kept.
//
// Build never fails. Features without geometry, with an unsupported
// geometry type, or with coordinates that do not match their type are
// left out; Validate reports the last case.
func Build(features []feature.Feature) []Overlay {
	var buckets [numFamilies][]group
	n := 0
	for i := range features {
		fam, groups, err := extract(&features[i])
		if fam == noFamily || err != nil {
			continue
		}
		buckets[fam] = append(buckets[fam], groups...)
		n += len(groups)
	}

	out := make([]Overlay, 0, n)
	for fam, groups := range buckets {
		k := family(fam).kind()
		for _, g := range groups {
			out = append(out, g.overlay(k))
		}
	}
	return out
}

// Validate reports every feature that Build skips because its coordinates
// are malformed. Features without geometry or with unsupported types are
// not errors.
func Validate(features []feature.Feature) []error {
	var errs []error
	for i := range features {
		_, _, err := extract(&features[i])
		if err != nil {
			errs = append(errs, &InvalidGeometryError{
				Index: i,
				Type:  features[i].Geometry.Type,
				Err:   err,
			})
		}
	}
	return errs
}

// InvalidGeometryError describes a feature whose coordinate nesting does
// not match its geometry type. Err names the offending element, as in
// "coordinates[0][0]: expected position".
type InvalidGeometryError struct {
	Index int
	Type  feature.GeometryType
	Err   error
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("feature %d: %s: %v", e.Index, e.Type, e.Err)
}

func (e *InvalidGeometryError) Unwrap() error { return e.Err }

// extract returns the coordinate groups of a feature. Empty polygons yield
// no group.
func extract(f *feature.Feature) (family, []group, error) {
	g := f.Geometry
	if g == nil {
		return noFamily, nil, nil
	}
	fam := familyOf(g.Type)
	if fam == noFamily {
		return noFamily, nil, nil
	}

	var groups []group
	add := func(rings ...[]LatLng) {
		groups = append(groups, group{feature: f, rings: rings})
	}

	switch g.Type {
	case feature.Point:
		p, err := parsePosition(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		add([]LatLng{p})
	case feature.MultiPoint:
		pts, err := parsePath(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		for _, p := range pts {
			add([]LatLng{p})
		}
	case feature.LineString:
		ls, err := parsePath(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		add(ls)
	case feature.MultiLineString:
		mls, err := parsePaths(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		for _, ls := range mls {
			add(ls)
		}
	case feature.Polygon:
		rings, err := parsePaths(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		if len(rings) > 0 {
			add(rings...)
		}
	case feature.MultiPolygon:
		polys, err := parsePolygons(g.Coordinates)
		if err != nil {
			return fam, nil, err
		}
		for _, rings := range polys {
			if len(rings) > 0 {
				add(rings...)
			}
		}
	}
	return fam, groups, nil
}
