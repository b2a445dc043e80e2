package overlay

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

func (ll LatLng) point() orb.Point {
	return orb.Point{ll.Longitude, ll.Latitude}
}

func ring(path []LatLng) orb.Ring {
	r := make(orb.Ring, len(path))
	for i, ll := range path {
		r[i] = ll.point()
	}
	return r
}

// Polygon returns the outer ring and holes as an orb polygon.
func (o *Overlay) Polygon() orb.Polygon {
	p := make(orb.Polygon, 0, 1+len(o.Holes))
	p = append(p, ring(o.Coordinates))
	for _, h := range o.Holes {
		p = append(p, ring(h))
	}
	return p
}

// Geometry returns the overlay as an orb geometry in lon/lat order.
func (o *Overlay) Geometry() orb.Geometry {
	switch o.Kind {
	case Point:
		return o.Position().point()
	case Polyline:
		return orb.LineString(ring(o.Coordinates))
	}
	return o.Polygon()
}

// Contains reports whether ll lies inside a polygon overlay and outside all
// of its holes. Points and polylines contain nothing.
func (o *Overlay) Contains(ll LatLng) bool {
	if o.Kind != Polygon || len(o.Coordinates) < 3 {
		return false
	}
	return planar.PolygonContains(o.Polygon(), ll.point())
}

// Bound returns the lon/lat bounds of all overlay coordinates, holes
// included. The zero bound is returned for an empty list.
func Bound(overlays []Overlay) orb.Bound {
	var b orb.Bound
	first := true
	extend := func(path []LatLng) {
		for _, ll := range path {
			if first {
				b = ll.point().Bound()
				first = false
				continue
			}
			b = b.Extend(ll.point())
		}
	}
	for i := range overlays {
		extend(overlays[i].Coordinates)
		for _, h := range overlays[i].Holes {
			extend(h)
		}
	}
	return b
}

// ToGeoJSON exports overlays as a feature collection. Each feature carries
// the source properties plus "kind" and "index".
func ToGeoJSON(overlays []Overlay) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range overlays {
		o := &overlays[i]
		f := geojson.NewFeature(o.Geometry())
		for k, v := range o.Properties().Values {
			f.Properties[k] = v
		}
		f.Properties["kind"] = o.Kind.String()
		f.Properties["index"] = i
		fc.Append(f)
	}
	return fc
}
