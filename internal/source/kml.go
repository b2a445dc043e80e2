package source

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"geoverlay/internal/feature"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlRing struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Name        string      `xml:"name"`
	Description string      `xml:"description"`
	Point       *kmlCoords  `xml:"Point"`
	LineString  *kmlCoords  `xml:"LineString"`
	Polygon     *kmlPolygon `xml:"Polygon"`
	Data        []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value"`
	} `xml:"ExtendedData>Data"`
}

// LoadKML extracts Placemarks with Point, LineString or Polygon geometry,
// at any depth in the document. KML coordinates are "lon,lat[,alt]"
// tuples; altitude is ignored.
func LoadKML(path string) (feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return feature.Collection{}, err
	}
	defer f.Close()
	return decodeKML(f)
}

func decodeKML(r io.Reader) (feature.Collection, error) {
	var features []feature.Feature
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return feature.Collection{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return feature.Collection{}, err
		}
		if ft, ok := pm.feature(); ok {
			features = append(features, ft)
		}
	}
	if len(features) == 0 {
		return feature.Collection{}, errors.New("kml: no placemarks found")
	}
	return feature.New(features...), nil
}

func (pm *kmlPlacemark) feature() (feature.Feature, bool) {
	var g *feature.Geometry
	switch {
	case pm.Point != nil:
		pts := kmlTuples(pm.Point.Coordinates)
		if len(pts) == 0 {
			return feature.Feature{}, false
		}
		g = &feature.Geometry{Type: feature.Point, Coordinates: pts[0]}
	case pm.LineString != nil:
		g = &feature.Geometry{Type: feature.LineString, Coordinates: kmlTuples(pm.LineString.Coordinates)}
	case pm.Polygon != nil:
		rings := []any{kmlTuples(pm.Polygon.Outer.LinearRing.Coordinates)}
		for _, in := range pm.Polygon.Inner {
			rings = append(rings, kmlTuples(in.LinearRing.Coordinates))
		}
		g = &feature.Geometry{Type: feature.Polygon, Coordinates: rings}
	default:
		return feature.Feature{}, false
	}

	values := map[string]any{}
	if pm.Name != "" {
		values["name"] = strings.TrimSpace(pm.Name)
	}
	if pm.Description != "" {
		values["description"] = strings.TrimSpace(pm.Description)
	}
	for _, d := range pm.Data {
		values[d.Name] = strings.TrimSpace(d.Value)
	}
	return feature.Feature{Type: "Feature", Geometry: g, Properties: feature.NewProperties(values)}, true
}

// kmlTuples parses whitespace separated "lon,lat[,alt]" tuples into
// GeoJSON positions. Unparsable tuples are skipped.
func kmlTuples(s string) []any {
	out := []any{}
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, []any{lon, lat})
	}
	return out
}
