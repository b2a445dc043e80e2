package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
	"github.com/rs/zerolog/log"

	"geoverlay/internal/feature"
)

// areaKeys mark a closed way as a polygon rather than a line.
var areaKeys = []string{"area", "building", "landuse", "natural", "leisure", "amenity"}

// LoadOSM reads an OSM PBF extract. Tagged nodes become points, ways become
// line strings, and closed ways carrying an area tag become polygons.
// Relations are ignored.
func LoadOSM(path string) (feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return feature.Collection{}, err
	}
	defer f.Close()
	return decodeOSM(f)
}

func decodeOSM(r io.Reader) (feature.Collection, error) {
	d := osmpbf.NewDecoder(r)
	d.SetBufferSize(osmpbf.MaxBlobSize)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return feature.Collection{}, err
	}

	coords := make(map[int64][]any)
	var points []feature.Feature
	var ways []*osmpbf.Way
	var nc, wc, rc uint64
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return feature.Collection{}, err
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			pos := []any{v.Lon, v.Lat}
			coords[v.ID] = pos
			if len(v.Tags) > 0 {
				points = append(points, osmFeature(feature.Point, pos, v.ID, v.Tags))
			}
			nc++
		case *osmpbf.Way:
			ways = append(ways, v)
			wc++
		case *osmpbf.Relation:
			rc++
		default:
			return feature.Collection{}, fmt.Errorf("osm: unknown type %T", v)
		}
	}

	features := points
	var missing int
	for _, w := range ways {
		path := make([]any, 0, len(w.NodeIDs))
		for _, id := range w.NodeIDs {
			if pos, ok := coords[id]; ok {
				path = append(path, pos)
			} else {
				missing++
			}
		}
		if len(path) < 2 {
			continue
		}
		if closed(w) && isArea(w.Tags) {
			features = append(features, osmFeature(feature.Polygon, []any{path}, w.ID, w.Tags))
			continue
		}
		features = append(features, osmFeature(feature.LineString, path, w.ID, w.Tags))
	}

	log.Debug().
		Uint64("nodes", nc).
		Uint64("ways", wc).
		Uint64("relations", rc).
		Int("missing_nodes", missing).
		Msg("OSM extract decoded")

	if len(features) == 0 {
		return feature.Collection{}, errors.New("osm: no features found")
	}
	return feature.New(features...), nil
}

func osmFeature(t feature.GeometryType, coords any, id int64, tags map[string]string) feature.Feature {
	values := make(map[string]any, len(tags)+1)
	for k, v := range tags {
		values[k] = v
	}
	values["osm_id"] = float64(id)
	return feature.Feature{
		Type:       "Feature",
		Geometry:   &feature.Geometry{Type: t, Coordinates: coords},
		Properties: feature.NewProperties(values),
	}
}

func closed(w *osmpbf.Way) bool {
	n := len(w.NodeIDs)
	return n >= 4 && w.NodeIDs[0] == w.NodeIDs[n-1]
}

func isArea(tags map[string]string) bool {
	if tags["area"] == "no" {
		return false
	}
	for _, k := range areaKeys {
		if _, ok := tags[k]; ok {
			return true
		}
	}
	return false
}
