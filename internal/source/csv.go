package source

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"

	"geoverlay/internal/feature"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns one point
// feature per row. Every other column becomes a string property.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) (feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return feature.Collection{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return feature.Collection{}, err
	}
	if len(recs) == 0 {
		return feature.Collection{}, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return feature.Collection{}, errors.New("csv: latitude/longitude columns not found")
	}

	var features []feature.Feature
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		values := make(map[string]any, len(header))
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			values[h] = row[i]
		}
		features = append(features, feature.Feature{
			Type:       "Feature",
			Geometry:   &feature.Geometry{Type: feature.Point, Coordinates: []any{lon, lat}},
			Properties: feature.NewProperties(values),
		})
	}
	if len(features) == 0 {
		return feature.Collection{}, errors.New("csv: no valid points parsed")
	}
	return feature.New(features...), nil
}
