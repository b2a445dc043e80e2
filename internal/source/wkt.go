package source

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"

	"geoverlay/internal/feature"
)

// ParseWKT parses a single WKT geometry into a feature without properties.
func ParseWKT(s string) (feature.Feature, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return feature.Feature{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return feature.Feature{}, err
	}
	return feature.Feature{
		Type:       "Feature",
		Geometry:   feature.FromOrb(g),
		Properties: feature.NewProperties(nil),
	}, nil
}

// LoadWKT reads one WKT geometry per non-empty line. Lines starting with
// '#' are comments.
func LoadWKT(path string) (feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return feature.Collection{}, err
	}
	defer f.Close()

	var features []feature.Feature
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ft, err := ParseWKT(line)
		if err != nil {
			return feature.Collection{}, err
		}
		features = append(features, ft)
	}
	if err := sc.Err(); err != nil {
		return feature.Collection{}, err
	}
	if len(features) == 0 {
		return feature.Collection{}, errors.New("wkt: no geometries found")
	}
	return feature.New(features...), nil
}
