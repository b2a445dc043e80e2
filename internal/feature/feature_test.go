package feature

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parks = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Park", "fillColor": "#00ff00", "strokeWidth": "3", "tappable": true},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
    },
    {"type": "Feature", "properties": null, "geometry": null}
  ]
}`

func TestUnmarshalCollection(t *testing.T) {
	c, err := Decode(strings.NewReader(parks))
	require.NoError(t, err)
	require.Len(t, c.Features, 2)

	park := c.Features[0]
	require.NotNil(t, park.Geometry)
	assert.Equal(t, Polygon, park.Geometry.Type)
	assert.Equal(t, "#00ff00", park.Properties.FillColor)
	assert.Equal(t, 3.0, park.Properties.StrokeWidth)
	assert.True(t, park.Properties.Tappable)
	assert.Equal(t, "Park", park.Properties.Text("name"))

	empty := c.Features[1]
	assert.Nil(t, empty.Geometry)
	assert.Empty(t, empty.Properties.Values)
}

func TestUnmarshalWrapsFeatureAndGeometry(t *testing.T) {
	c, err := Unmarshal([]byte(`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, Point, c.Features[0].Geometry.Type)

	c, err = Unmarshal([]byte(`{"type":"LineString","coordinates":[[1,2],[3,4]]}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, LineString, c.Features[0].Geometry.Type)
	assert.Equal(t, "FeatureCollection", c.Type)
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"features":[]}`))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func TestPropertiesNonObject(t *testing.T) {
	var f Feature
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Feature","properties":[1,2],"geometry":null}`), &f))
	assert.Empty(t, f.Properties.FillColor)
	assert.Empty(t, f.Properties.Values)
}

func TestStrokeWidthCoercion(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{2.5, 2.5},
		{"4", 4},
		{" 1.5 ", 1.5},
		{"wide", 0},
		{"NaN", 0},
		{true, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		p := NewProperties(map[string]any{"strokeWidth": tt.in})
		assert.Equal(t, tt.want, p.StrokeWidth, "strokeWidth %v", tt.in)
	}
}

func TestHighlighted(t *testing.T) {
	p := NewProperties(map[string]any{
		"fillColor":   "red",
		"strokeColor": "black",
		"strokeWidth": 2.0,
	})
	fill, stroke, width := p.Highlighted()
	assert.Equal(t, "red", fill)
	// The highlighted stroke falls back to the fill colour, not the stroke.
	assert.Equal(t, "red", stroke)
	assert.Equal(t, 2.0, width)
	assert.False(t, p.Highlights())

	p.HighlightedFillColor = "orange"
	assert.True(t, p.Highlights())

	p.FillColor = ""
	assert.False(t, p.Highlights(), "no highlight without a base fill")
}

func TestMarshalFoldsTypedFields(t *testing.T) {
	p := Properties{FillColor: "blue", Tappable: true, Values: map[string]any{"name": "x"}}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"name": "x", "fillColor": "blue", "tappable": true}, got)
}

func TestOnPressAttachesOnlyMissing(t *testing.T) {
	var calls []string
	own := func(*Properties) { calls = append(calls, "own") }
	c := New(
		Feature{Properties: Properties{OnPress: own}},
		Feature{},
	)
	c.OnPress(func(*Properties) { calls = append(calls, "host") })

	c.Features[0].Properties.OnPress(nil)
	c.Features[1].Properties.OnPress(nil)
	assert.Equal(t, []string{"own", "host"}, calls)
}

func TestFromOrb(t *testing.T) {
	g := FromOrb(orb.Point{10, 20})
	assert.Equal(t, &Geometry{Type: Point, Coordinates: []any{10.0, 20.0}}, g)

	poly := orb.Polygon{
		{{0, 0}, {4, 0}, {4, 4}, {0, 0}},
		{{1, 1}, {2, 1}, {2, 2}, {1, 1}},
	}
	g = FromOrb(poly)
	require.Equal(t, Polygon, g.Type)
	require.Len(t, g.Coordinates, 2)

	g = FromOrb(orb.MultiPolygon{poly, poly})
	assert.Equal(t, MultiPolygon, g.Type)
	assert.Len(t, g.Coordinates, 2)

	assert.Equal(t, GeometryCollection, FromOrb(orb.Collection{orb.Point{}}).Type)
	assert.Nil(t, FromOrb(nil))
}

func TestFromOrbFeature(t *testing.T) {
	f := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	f.Properties["strokeColor"] = "#111"
	f.Properties["name"] = "route"

	got := FromOrbFeature(f)
	assert.Equal(t, LineString, got.Geometry.Type)
	assert.Equal(t, "#111", got.Properties.StrokeColor)
	assert.Equal(t, "route", got.Properties.Text("name"))

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	assert.Len(t, FromOrbCollection(fc).Features, 1)
}
