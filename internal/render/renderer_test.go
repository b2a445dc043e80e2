package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoverlay/internal/feature"
	"geoverlay/internal/overlay"
)

var defaults = Style{Color: "pin", StrokeColor: "stroke", FillColor: "fill", StrokeWidth: 1}

// recorder is a Surface that logs every primitive and restyle.
type recorder struct {
	calls   []string
	handles map[int]*handle
}

type handle struct {
	index   int
	style   PolygonStyle
	rec     *recorder
	restyle []PolygonStyle
}

func (h *handle) SetStyle(s PolygonStyle) {
	h.style = s
	h.restyle = append(h.restyle, s)
	h.rec.calls = append(h.rec.calls, fmt.Sprintf("style %d %s", h.index, s.FillColor))
}

func newRecorder() *recorder { return &recorder{handles: map[int]*handle{}} }

func (r *recorder) Marker(i int, at overlay.LatLng, color string) {
	r.calls = append(r.calls, fmt.Sprintf("marker %d %s", i, color))
}

func (r *recorder) Polyline(i int, path []overlay.LatLng, s LineStyle) {
	r.calls = append(r.calls, fmt.Sprintf("polyline %d %s %g", i, s.Color, s.Width))
}

func (r *recorder) Polygon(i int, p PolygonOptions) PolygonHandle {
	r.calls = append(r.calls, fmt.Sprintf("polygon %d %s", i, p.Style.FillColor))
	h := &handle{index: i, style: p.Style, rec: r}
	r.handles[i] = h
	return h
}

func square(x float64) []any {
	return []any{[]any{
		[]any{x, 0.0}, []any{x + 1, 0.0}, []any{x + 1, 1.0}, []any{x, 1.0}, []any{x, 0.0},
	}}
}

func polygonFeature(x float64, props map[string]any) feature.Feature {
	return feature.Feature{
		Type:       "Feature",
		Geometry:   &feature.Geometry{Type: feature.Polygon, Coordinates: square(x)},
		Properties: feature.NewProperties(props),
	}
}

type pressLog []string

func (l *pressLog) record(p *feature.Properties) {
	if p == nil {
		*l = append(*l, "nil")
		return
	}
	*l = append(*l, p.Text("name"))
}

func twoPolygons(presses *pressLog) (*Renderer, *recorder) {
	features := []feature.Feature{
		polygonFeature(0, map[string]any{"name": "a", "fillColor": "a-fill", "highlightedFillColor": "a-hi", "tappable": true}),
		polygonFeature(5, map[string]any{"name": "b", "fillColor": "b-fill", "highlightedFillColor": "b-hi", "tappable": true}),
	}
	feature.New(features...).OnPress(presses.record)
	r := New(overlay.Build(features), defaults)
	rec := newRecorder()
	r.Render(rec)
	return r, rec
}

func TestRenderEmitsOnePrimitivePerOverlay(t *testing.T) {
	features := []feature.Feature{
		polygonFeature(0, map[string]any{"fillColor": "green", "strokeColor": "black"}),
		{Type: "Feature", Geometry: &feature.Geometry{Type: feature.LineString, Coordinates: []any{[]any{0.0, 0.0}, []any{1.0, 1.0}}},
			Properties: feature.NewProperties(map[string]any{"strokeColor": "ignored"})},
		{Type: "Feature", Geometry: &feature.Geometry{Type: feature.MultiPoint, Coordinates: []any{[]any{0.0, 0.0}, []any{1.0, 1.0}}}},
	}
	r := New(overlay.Build(features), defaults)
	rec := newRecorder()
	r.Render(rec)

	assert.Equal(t, []string{
		"marker 0 pin",
		"marker 1 pin",
		"polyline 2 stroke 1",
		"polygon 3 green",
	}, rec.calls)
	assert.Equal(t, PolygonStyle{FillColor: "green", StrokeColor: "black", StrokeWidth: 1}, rec.handles[3].style)
}

func TestTapStateMachine(t *testing.T) {
	var presses pressLog
	r, rec := twoPolygons(&presses)
	rec.calls = nil

	_, ok := r.Selected()
	require.False(t, ok)

	require.NoError(t, r.Tap(0))
	sel, ok := r.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)
	assert.Equal(t, "a-hi", rec.handles[0].style.FillColor)
	assert.Equal(t, []string{"a"}, []string(presses))

	require.NoError(t, r.Tap(1))
	sel, _ = r.Selected()
	assert.Equal(t, 1, sel)
	assert.Equal(t, "a-fill", rec.handles[0].style.FillColor, "previous selection restored")
	assert.Equal(t, r.resolved[0].Base, rec.handles[0].style, "restored to the style it was rendered with")
	assert.Equal(t, "b-hi", rec.handles[1].style.FillColor)
	assert.Equal(t, []string{"a", "b"}, []string(presses))

	require.NoError(t, r.Tap(1))
	_, ok = r.Selected()
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b", "nil"}, []string(presses))

	assert.Equal(t, []string{
		"style 0 a-hi",
		"style 0 a-fill",
		"style 1 b-hi",
		"style 1 b-fill",
	}, rec.calls, "the deselect path only restores the previous selection")
	assert.Len(t, rec.handles[0].restyle, 2)
}

func TestTapReselectAfterClear(t *testing.T) {
	var presses pressLog
	r, _ := twoPolygons(&presses)

	require.NoError(t, r.Tap(0))
	require.NoError(t, r.Tap(0))
	require.NoError(t, r.Tap(0))
	sel, ok := r.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)
	assert.Equal(t, []string{"a", "nil", "a"}, []string(presses))
}

func TestTapWithoutHighlight(t *testing.T) {
	var presses pressLog
	features := []feature.Feature{
		// same highlighted fill: no restyle, no press on select
		polygonFeature(0, map[string]any{"name": "same", "fillColor": "x", "highlightedFillColor": "x"}),
		// no fill colour at all
		polygonFeature(5, map[string]any{"name": "bare"}),
	}
	feature.New(features...).OnPress(presses.record)
	r := New(overlay.Build(features), defaults)
	rec := newRecorder()
	r.Render(rec)
	rec.calls = nil

	require.NoError(t, r.Tap(0))
	sel, ok := r.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)
	require.NoError(t, r.Tap(1))
	require.NoError(t, r.Tap(1))

	assert.Empty(t, rec.calls)
	assert.Equal(t, []string{"nil"}, []string(presses))
}

func TestTapErrors(t *testing.T) {
	features := []feature.Feature{
		{Type: "Feature", Geometry: &feature.Geometry{Type: feature.Point, Coordinates: []any{1.0, 2.0}}},
		polygonFeature(0, map[string]any{"fillColor": "f", "highlightedFillColor": "h"}),
	}
	r := New(overlay.Build(features), defaults)
	assert.ErrorIs(t, r.Tap(1), ErrNotRendered)

	r.Render(newRecorder())
	assert.ErrorIs(t, r.Tap(0), ErrNotPolygon)
	assert.ErrorIs(t, r.Tap(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, r.Tap(-1), ErrIndexOutOfRange)
	_, ok := r.Selected()
	assert.False(t, ok, "failed taps leave the selection alone")
}

func TestRerenderKeepsHighlight(t *testing.T) {
	var presses pressLog
	r, _ := twoPolygons(&presses)
	require.NoError(t, r.Tap(1))

	rec := newRecorder()
	r.Render(rec)
	assert.Equal(t, "b-hi", rec.handles[1].style.FillColor)
	assert.Equal(t, "a-fill", rec.handles[0].style.FillColor)

	require.NoError(t, r.Tap(0))
	assert.Equal(t, "b-fill", rec.handles[1].style.FillColor)
}

func TestSetOverlaysClearsSelection(t *testing.T) {
	var presses pressLog
	r, _ := twoPolygons(&presses)
	require.NoError(t, r.Tap(0))

	r.SetOverlays(r.Overlays()[:1])
	_, ok := r.Selected()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Tap(0), ErrNotRendered)
}

func TestHit(t *testing.T) {
	features := []feature.Feature{
		polygonFeature(0, map[string]any{"tappable": true}),
		polygonFeature(0, map[string]any{"tappable": true}),
		polygonFeature(5, map[string]any{}),
	}
	r := New(overlay.Build(features), defaults)

	i, ok := r.Hit(overlay.LatLng{Latitude: 0.5, Longitude: 0.5})
	assert.True(t, ok)
	assert.Equal(t, 1, i, "topmost wins")

	_, ok = r.Hit(overlay.LatLng{Latitude: 0.5, Longitude: 5.5})
	assert.False(t, ok, "not tappable")
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := feature.NewProperties(nil)
		res := Resolve(&p, defaults)
		assert.Equal(t, PolygonStyle{FillColor: "fill", StrokeColor: "stroke", StrokeWidth: 1}, res.Base)
		assert.False(t, res.Tappable)
		assert.False(t, res.Highlights)
		assert.NotPanics(t, func() { res.OnPress(nil) })
	})

	t.Run("feature overrides", func(t *testing.T) {
		p := feature.NewProperties(map[string]any{
			"fillColor":   "red",
			"strokeColor": "blue",
			"strokeWidth": "3",
			"tappable":    true,
		})
		res := Resolve(&p, defaults)
		assert.Equal(t, PolygonStyle{FillColor: "red", StrokeColor: "blue", StrokeWidth: 3}, res.Base)
		assert.True(t, res.Tappable)
	})

	t.Run("highlighted stroke defaults to fill", func(t *testing.T) {
		// Kept deliberately: the highlighted stroke colour falls back to the
		// fill colour rather than the stroke colour.
		p := feature.NewProperties(map[string]any{
			"fillColor":            "red",
			"strokeColor":          "blue",
			"highlightedFillColor": "pink",
		})
		res := Resolve(&p, defaults)
		assert.Equal(t, PolygonStyle{FillColor: "pink", StrokeColor: "red", StrokeWidth: 1}, res.Highlight)
		assert.True(t, res.Highlights)
	})

	t.Run("zero width and empty colour are unset", func(t *testing.T) {
		p := feature.NewProperties(map[string]any{"strokeWidth": 0.0, "strokeColor": ""})
		res := Resolve(&p, defaults)
		assert.Equal(t, PolygonStyle{FillColor: "fill", StrokeColor: "stroke", StrokeWidth: 1}, res.Base)
	})

	t.Run("explicit highlight", func(t *testing.T) {
		p := feature.NewProperties(map[string]any{
			"fillColor":              "red",
			"strokeWidth":            2.0,
			"highlightedFillColor":   "pink",
			"highlightedStrokeColor": "white",
			"highlightedStrokeWidth": 4.0,
		})
		res := Resolve(&p, defaults)
		assert.Equal(t, PolygonStyle{FillColor: "pink", StrokeColor: "white", StrokeWidth: 4}, res.Highlight)
	})
}

func TestResolvedLookup(t *testing.T) {
	fs := feature.New(
		feature.Feature{Geometry: &feature.Geometry{Type: feature.Point, Coordinates: []any{1.0, 2.0}}},
		feature.Feature{
			Geometry:   &feature.Geometry{Type: feature.Polygon, Coordinates: []any{[]any{[]any{0.0, 0.0}, []any{1.0, 0.0}, []any{1.0, 1.0}, []any{0.0, 0.0}}}},
			Properties: feature.NewProperties(map[string]any{"fillColor": "red"}),
		},
	)
	r := New(overlay.Build(fs.Features), defaults)

	res, ok := r.Resolved(1)
	require.True(t, ok)
	assert.Equal(t, "red", res.Base.FillColor)

	_, ok = r.Resolved(0)
	assert.False(t, ok, "points have no polygon style")
	_, ok = r.Resolved(5)
	assert.False(t, ok)
}
