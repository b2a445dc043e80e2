package render

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"geoverlay/internal/overlay"
)

var (
	ErrNotRendered     = errors.New("render: tap before first render")
	ErrIndexOutOfRange = errors.New("render: overlay index out of range")
	ErrNotPolygon      = errors.New("render: overlay is not a polygon")
)

const noSelection = -1

// Renderer draws an overlay list onto a Surface and tracks which polygon is
// selected. It is not safe for concurrent use; taps and renders are expected
// to come from one UI loop.
type Renderer struct {
	overlays []overlay.Overlay
	defaults Style

	// resolved and handles are indexed like overlays. Entries for
	// non-polygon overlays stay zero.
	resolved []Resolved
	handles  []PolygonHandle

	selected int
	rendered bool
}

func New(overlays []overlay.Overlay, defaults Style) *Renderer {
	r := &Renderer{defaults: defaults}
	r.SetOverlays(overlays)
	return r
}

// SetOverlays replaces the overlay list. The selection is cleared and
// nothing can be tapped until the next Render.
func (r *Renderer) SetOverlays(overlays []overlay.Overlay) {
	r.overlays = overlays
	r.handles = nil
	r.rendered = false
	r.selected = noSelection
	r.resolve()
}

func (r *Renderer) resolve() {
	r.resolved = make([]Resolved, len(r.overlays))
	for i := range r.overlays {
		o := &r.overlays[i]
		if o.Kind == overlay.Polygon {
			r.resolved[i] = Resolve(o.Properties(), r.defaults)
		}
	}
}

func (r *Renderer) Overlays() []overlay.Overlay { return r.overlays }

// Selected returns the index of the selected polygon overlay.
func (r *Renderer) Selected() (int, bool) {
	return r.selected, r.selected != noSelection
}

// Resolved returns the effective style of overlay i; ok is false for
// anything but a polygon.
func (r *Renderer) Resolved(i int) (Resolved, bool) {
	if i < 0 || i >= len(r.overlays) || r.overlays[i].Kind != overlay.Polygon {
		return Resolved{}, false
	}
	return r.resolved[i], true
}

// Render emits one primitive per overlay and records the polygon handles.
// A polygon that is selected while the surface is rebuilt gets its
// highlight back.
func (r *Renderer) Render(s Surface) {
	r.handles = make([]PolygonHandle, len(r.overlays))
	for i := range r.overlays {
		o := &r.overlays[i]
		switch o.Kind {
		case overlay.Point:
			s.Marker(i, o.Position(), r.defaults.Color)
		case overlay.Polyline:
			s.Polyline(i, o.Coordinates, LineStyle{Color: r.defaults.StrokeColor, Width: r.defaults.StrokeWidth})
		case overlay.Polygon:
			res := &r.resolved[i]
			r.handles[i] = s.Polygon(i, PolygonOptions{
				Outer:    o.Coordinates,
				Holes:    o.Holes,
				Style:    res.Base,
				Tappable: res.Tappable,
			})
		}
	}
	r.rendered = true
	if r.selected != noSelection && r.resolved[r.selected].Highlights {
		r.setStyle(r.selected, r.resolved[r.selected].Highlight)
	}
	log.Debug().Int("overlays", len(r.overlays)).Msg("Overlays rendered")
}

// Tap handles a tap on polygon overlay i.
//
// The previously selected polygon, if any, is restored to its base style:
// the resolved style it was rendered with, feature stroke and fill over the
// defaults. It is not reset to the default stroke alone, so per-feature
// styling survives a change of selection.
// Tapping a polygon other than the selected one selects it; if it
// highlights, it is restyled and its OnPress receives the properties.
// Tapping the selected polygon clears the selection and calls its OnPress
// with nil.
func (r *Renderer) Tap(i int) error {
	if !r.rendered {
		return ErrNotRendered
	}
	if i < 0 || i >= len(r.overlays) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if r.overlays[i].Kind != overlay.Polygon {
		return fmt.Errorf("%w: %d is a %s", ErrNotPolygon, i, r.overlays[i].Kind)
	}

	prev := r.selected
	if prev != noSelection && r.resolved[prev].Highlights {
		r.setStyle(prev, r.resolved[prev].Base)
	}

	res := &r.resolved[i]
	if prev == noSelection || i != prev {
		r.selected = i
		if res.Highlights {
			r.setStyle(i, res.Highlight)
			res.OnPress(r.overlays[i].Properties())
		}
		log.Debug().Int("index", i).Int("previous", prev).Msg("Polygon selected")
		return nil
	}

	r.selected = noSelection
	res.OnPress(nil)
	log.Debug().Int("index", i).Msg("Polygon deselected")
	return nil
}

// Hit returns the topmost tappable polygon containing ll. Later overlays
// are drawn over earlier ones, so the search runs backwards.
func (r *Renderer) Hit(ll overlay.LatLng) (int, bool) {
	for i := len(r.overlays) - 1; i >= 0; i-- {
		if r.overlays[i].Kind != overlay.Polygon || !r.resolved[i].Tappable {
			continue
		}
		if r.overlays[i].Contains(ll) {
			return i, true
		}
	}
	return 0, false
}

func (r *Renderer) setStyle(i int, s PolygonStyle) {
	if h := r.handles[i]; h != nil {
		h.SetStyle(s)
	}
}
