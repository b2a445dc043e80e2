package tui

import (
	"strings"

	"github.com/paulmach/orb"

	"geoverlay/internal/overlay"
)

// viewport maps lon/lat into the braille microgrid (2x4 per cell) of a w by
// h cell map, honouring zoom around the centre and the pan offsets.
type viewport struct {
	bbox             orb.Bound
	zoom             float64
	offsetX, offsetY int
	w, h             int
}

func (m Model) viewport(w, h int) viewport {
	return viewport{bbox: m.bbox, zoom: m.zoom, offsetX: m.offsetX, offsetY: m.offsetY, w: w, h: h}
}

func (vp viewport) valid() bool {
	return vp.bbox.Max[0] > vp.bbox.Min[0] && vp.bbox.Max[1] > vp.bbox.Min[1] && vp.w > 1 && vp.h > 1
}

// micro maps ll to micro-pixel coordinates.
func (vp viewport) micro(ll overlay.LatLng) (int, int) {
	nx := (ll.Longitude - vp.bbox.Min[0]) / (vp.bbox.Max[0] - vp.bbox.Min[0])
	ny := (ll.Latitude - vp.bbox.Min[1]) / (vp.bbox.Max[1] - vp.bbox.Min[1])
	zx := 0.5 + (nx-0.5)*vp.zoom
	zy := 0.5 + (ny-0.5)*vp.zoom
	sx := int(zx*float64(vp.w*2-1)) + vp.offsetX*2
	sy := int((1.0-zy)*float64(vp.h*4-1)) + vp.offsetY*4
	return sx, sy
}

// latLng converts the centre of map cell (cx, cy) back to lon/lat.
func (vp viewport) latLng(cx, cy int) (overlay.LatLng, bool) {
	if !vp.valid() {
		return overlay.LatLng{}, false
	}
	mx := float64(cx*2) + 0.5 - float64(vp.offsetX*2)
	my := float64(cy*4) + 1.5 - float64(vp.offsetY*4)
	zx := mx / float64(vp.w*2-1)
	zy := 1.0 - my/float64(vp.h*4-1)
	nx := 0.5 + (zx-0.5)/vp.zoom
	ny := 0.5 + (zy-0.5)/vp.zoom
	return overlay.LatLng{
		Longitude: vp.bbox.Min[0] + nx*(vp.bbox.Max[0]-vp.bbox.Min[0]),
		Latitude:  vp.bbox.Min[1] + ny*(vp.bbox.Max[1]-vp.bbox.Min[1]),
	}, true
}

// fitBound pads b so that the data does not touch the map edges, and so a
// single point or a straight meridian still gets a usable area.
func fitBound(b orb.Bound) orb.Bound {
	d := max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	if d == 0 {
		return b.Pad(0.01)
	}
	return b.Pad(d * 0.05)
}

func (m Model) renderMap(w, h int) string {
	vp := m.viewport(w, h)
	if !vp.valid() {
		return strings.Repeat(strings.Repeat(" ", w)+"\n", h-1) + strings.Repeat(" ", w)
	}
	br := newBrailleBuf(w, h)
	m.canvas.draw(br, vp, m.show)

	// Hovered vertex, drawn as a circle over its cell.
	if m.hover.active && m.hover.onVertex {
		br.setGlyph(m.hover.micX/2, m.hover.micY/4, '◯', string(hoverFg))
	}
	return strings.Join(br.toLines(), "\n")
}

// nearestVertex finds the drawn vertex closest to micro position (mx, my).
func (m Model) nearestVertex(vp viewport, mx, my int) (overlay.LatLng, int, int, bool) {
	best := 1<<31 - 1
	var (
		at     overlay.LatLng
		bx, by int
	)
	visit := func(path []overlay.LatLng) {
		for _, ll := range path {
			x, y := vp.micro(ll)
			dx, dy := x-mx, y-my
			if d := dx*dx + dy*dy; d < best {
				best, at, bx, by = d, ll, x, y
			}
		}
	}
	for _, p := range m.canvas.prims {
		if !m.show.visible(p.kind) {
			continue
		}
		visit(p.path)
		for _, h := range p.holes {
			visit(h)
		}
	}
	return at, bx, by, best != 1<<31-1
}

func (l layers) visible(k overlay.Kind) bool {
	switch k {
	case overlay.Point:
		return l.points
	case overlay.Polyline:
		return l.lines
	}
	return l.polys
}
