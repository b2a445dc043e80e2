package tui

import (
	"math"
	"sort"

	"geoverlay/internal/overlay"
	"geoverlay/internal/render"
)

// primitive is one drawn overlay. Polygon primitives double as the
// render.PolygonHandle so a restyle only touches this record; the next
// frame picks it up.
type primitive struct {
	kind     overlay.Kind
	index    int
	path     []overlay.LatLng
	holes    [][]overlay.LatLng
	color    string
	width    float64
	style    render.PolygonStyle
	tappable bool
}

func (p *primitive) SetStyle(s render.PolygonStyle) { p.style = s }

// canvas is the terminal render.Surface. It retains primitives between
// frames; the renderer fills it once per data change.
type canvas struct {
	prims []*primitive
}

func (c *canvas) reset() { c.prims = c.prims[:0] }

func (c *canvas) Marker(index int, at overlay.LatLng, color string) {
	c.prims = append(c.prims, &primitive{kind: overlay.Point, index: index, path: []overlay.LatLng{at}, color: color})
}

func (c *canvas) Polyline(index int, path []overlay.LatLng, stroke render.LineStyle) {
	c.prims = append(c.prims, &primitive{kind: overlay.Polyline, index: index, path: path, color: stroke.Color, width: stroke.Width})
}

func (c *canvas) Polygon(index int, p render.PolygonOptions) render.PolygonHandle {
	prim := &primitive{
		kind:     overlay.Polygon,
		index:    index,
		path:     p.Outer,
		holes:    p.Holes,
		style:    p.Style,
		tappable: p.Tappable,
	}
	c.prims = append(c.prims, prim)
	return prim
}

// layers selects which primitive kinds are drawn.
type layers struct {
	points, lines, polys bool
}

// draw paints polygons, then polylines, then markers, so markers stay on
// top of the fills.
func (c *canvas) draw(br *brailleBuf, vp viewport, show layers) {
	if show.polys {
		for _, p := range c.prims {
			if p.kind == overlay.Polygon {
				drawPolygon(br, vp, p)
			}
		}
	}
	if show.lines {
		for _, p := range c.prims {
			if p.kind == overlay.Polyline {
				drawPath(br, vp, p.path, false, p.color, p.width)
			}
		}
	}
	if show.points {
		for _, p := range c.prims {
			if p.kind == overlay.Point {
				mx, my := vp.micro(p.path[0])
				br.setPixel(mx, my, p.color)
				br.setPixel(mx+1, my, p.color)
			}
		}
	}
}

func drawPath(br *brailleBuf, vp viewport, path []overlay.LatLng, closed bool, color string, width float64) {
	if len(path) == 0 {
		return
	}
	w := strokePixels(width)
	px, py := vp.micro(path[0])
	if len(path) == 1 {
		br.setPixel(px, py, color)
		return
	}
	for _, ll := range path[1:] {
		x, y := vp.micro(ll)
		br.drawLineMicro(px, py, x, y, color, w)
		px, py = x, y
	}
	if closed {
		x, y := vp.micro(path[0])
		br.drawLineMicro(px, py, x, y, color, w)
	}
}

// drawPolygon fills with the even-odd rule over all rings, so holes stay
// empty, then strokes every ring.
func drawPolygon(br *brailleBuf, vp viewport, p *primitive) {
	rings := make([][][2]int, 0, 1+len(p.holes))
	for _, r := range append([][]overlay.LatLng{p.path}, p.holes...) {
		if len(r) < 3 {
			continue
		}
		mic := make([][2]int, len(r))
		for i, ll := range r {
			x, y := vp.micro(ll)
			mic[i] = [2]int{x, y}
		}
		rings = append(rings, mic)
	}
	if len(rings) == 0 {
		return
	}

	if p.style.FillColor != "" {
		hMic := br.h * 4
		for yMic := 0; yMic < hMic; yMic++ {
			var xs []int
			for _, r := range rings {
				for i := range r {
					a := r[i]
					b := r[(i+1)%len(r)]
					if a[1] == b[1] {
						continue
					}
					y0, y1 := a[1], b[1]
					if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
						t := float64(yMic-y0) / float64(y1-y0)
						xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
					}
				}
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				for xMic := max(0, xs[i]); xMic <= xs[i+1] && xMic < br.w*2; xMic++ {
					br.setPixel(xMic, yMic, p.style.FillColor)
				}
			}
		}
	}

	drawPath(br, vp, p.path, true, p.style.StrokeColor, p.style.StrokeWidth)
	for _, h := range p.holes {
		drawPath(br, vp, h, true, p.style.StrokeColor, p.style.StrokeWidth)
	}
}

// strokePixels maps a stroke width to micro-pixels; widths below one still
// draw a hairline.
func strokePixels(width float64) int {
	return max(1, int(math.Round(width)))
}
