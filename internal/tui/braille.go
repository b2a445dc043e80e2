package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4 micro-pixel grid per terminal cell. Each cell keeps
// the colour of the last pixel written to it.
type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	color [][]string // per-cell colour, "" for default
	glyph [][]rune   // per-cell override drawn instead of the dots
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	g := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
		g[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, color: c, glyph: g}
}

// dotBits maps (column, row) inside a cell to its braille dot.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.color[cy][cx] = color
}

// setGlyph draws r in a whole cell, on top of any dots.
func (b *brailleBuf) setGlyph(cx, cy int, r rune, color string) {
	if cx < 0 || cy < 0 || cy >= b.h || cx >= b.w {
		return
	}
	b.glyph[cy][cx] = r
	b.color[cy][cx] = color
}

// drawLineMicro draws a line on the microgrid using Bresenham. Widths
// above one thicken the line horizontally.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, color string, width int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		for k := 0; k < max(1, width); k++ {
			b.setPixel(x0+k, y0, color)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the buffer, colouring each non-empty cell.
func (b *brailleBuf) toLines() []string {
	styles := map[string]lipgloss.Style{}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			var ch string
			switch {
			case b.glyph[y][x] != 0:
				ch = string(b.glyph[y][x])
			case mask == 0:
				sb.WriteByte(' ')
				continue
			default:
				ch = string(rune(0x2800 + int(mask)))
			}
			col := b.color[y][x]
			if col == "" {
				sb.WriteString(ch)
				continue
			}
			st, ok := styles[col]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(col))
				styles[col] = st
			}
			sb.WriteString(st.Render(ch))
		}
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
