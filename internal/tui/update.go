package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoverlay/internal/feature"
	"geoverlay/internal/source"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.layout()
			m.l.SetSize(28-2, h-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				c, err := parsePasted(text)
				if err != nil {
					m.status = "paste error: " + err.Error()
					return m, nil
				}
				m.selPath = ""
				m.setFeatures(c)
				m.status = "rendered paste  " + m.countsText()
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.show.points = !m.show.points
			m.status = fmt.Sprintf("points: %v", m.show.points)
		case "2":
			m.show.lines = !m.show.lines
			m.status = fmt.Sprintf("lines: %v", m.show.lines)
		case "3":
			m.show.polys = !m.show.polys
			m.status = fmt.Sprintf("polys: %v", m.show.polys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				_, _, _, h := m.layout()
				m.l.SetSize(28-2, h-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "t":
			// tap whatever lies under the map centre
			_, _, w, h := m.layout()
			m.tapAt(w/2, h/2)
		case "esc":
			switch {
			case m.inspectPopup != "":
				m.inspectPopup = ""
			case m.showAttrs:
				m.showAttrs = false
			default:
				if i, ok := m.renderer.Selected(); ok {
					m.tap(i)
				}
			}
		case "i":
			m.inspect()
		case "l":
			// toggle all layers
			all := m.show.points && m.show.lines && m.show.polys
			m.show = layers{points: !all, lines: !all, polys: !all}
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.show.points, m.show.lines, m.show.polys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		ox, oy, w, h := m.layout()
		if m.showSidebar {
			m.l.SetSize(28-2, h-2)
		}
		cx, cy := msg.X-ox, msg.Y-oy
		if cx < 0 || cx >= w || cy < 0 || cy >= h {
			m.hover = hover{}
			break
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.pasteMode && !m.showAttrs {
			m.tapAt(cx, cy)
		}
		m.trackHover(cx, cy, w, h)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// trackHover updates the hover state for map cell (cx, cy): the lon/lat
// under the cursor and the nearest drawn vertex.
func (m *Model) trackHover(cx, cy, w, h int) {
	vp := m.viewport(w, h)
	m.hover = hover{active: true, cellX: cx, cellY: cy}
	if ll, ok := vp.latLng(cx, cy); ok {
		m.hover.hasGeo = true
		m.hover.at = ll
	}
	if !vp.valid() {
		return
	}
	if _, bx, by, ok := m.nearestVertex(vp, cx*2, cy*4); ok {
		m.hover.onVertex = true
		m.hover.micX, m.hover.micY = bx, by
	}
}

// inspect opens a popup describing the dataset, the selection and the
// vertex nearest to the map centre.
func (m *Model) inspect() {
	_, _, w, h := m.layout()
	vp := m.viewport(w, h)
	if !vp.valid() {
		m.inspectPopup = ""
		m.status = "no feature nearby"
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.Min[0], m.bbox.Min[1], m.bbox.Max[0], m.bbox.Max[1]),
		m.countsText(),
	}
	if i, ok := m.renderer.Selected(); ok {
		meta = append(meta, "selected: "+featureName(m.renderer.Overlays()[i].Properties(), i))
		if res, ok := m.renderer.Resolved(i); ok {
			meta = append(meta,
				fmt.Sprintf("style: fill=%s stroke=%s width=%g", res.Base.FillColor, res.Base.StrokeColor, res.Base.StrokeWidth))
			if res.Highlights {
				meta = append(meta,
					fmt.Sprintf("highlight: fill=%s stroke=%s width=%g", res.Highlight.FillColor, res.Highlight.StrokeColor, res.Highlight.StrokeWidth))
			}
		}
	}
	if ll, _, _, ok := m.nearestVertex(vp, w, h*2); ok {
		meta = append(meta, fmt.Sprintf("nearest: lon=%.6f lat=%.6f", ll.Longitude, ll.Latitude))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// parsePasted reads pasted GeoJSON, or WKT with one geometry per line.
func parsePasted(text string) (feature.Collection, error) {
	if strings.HasPrefix(text, "{") {
		return feature.Unmarshal([]byte(text))
	}
	var features []feature.Feature
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		f, err := source.ParseWKT(line)
		if err != nil {
			return feature.Collection{}, err
		}
		features = append(features, f)
	}
	return feature.New(features...), nil
}
