package tui

import (
	"fmt"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"geoverlay/internal/config"
	"geoverlay/internal/feature"
	"geoverlay/internal/overlay"
	"geoverlay/internal/render"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// Data
	cfg      *config.Config
	features feature.Collection
	renderer *render.Renderer
	canvas   *canvas
	bbox     orb.Bound
	counts   [3]int // by overlay.Kind

	// presses is shared with the OnPress callbacks, which outlive any one
	// copy of the model.
	presses *pressLog

	// paste mode
	pasteMode bool
	ta        textarea.Model

	show layers

	// inspect popup
	inspectPopup string

	hover hover

	// attributes table
	showAttrs bool
	tbl       table.Model
}

type hover struct {
	active     bool
	cellX      int
	cellY      int
	onVertex   bool
	micX, micY int
	hasGeo     bool
	at         overlay.LatLng
}

// pressLog records the last OnPress call made by the renderer.
type pressLog struct {
	called bool
	props  *feature.Properties
}

func (p *pressLog) record(props *feature.Properties) {
	p.called = true
	p.props = props
}

// take returns and clears the last press.
func (p *pressLog) take() (*feature.Properties, bool) {
	props, called := p.props, p.called
	p.props, p.called = nil, false
	return props, called
}

func New(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        cfg.Zoom,
		status:      "geoverlay ready",
		cfg:         cfg,
		renderer:    render.New(nil, cfg.Style),
		canvas:      &canvas{},
		presses:     &pressLog{},
		show:        layers{points: true, lines: true, polys: true},
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste GeoJSON or WKT here. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg *config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setFeatures rebuilds the overlays for c and renders them onto the canvas.
func (m *Model) setFeatures(c feature.Collection) {
	c.OnPress(m.presses.record)
	m.features = c

	overlays := overlay.Build(c.Features)
	for _, err := range overlay.Validate(c.Features) {
		log.Warn().Err(err).Msg("Feature skipped")
	}
	m.renderer.SetOverlays(overlays)
	m.canvas.reset()
	m.renderer.Render(m.canvas)

	m.counts = [3]int{}
	for i := range overlays {
		m.counts[overlays[i].Kind]++
	}
	m.bbox = orb.Bound{}
	if len(overlays) > 0 {
		m.bbox = fitBound(overlay.Bound(overlays))
	}
	m.zoom = m.cfg.Zoom
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.presses.take()
	m.status = m.countsText()
}

func (m Model) countsText() string {
	return fmt.Sprintf("features=%d  pts=%d ls=%d poly=%d",
		len(m.features.Features), m.counts[overlay.Point], m.counts[overlay.Polyline], m.counts[overlay.Polygon])
}

// tap forwards a tap on overlay i to the renderer and reports the outcome in
// the status line.
func (m *Model) tap(i int) {
	if err := m.renderer.Tap(i); err != nil {
		m.status = "tap: " + err.Error()
		return
	}
	props, pressed := m.presses.take()
	switch {
	case pressed && props == nil:
		m.status = "selection cleared"
	case pressed:
		m.status = "selected: " + featureName(props, i)
	default:
		if _, ok := m.renderer.Selected(); ok {
			m.status = fmt.Sprintf("selected #%d", i)
		} else {
			m.status = "selection cleared"
		}
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// tapAt taps the topmost tappable polygon under map cell (cx, cy). Hidden
// polygons cannot be tapped.
func (m *Model) tapAt(cx, cy int) {
	if !m.show.polys {
		m.status = "polygons hidden"
		return
	}
	_, _, w, h := m.layout()
	ll, ok := m.viewport(w, h).latLng(cx, cy)
	if !ok {
		return
	}
	i, ok := m.renderer.Hit(ll)
	if !ok {
		m.status = fmt.Sprintf("nothing to select at lon=%.5f lat=%.5f", ll.Longitude, ll.Latitude)
		return
	}
	m.tap(i)
}

func featureName(p *feature.Properties, i int) string {
	for _, k := range []string{"name", "title", "id"} {
		if s := p.Text(k); s != "" {
			return s
		}
	}
	return fmt.Sprintf("#%d", i)
}

// layout returns the map origin and size in cells for the current window.
func (m Model) layout() (x, y, w, h int) {
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	headerHeight := 1
	footerHeight := 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sidebarWidth-1)
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	return x, headerHeight, w, h
}
