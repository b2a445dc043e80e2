package render

import "geoverlay/internal/feature"

// Resolved is the effective look and behaviour of one polygon overlay.
type Resolved struct {
	Base      PolygonStyle
	Highlight PolygonStyle
	Tappable  bool

	// Highlights is true when the feature sets a fill colour and a
	// highlighted fill that differs from it. Selection restyles the
	// polygon, and calls OnPress with the properties, only in that case.
	Highlights bool

	OnPress func(*feature.Properties)
}

// Resolve applies the style cascade: feature properties first, then the
// defaults. Highlighted values fall back to the feature's own values, and
// the highlighted stroke colour falls back to the fill colour.
func Resolve(p *feature.Properties, defaults Style) Resolved {
	r := Resolved{
		Base: PolygonStyle{
			FillColor:   p.FillColor,
			StrokeColor: p.StrokeColor,
			StrokeWidth: p.StrokeWidth,
		},
		Tappable:   p.Tappable,
		Highlights: p.Highlights(),
		OnPress:    p.OnPress,
	}
	if r.Base.FillColor == "" {
		r.Base.FillColor = defaults.FillColor
	}
	if r.Base.StrokeColor == "" {
		r.Base.StrokeColor = defaults.StrokeColor
	}
	if r.Base.StrokeWidth == 0 {
		r.Base.StrokeWidth = defaults.StrokeWidth
	}

	fill, stroke, width := p.Highlighted()
	if width == 0 {
		width = r.Base.StrokeWidth
	}
	r.Highlight = PolygonStyle{FillColor: fill, StrokeColor: stroke, StrokeWidth: width}

	if r.OnPress == nil {
		r.OnPress = func(*feature.Properties) {}
	}
	return r
}
