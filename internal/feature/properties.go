package feature

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Properties are the feature properties. The style keys understood by the
// renderer are lifted into typed fields; every key, known or not, stays
// available in Values.
//
// Zero values mean "unset": an empty colour or a zero width falls back to
// the renderer defaults.
type Properties struct {
	FillColor   string
	StrokeColor string
	StrokeWidth float64
	Tappable    bool

	// Highlighted variants, applied to a polygon while it is selected.
	// Unset fill and stroke colours default to FillColor, an unset width to
	// StrokeWidth. See Highlighted.
	HighlightedFillColor   string
	HighlightedStrokeColor string
	HighlightedStrokeWidth float64

	// OnPress is called with the properties when the polygon becomes
	// selected and with nil when the selection is cleared by tapping it
	// again. It cannot be expressed in JSON; hosts attach it after decoding.
	OnPress func(*Properties)

	Values map[string]any
}

const (
	keyFillColor              = "fillColor"
	keyStrokeColor            = "strokeColor"
	keyStrokeWidth            = "strokeWidth"
	keyTappable               = "tappable"
	keyHighlightedFillColor   = "highlightedFillColor"
	keyHighlightedStrokeColor = "highlightedStrokeColor"
	keyHighlightedStrokeWidth = "highlightedStrokeWidth"
)

// NewProperties lifts the style keys out of a raw property map.
func NewProperties(values map[string]any) Properties {
	if values == nil {
		values = map[string]any{}
	}
	return Properties{
		FillColor:              stringValue(values[keyFillColor]),
		StrokeColor:            stringValue(values[keyStrokeColor]),
		StrokeWidth:            numberValue(values[keyStrokeWidth]),
		Tappable:               boolValue(values[keyTappable]),
		HighlightedFillColor:   stringValue(values[keyHighlightedFillColor]),
		HighlightedStrokeColor: stringValue(values[keyHighlightedStrokeColor]),
		HighlightedStrokeWidth: numberValue(values[keyHighlightedStrokeWidth]),
		Values:                 values,
	}
}

// UnmarshalJSON accepts any JSON value; anything but an object decodes to
// empty properties.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, &values); err != nil {
			values = nil
		}
	}
	onPress := p.OnPress
	*p = NewProperties(values)
	p.OnPress = onPress
	return nil
}

// MarshalJSON writes Values with the typed style fields folded back in.
func (p Properties) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Values)+7)
	for k, v := range p.Values {
		out[k] = v
	}
	setString := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	setNumber := func(k string, v float64) {
		if v != 0 {
			out[k] = v
		}
	}
	setString(keyFillColor, p.FillColor)
	setString(keyStrokeColor, p.StrokeColor)
	setNumber(keyStrokeWidth, p.StrokeWidth)
	if p.Tappable {
		out[keyTappable] = true
	}
	setString(keyHighlightedFillColor, p.HighlightedFillColor)
	setString(keyHighlightedStrokeColor, p.HighlightedStrokeColor)
	setNumber(keyHighlightedStrokeWidth, p.HighlightedStrokeWidth)
	return json.Marshal(out)
}

// Highlighted resolves the highlighted style. Note the stroke colour falls
// back to the fill colour, not the stroke colour.
func (p *Properties) Highlighted() (fill, stroke string, width float64) {
	fill, stroke, width = p.HighlightedFillColor, p.HighlightedStrokeColor, p.HighlightedStrokeWidth
	if fill == "" {
		fill = p.FillColor
	}
	if stroke == "" {
		stroke = p.FillColor
	}
	if width == 0 {
		width = p.StrokeWidth
	}
	return fill, stroke, width
}

// Highlights reports whether selecting the feature changes its look: it
// must define a fill colour and a highlighted fill that differs from it.
func (p *Properties) Highlights() bool {
	fill, _, _ := p.Highlighted()
	return p.FillColor != "" && fill != p.FillColor
}

// Text returns the value of a string property, or "".
func (p *Properties) Text(key string) string {
	return stringValue(p.Values[key])
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// numberValue coerces numbers and numeric strings. Anything else, including
// NaN-producing strings, is unset.
func numberValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
