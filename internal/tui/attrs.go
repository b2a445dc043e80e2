package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"geoverlay/internal/feature"
)

// refreshAttrs rebuilds the attribute table. With a selection it lists the
// selected feature only; otherwise one row per feature.
func (m *Model) refreshAttrs() {
	features := m.features.Features
	if i, ok := m.renderer.Selected(); ok {
		if f := m.renderer.Overlays()[i].Feature; f != nil {
			features = []feature.Feature{*f}
		}
	}
	cols, rows := buildAttributes(features)
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions the property keys of features, sorted, and returns
// one row of values per feature.
func buildAttributes(features []feature.Feature) ([]string, [][]string) {
	seen := map[string]bool{}
	var cols []string
	for i := range features {
		for k := range features[i].Properties.Values {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)

	rows := make([][]string, 0, len(features))
	for i := range features {
		values := features[i].Properties.Values
		row := make([]string, len(cols))
		for j, k := range cols {
			row[j] = cellText(values[k])
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
