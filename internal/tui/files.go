package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/rs/zerolog/log"

	"geoverlay/internal/source"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !source.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads any supported file into the model.
func (m *Model) loadPath(p string) {
	c, err := source.Load(p)
	if err != nil {
		log.Error().Err(err).Str("path", p).Msg("Failed to load file")
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setFeatures(c)
	m.status = "loaded: " + filepath.Base(p) + "  " + m.countsText()

	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrs()
	}
}
