package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/i18n"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
)

// MenuEntry is one selectable screen in the menu.
type MenuEntry struct {
	Screenset string
	Screen    string
	Label     string
	Glyph     string
}

type menuGroup struct {
	title    string
	category screenset.Category
	entries  []MenuEntry
}

// MenuModel lists every screenset's menu, grouped by screenset in
// registration order.
type MenuModel struct {
	groups  []menuGroup
	entries []MenuEntry
	theme   styles.Theme

	cursor int
	active int

	width  int
	height int
}

// NewMenuModel builds the menu from descriptors. Labels are translation
// keys; a screenset's title is its "name" key, falling back to Name.
func NewMenuModel(sets []screenset.Descriptor, t *i18n.Translator, icons *screenset.Icons) MenuModel {
	m := MenuModel{theme: styles.DefaultTheme(), active: -1, width: 28}
	for _, d := range sets {
		title := t.T(d.Namespace() + ":name")
		if title == d.Namespace()+":name" || title == "" {
			title = d.Name
		}
		g := menuGroup{title: title, category: d.Category}
		for _, e := range d.Menu {
			me := MenuEntry{
				Screenset: d.ID,
				Screen:    e.Item.ID,
				Label:     t.T(e.Item.Label),
				Glyph:     icons.Glyph(e.Item.Icon),
			}
			g.entries = append(g.entries, me)
			m.entries = append(m.entries, me)
		}
		m.groups = append(m.groups, g)
	}
	return m
}

func (m MenuModel) WithSize(width, height int) MenuModel {
	m.width, m.height = width, height
	return m
}

func (m MenuModel) Entries() []MenuEntry {
	return append([]MenuEntry{}, m.entries...)
}

func (m MenuModel) Cursor() (MenuEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return MenuEntry{}, false
	}
	return m.entries[m.cursor], true
}

// SetActive marks the entry for set/screen as active and moves the cursor
// onto it.
func (m MenuModel) SetActive(set, screen string) MenuModel {
	for i, e := range m.entries {
		if e.Screenset == set && e.Screen == screen {
			m.active = i
			m.cursor = i
			return m
		}
	}
	m.active = -1
	return m
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || len(m.entries) == 0 {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.entries)) % len(m.entries)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.entries)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.entries) - 1
	case "enter", "l", "right":
		e := m.entries[m.cursor]
		return m, func() tea.Msg {
			return screenset.NavigateMsg{Screenset: e.Screenset, Screen: e.Screen}
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	t := m.theme
	var lines []string
	i := 0
	for _, g := range m.groups {
		head := t.Title.Render(g.title)
		if g.category != "" && g.category != screenset.CategoryProduction {
			head += " " + t.TitleMuted.Render("("+string(g.category)+")")
		}
		lines = append(lines, head)
		for _, e := range g.entries {
			prefix := "  "
			if i == m.cursor {
				prefix = "▸ "
			}
			line := prefix + e.Glyph + " " + e.Label
			switch {
			case i == m.active:
				line = t.Selected.Render(line)
			case i == m.cursor:
				line = t.KeybindKey.Render(line)
			}
			lines = append(lines, line)
			i++
		}
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}
