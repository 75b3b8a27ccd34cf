package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/timedpad/pkg/core"
)

// Screen rows.
const (
	rowHeader = 0
	rowTabs   = 2
	rowLines  = 4
)

const (
	headerTitle = "Timed notepad"
	clearButton = " Clear current note "
	newTabLabel = " + New note "
	closeMark   = "× "
)

type regionKind int

const (
	regionNone regionKind = iota
	regionTab
	regionClose
	regionNew
	regionClear
)

// region is a clickable half-open column range [x0, x1).
type region struct {
	kind regionKind
	id   core.ID
	x0   int
	x1   int
}

type segment struct {
	text   string
	style  lipgloss.Style
	region region
}

// tabSegments lays out the tab row. View renders it and the mouse handler
// hit-tests it, so both always agree on positions.
func (m Model) tabSegments() []segment {
	notes := m.pad.Notes()
	activeID := m.pad.ActiveNote().ID
	editingID := m.pad.EditingNoteID()

	var segs []segment
	x := 0
	add := func(text string, style lipgloss.Style, kind regionKind, id core.ID) {
		w := lipgloss.Width(text)
		segs = append(segs, segment{text: text, style: style, region: region{kind: kind, id: id, x0: x, x1: x + w}})
		x += w
	}

	for _, n := range notes {
		style := m.styles.tab
		if n.ID == activeID {
			style = m.styles.activeTab
		}
		if n.ID == editingID {
			add(" "+m.rename.View()+" ", style, regionTab, n.ID)
		} else {
			add(" "+n.Title+" ", style, regionTab, n.ID)
			if len(notes) > 1 {
				add(closeMark, style, regionClose, n.ID)
			}
		}
		add(" ", lipgloss.NewStyle(), regionNone, "")
	}
	add(newTabLabel, m.styles.newTab, regionNew, "")
	return segs
}

func (m Model) renderTabs() string {
	var b strings.Builder
	for _, s := range m.tabSegments() {
		b.WriteString(s.style.Render(s.text))
	}
	return b.String()
}

// headerRegions returns the clickable parts of the header row.
func headerRegions() []region {
	x0 := lipgloss.Width(headerTitle) + 2
	return []region{{kind: regionClear, x0: x0, x1: x0 + lipgloss.Width(clearButton)}}
}

func hit(regions []region, x int) region {
	for _, r := range regions {
		if x >= r.x0 && x < r.x1 {
			return r
		}
	}
	return region{}
}

func (m Model) tabRegions() []region {
	segs := m.tabSegments()
	regions := make([]region, 0, len(segs))
	for _, s := range segs {
		regions = append(regions, s.region)
	}
	return regions
}

// visibleLines is how many line rows fit between the tabs and the footer.
// Zero height (no WindowSizeMsg yet) shows everything.
func (m Model) visibleLines() int {
	if m.height == 0 {
		return 1 << 30
	}
	if n := m.height - rowLines - 2; n > 0 {
		return n
	}
	return 1
}
