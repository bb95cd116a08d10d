package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme names the colors of the browser views by what they mark.
type Theme struct {
	Accent  string // list title, selected row and detail heading
	Loading string // fetch phase while the aggregator runs
	Count   string // field and item counts
	Failure string // collect errors
	Muted   string // progress messages and descriptions
}

// DefaultTheme matches the admin UI's purple header.
var DefaultTheme = Theme{
	Accent:  "#7D56F4",
	Loading: "#FFA500",
	Count:   "#04B575",
	Failure: "#FF5F56",
	Muted:   "#626262",
}

var styles = newPalette(DefaultTheme)

type palette struct {
	heading lipgloss.Style
	phase   lipgloss.Style
	message lipgloss.Style
	count   lipgloss.Style
	failure lipgloss.Style
	accent  lipgloss.Color
	muted   lipgloss.Color
}

func newPalette(t Theme) *palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &palette{
		heading: fg(t.Accent).Bold(true).MarginBottom(1),
		phase:   fg(t.Loading),
		message: fg(t.Muted).Italic(true),
		count:   fg(t.Count).Bold(true),
		failure: fg(t.Failure).Bold(true),
		accent:  lipgloss.Color(t.Accent),
		muted:   lipgloss.Color(t.Muted),
	}
}

// delegate renders resource rows with the selected row in the accent color.
func (p *palette) delegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(p.accent).BorderForeground(p.accent).Bold(true)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(p.muted).BorderForeground(p.accent)
	return d
}

// titleBar styles the list header that shows the index path and item count.
func (p *palette) titleBar(s list.Styles) list.Styles {
	s.Title = s.Title.Background(p.accent)
	return s
}
