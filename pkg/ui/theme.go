// Package ui is the interactive treemap: a bubbletea model that renders
// layout placements into a styled cell grid, drives the selection state
// machine with mouse and keyboard, and hosts the help overlay, palette
// picker, and live-reload plumbing.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/HumyZ/treemap-visualiser/pkg/config"
)

// Theme precomputes every lipgloss style the renderer needs from one
// palette, so painting a frame allocates no styles.
type Theme struct {
	// Name echoes the palette name for the footer and picker.
	Name string

	// Palette keeps the raw colors for exports and the picker preview.
	Palette config.Palette

	// Per palette-color block styles, indexed like Palette.Colors.
	fills   []lipgloss.Style // interior cells
	borders []lipgloss.Style // box-drawing frame on the fill
	labels  []lipgloss.Style // name/weight text on the fill

	// Selection variants share the fill but glow with the accent.
	selBorders []lipgloss.Style
	selLabels  []lipgloss.Style

	// Chrome styles.
	footer     lipgloss.Style
	footerInfo lipgloss.Style
	statusSel  lipgloss.Style
	flash      lipgloss.Style
	modalBox   lipgloss.Style
	modalTitle lipgloss.Style
	cursorLine lipgloss.Style
	emptyNote  lipgloss.Style
}

// NewTheme builds the style set for a palette.
func NewTheme(p config.Palette) Theme {
	accent := lipgloss.Color(p.AccentColor())
	t := Theme{Name: p.Name, Palette: p}

	for _, hex := range p.Colors {
		fill := lipgloss.Color(hex)
		t.fills = append(t.fills, lipgloss.NewStyle().Background(fill))
		t.borders = append(t.borders, lipgloss.NewStyle().
			Background(fill).Foreground(lipgloss.Color("#000000")))
		t.labels = append(t.labels, lipgloss.NewStyle().
			Background(fill).Foreground(lipgloss.Color("#ffffff")))
		t.selBorders = append(t.selBorders, lipgloss.NewStyle().
			Background(fill).Foreground(accent).Bold(true))
		t.selLabels = append(t.selLabels, lipgloss.NewStyle().
			Background(fill).Foreground(accent).Bold(true))
	}

	t.footer = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	t.footerInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	t.statusSel = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.flash = lipgloss.NewStyle().Foreground(accent)
	t.modalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
	t.modalTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.cursorLine = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.emptyNote = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	return t
}

// colorIndex maps a placement to its palette slot; the cycling rule is
// shared with the exporters through config.Palette.ColorAt.
func (t Theme) colorIndex(depth, index int) int {
	if len(t.fills) == 0 {
		return 0
	}
	i := (depth + index) % len(t.fills)
	if i < 0 {
		i += len(t.fills)
	}
	return i
}

func (t Theme) fill(depth, index int) *lipgloss.Style {
	if len(t.fills) == 0 {
		return &noStyle
	}
	return &t.fills[t.colorIndex(depth, index)]
}

func (t Theme) border(depth, index int, selected bool) *lipgloss.Style {
	if len(t.fills) == 0 {
		return &noStyle
	}
	if selected {
		return &t.selBorders[t.colorIndex(depth, index)]
	}
	return &t.borders[t.colorIndex(depth, index)]
}

func (t Theme) label(depth, index int, selected bool) *lipgloss.Style {
	if len(t.fills) == 0 {
		return &noStyle
	}
	if selected {
		return &t.selLabels[t.colorIndex(depth, index)]
	}
	return &t.labels[t.colorIndex(depth, index)]
}

// noStyle paints plain cells; also the default for the grid background.
var noStyle = lipgloss.NewStyle()
