package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HumyZ/treemap-visualiser/pkg/config"
)

// themePicker is the modal list behind the t key: one row per palette
// with a swatch strip, so a theme can be judged before it is applied.
type themePicker struct {
	palettes []config.Palette
	index    int
}

func newThemePicker(palettes []config.Palette, current string) *themePicker {
	p := &themePicker{palettes: palettes}
	for i, pal := range palettes {
		if pal.Name == current {
			p.index = i
			break
		}
	}
	return p
}

func (p *themePicker) MoveUp() {
	if p.index > 0 {
		p.index--
	}
}

func (p *themePicker) MoveDown() {
	if p.index < len(p.palettes)-1 {
		p.index++
	}
}

func (p *themePicker) Selected() config.Palette {
	return p.palettes[p.index]
}

func (p *themePicker) View(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.modalTitle.Render("Theme"))
	b.WriteString("\n\n")
	for i, pal := range p.palettes {
		name := pal.Name
		cursor := "  "
		if i == p.index {
			cursor = "> "
			name = theme.cursorLine.Render(name)
		}
		b.WriteString(cursor)
		b.WriteString(name)
		b.WriteString(strings.Repeat(" ", pad(pal.Name, p.longestName())))
		b.WriteString("  ")
		b.WriteString(swatch(pal))
		if i < len(p.palettes)-1 {
			b.WriteByte('\n')
		}
	}
	return theme.modalBox.Render(b.String())
}

func (p *themePicker) longestName() int {
	longest := 0
	for _, pal := range p.palettes {
		if len(pal.Name) > longest {
			longest = len(pal.Name)
		}
	}
	return longest
}

func pad(name string, width int) int {
	if n := width - len(name); n > 0 {
		return n
	}
	return 0
}

// swatch paints two cells per palette colour.
func swatch(p config.Palette) string {
	var b strings.Builder
	for _, hex := range p.Colors {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  "))
	}
	return b.String()
}
