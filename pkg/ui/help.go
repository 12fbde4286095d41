package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

const helpText = `# tmv

## Mouse

- **Left click** a tile to select it; click the same tile again to clear.
- **Right click** a tile to remove it and everything under it. The
  remaining tiles reflow to fill the space.

## Keyboard

- **↑ / ↓** — grow or shrink the selected tile by 10%
- **y** — copy the selected path to the clipboard
- **t** — pick a colour theme
- **esc** — clear the selection (or close an overlay)
- **?** — toggle this help
- **q** — quit

Removals and resizes only change the picture. Nothing on disk is ever
modified or deleted.
`

// renderedHelp runs the help markdown through glamour at the given wrap
// width, falling back to the raw markdown if the renderer cannot be
// built.
func renderedHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpText
	}
	out, err := r.Render(helpText)
	if err != nil {
		return helpText
	}
	return out
}

func newHelpViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent(renderedHelp(width))
	return vp
}
