package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/HumyZ/treemap-visualiser/pkg/config"
	"github.com/HumyZ/treemap-visualiser/pkg/drift"
	"github.com/HumyZ/treemap-visualiser/pkg/layout"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// footerHeight is the one status line below the grid.
const footerHeight = 1

// Options configures a new session.
type Options struct {
	Theme         config.Palette
	Palettes      []config.Palette
	MaxDepth      int
	LabelMinWidth int
	Ignore        []string
	Watching      bool
}

// Model is the bubbletea model for a treemap session: the current tree,
// its layout for the window, the selection, and the overlays.
type Model struct {
	source tree.Source
	ignore []string

	root       *tree.Node
	placements []layout.Placement

	theme         Theme
	palettes      []config.Palette
	maxDepth      int
	labelMinWidth int

	width  int
	height int

	selected *tree.Node
	flash    string

	showHelp bool
	helpView viewport.Model
	picker   *themePicker

	watching bool
}

// New builds a session model around an already-built tree. The layout is
// computed on the first WindowSizeMsg.
func New(root *tree.Node, source tree.Source, opts Options) Model {
	m := Model{
		source:        source,
		ignore:        opts.Ignore,
		root:          root,
		theme:         NewTheme(opts.Theme),
		palettes:      opts.Palettes,
		maxDepth:      opts.MaxDepth,
		labelMinWidth: opts.LabelMinWidth,
		watching:      opts.Watching,
	}
	if m.labelMinWidth <= 0 {
		m.labelMinWidth = config.Default().LabelMinWidth
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		if m.showHelp {
			m.helpView = newHelpViewport(m.helpWidth(), m.helpHeight())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TreeReloadedMsg:
		m.applyReload(msg.Root)
		return m, nil

	case WatchErrorMsg:
		m.flash = fmt.Sprintf("reload failed: %v", msg.Err)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture keys first.
	if m.picker != nil {
		switch msg.String() {
		case "up", "k":
			m.picker.MoveUp()
		case "down", "j":
			m.picker.MoveDown()
		case "enter":
			m.theme = NewTheme(m.picker.Selected())
			m.flash = "theme: " + m.theme.Name
			m.picker = nil
		case "esc", "t":
			m.picker = nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	m.flash = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up":
		m.scaleSelected(1.1)
	case "down":
		m.scaleSelected(0.9)
	case "y":
		m.copySelected()
	case "t":
		if len(m.palettes) > 0 {
			m.picker = newThemePicker(m.palettes, m.theme.Name)
		}
	case "?":
		m.showHelp = true
		m.helpView = newHelpViewport(m.helpWidth(), m.helpHeight())
	case "esc":
		m.selected = nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.picker != nil || m.showHelp {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	m.flash = ""
	// Hit-test the cell centre so clicks agree with the snapped tiles.
	px, py := float64(msg.X)+0.5, float64(msg.Y)+0.5
	switch msg.Button {
	case tea.MouseButtonLeft:
		hit := layout.HitTest(m.placements, px, py)
		if hit == nil {
			return m, nil
		}
		if m.selected == hit.Node {
			m.selected = nil
		} else {
			m.selected = hit.Node
		}
	case tea.MouseButtonRight:
		hit := layout.HitTest(m.placements, px, py)
		if hit == nil {
			return m, nil
		}
		m.detach(hit.Node)
	}
	return m, nil
}

// scaleSelected resizes the selected tile. Tiles that stand in for a
// whole directory at the depth limit stay fixed; only real leaves scale.
func (m *Model) scaleSelected(factor float64) {
	if m.selected == nil || !m.selected.IsLeaf() {
		return
	}
	m.selected.Scale(factor)
	m.relayout()
}

func (m *Model) copySelected() {
	if m.selected == nil {
		return
	}
	if err := clipboard.WriteAll(m.selected.Path); err != nil {
		m.flash = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.flash = "copied " + m.selected.Path
}

func (m *Model) detach(n *tree.Node) {
	if n == m.root {
		m.root = nil
		m.selected = nil
		m.placements = nil
		return
	}
	n.Detach()
	if m.selected != nil && m.root.Find(m.selected.Path) != m.selected {
		m.selected = nil
	}
	m.relayout()
}

// applyReload swaps in a rebuilt tree, carries the selection across by
// path, and flashes a drift summary.
func (m *Model) applyReload(root *tree.Node) {
	res := drift.Compare(m.root, root)
	var selPath string
	if m.selected != nil {
		selPath = m.selected.Path
	}
	m.root = root
	m.selected = nil
	if selPath != "" && m.root != nil {
		m.selected = m.root.Find(selPath)
	}
	m.relayout()
	if res.Clean() {
		m.flash = "reloaded"
		return
	}
	delta := res.TotalDelta()
	sign := "+"
	if delta < 0 {
		sign = "−"
		delta = -delta
	}
	m.flash = fmt.Sprintf("reloaded: +%d −%d Δ %s%s",
		res.Added, res.Removed, sign, humanWeight(delta, m.source.HumanizeBytes()))
}

func (m *Model) relayout() {
	gw, gh := m.gridSize()
	if m.root == nil || gw <= 0 || gh <= 0 {
		m.placements = nil
		return
	}
	m.placements = layout.Compute(m.root, layout.Rect{W: float64(gw), H: float64(gh)}, m.maxDepth)
}

func (m Model) gridSize() (int, int) {
	return m.width, m.height - footerHeight
}

func (m Model) helpWidth() int {
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) helpHeight() int {
	h := m.height - 2
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}
	if m.picker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View(m.theme))
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpView.View())
	}

	gw, gh := m.gridSize()
	var body string
	if m.root == nil {
		note := m.theme.emptyNote.Render("nothing left to show — press q to quit")
		body = lipgloss.Place(gw, gh, lipgloss.Center, lipgloss.Center, note)
	} else {
		body = renderGrid(m.placements, gw, gh, m.theme, m.selected, m.source.HumanizeBytes(), m.labelMinWidth)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderFooter() string {
	var left string
	switch {
	case m.flash != "":
		left = m.theme.flash.Render(" " + m.flash + " ")
	case m.selected != nil:
		left = m.theme.statusSel.Render(fmt.Sprintf(" %s  %s ",
			m.selected.Path, humanWeight(m.selected.Weight, m.source.HumanizeBytes())))
	default:
		left = m.theme.footer.Render(" click: select • right-click: remove • ↑/↓: resize • ?: help • q: quit ")
	}

	right := ""
	if m.root != nil {
		info := fmt.Sprintf("%d nodes • %s", m.root.Count(), humanWeight(m.root.Weight, m.source.HumanizeBytes()))
		if m.source.Kind == tree.KindFilesystem {
			if free, ok := freeDiskBytes(m.source.Path); ok {
				info += fmt.Sprintf(" • %s free", humanBytes(free))
			}
		}
		if m.watching {
			info += " • watching"
		}
		right = m.theme.footerInfo.Render(info + " ")
	}

	remaining := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if remaining < 0 {
		remaining = 0
	}
	return left + strings.Repeat(" ", remaining) + right
}
