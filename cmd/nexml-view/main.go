// Command nexml-view is a terminal browser for NeXML documents: a tree
// list on the left, the selected tree rendered as an indented outline on
// the right.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phylograph/nexml/pkg/model"
	"github.com/phylograph/nexml/pkg/nexml"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2)

	taxonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	lengthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k", "previous tree"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j", "next tree"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// item is one graph in the tree list.
type item struct {
	graph model.Graph
}

func (i item) Title() string {
	if label := i.graph.Label(); label != "" {
		return label
	}
	return i.graph.ID()
}

func (i item) Description() string {
	kind := "tree"
	if _, ok := i.graph.(*model.Network); ok {
		kind = "network"
	}
	return fmt.Sprintf("%s kind, %d nodes, %d edges, %s",
		i.graph.Kind(), len(i.graph.Nodes()), len(i.graph.Edges()), kind)
}

func (i item) FilterValue() string { return i.Title() }

type viewModel struct {
	graphs list.Model
	help   help.Model
	width  int
	height int
}

func newViewModel(doc *model.Document) viewModel {
	var items []list.Item
	for _, block := range doc.TreeBlocks() {
		for _, g := range block.Graphs() {
			items = append(items, item{graph: g})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Trees"
	l.SetShowHelp(false)
	return viewModel{graphs: l, help: help.New()}
}

func (m viewModel) Init() tea.Cmd { return nil }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.graphs.SetSize(msg.Width/3, msg.Height-4)
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.graphs, cmd = m.graphs.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	var detail string
	if selected, ok := m.graphs.SelectedItem().(item); ok {
		detail = renderGraph(selected.graph)
	} else {
		detail = "no trees in this document"
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.graphs.View(),
		paneStyle.Render(detail),
	)
	return titleStyle.Render("NeXML Browser") + "\n" +
		panes + "\n" +
		helpStyle.Render(m.help.View(keys))
}

// renderGraph draws a tree as an indented outline. Networks and trees
// without a unique root fall back to a flat edge listing.
func renderGraph(g model.Graph) string {
	if tree, ok := g.(*model.Tree); ok {
		root, err := tree.Root()
		if err == nil && root != nil {
			var sb strings.Builder
			renderSubtree(&sb, tree, root, 0)
			return sb.String()
		}
		if err != nil {
			return errorStyle.Render(err.Error())
		}
	}
	return renderEdgeList(g)
}

func renderSubtree(sb *strings.Builder, tree *model.Tree, n *model.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(nodeTag(n))
	if e := n.ParentEdge(); e != nil && e.Length() != nil {
		sb.WriteString(lengthStyle.Render(" :" + e.Length().String()))
	}
	sb.WriteByte('\n')
	for _, child := range n.Children() {
		renderSubtree(sb, tree, child, depth+1)
	}
}

func renderEdgeList(g model.Graph) string {
	var sb strings.Builder
	for _, e := range g.Edges() {
		if e.Source() == nil || e.Target() == nil {
			sb.WriteString(errorStyle.Render("unattached edge " + e.ID()))
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(nodeTag(e.Source()))
		sb.WriteString(" -> ")
		sb.WriteString(nodeTag(e.Target()))
		if e.Length() != nil {
			sb.WriteString(lengthStyle.Render(" :" + e.Length().String()))
		}
		sb.WriteByte('\n')
	}
	if sb.Len() == 0 {
		return "empty graph"
	}
	return sb.String()
}

func nodeTag(n *model.Node) string {
	if otu := n.OTU(); otu != nil && otu.Label() != "" {
		return taxonStyle.Render(otu.Label())
	}
	if n.Label() != "" {
		return n.Label()
	}
	return n.ID()
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: nexml-view <file.nexml>")
		os.Exit(1)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexml-view: %v\n", err)
		os.Exit(1)
	}
	reader := &nexml.Reader{}
	doc, err := reader.Read(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexml-view: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newViewModel(doc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "nexml-view: %v\n", err)
		os.Exit(1)
	}
}
