package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skipgram/internal/domain"
)

const defaultTopK = 10

// QueryPort is the TUI-facing subset of the analogy evaluator.
type QueryPort interface {
	Analogy(a, b, c string, k int) ([]domain.WordSimilarity, error)
	Nearest(word string, k int) ([]domain.WordSimilarity, error)
}

// Model is the Bubble Tea model for the analogy explorer.
type Model struct {
	port     QueryPort
	input    textinput.Model
	viewport viewport.Model
	results  []domain.WordSimilarity
	info     string
	status   string
	ready    bool
}

// New creates the explorer over a loaded model. info is the one-line
// summary shown under the header, typically vocabulary size and
// dimension.
func New(port QueryPort, info string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "a b c [k] for a - b + c, word [k] for neighbors"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{port: port, input: ti, viewport: vp, info: info, status: "Loaded. Type a query and press Enter."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + info
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.runQuery(q)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runQuery parses "a b c [k]" as an analogy and "word [k]" as a
// neighbor lookup.
func (m Model) runQuery(q string) Model {
	words, k, err := parseQuery(q)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return m
	}
	var res []domain.WordSimilarity
	switch len(words) {
	case 1:
		res, err = m.port.Nearest(words[0], k)
	case 3:
		res, err = m.port.Analogy(words[0], words[1], words[2], k)
	}
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return m
	}
	m.status = fmt.Sprintf("Results for %q", q)
	m.results = res
	return m
}

func parseQuery(q string) ([]string, int, error) {
	fields := strings.Fields(q)
	k := defaultTopK
	if n := len(fields); n > 1 {
		if v, err := strconv.Atoi(fields[n-1]); err == nil {
			k = v
			fields = fields[:n-1]
		}
	}
	if len(fields) != 1 && len(fields) != 3 {
		return nil, 0, fmt.Errorf("want one word or three, got %d", len(fields))
	}
	return fields, k, nil
}

// View renders the TUI layout and the current result list.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Skip-gram Analogy Explorer")
	info := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.info)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + info + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	for i, r := range m.results {
		rank := rankStyle.Render(fmt.Sprintf("%3d.", i+1))
		word := wordStyle.Render(fmt.Sprintf("%-24s", r.Word))
		fmt.Fprintf(&b, "%s %s %.4f\n", rank, word, r.Similarity)
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	rankStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
