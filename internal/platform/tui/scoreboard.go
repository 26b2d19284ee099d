package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/core"
	"github.com/vovakirdan/frogger/internal/games/frogger"
	"github.com/vovakirdan/frogger/internal/registry"
	"github.com/vovakirdan/frogger/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll  key.Binding
	Variant key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Variant, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Variant: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab/←/→", "variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// variantTab is one scoreboard page: a registered variant and its rules.
type variantTab struct {
	id    string
	title string
	rules string
}

// variantTabs lists the registered variants with a one-line rule summary.
func variantTabs() []variantTab {
	var tabs []variantTab
	for _, info := range registry.List() {
		tab := variantTab{id: info.ID, title: info.Title}
		if g, err := frogger.Create(info.ID); err == nil {
			tab.rules = ruleSummary(g.Config())
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

func ruleSummary(cfg config.FroggerConfig) string {
	hits := "every car that hits costs a life"
	if cfg.Rules.AtMostOneLifeLossPerTick {
		hits = "at most one life lost per tick"
	}
	return fmt.Sprintf("%d lives, %d cars, %s", cfg.Rules.Lives, len(cfg.Obstacles), hits)
}

// ScoreboardModel shows the top scores per variant. Rows set by the current
// player are marked.
type ScoreboardModel struct {
	tabs      []variantTab
	current   int
	store     storage.ScoreStore
	player    string
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first variant.
func NewScoreboardModel(store storage.ScoreStore, cfg core.RuntimeConfig) ScoreboardModel {
	m := ScoreboardModel{
		tabs:   variantTabs(),
		store:  store,
		player: cfg.Player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	playerW := core.Clamp(m.width-40, 8, 24)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: playerW},
			{Title: "Crossings", Width: 9},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(core.Max(3, m.height-12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches scores and stats for the current variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.tabs) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		id := m.tabs[m.current].id
		if scores, err := m.store.TopScores(ctx, id, maxScores); err == nil {
			m.scores = scores
		}
		m.stats, _ = m.store.GameStats(ctx, id)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		name := s.Player
		if name == m.player && name != "" {
			name = "* " + name
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			name,
			fmt.Sprint(s.Score),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Variant):
			if n := len(m.tabs); n > 0 {
				step := 1
				switch msg.String() {
				case "shift+tab", "left", "h":
					step = -1
				}
				m.current = core.Mod(m.current+step, n)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(scoreTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(t.title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")
	if len(m.tabs) > 0 {
		b.WriteString(centerText(dimStyle.Render(m.tabs[m.current].rules), m.width))
	}
	b.WriteString("\n\n")

	var body string
	if len(m.scores) == 0 {
		body = dimStyle.Italic(true).Padding(1, 2).Render("No crossings recorded yet.\nGet a frog across to set a high score!")
	} else {
		body = m.table.View()
		if st := m.stats; st != nil && st.GamesCount > 0 {
			body += "\n\n" + dimStyle.Render(fmt.Sprintf("%d games  |  avg %.1f  |  best %d  |  last %s",
				st.GamesCount, st.AvgScore, st.HighScore, st.LastPlayed.Local().Format("Jan 02")))
		}
	}
	b.WriteString(centerText(panelStyle.Render(body), m.width))

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
