package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/pkg/domain/analytics"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive TUI board of the backlog and forecast",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("STORYCAST_SKIP_BOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialBoardModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("board run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(boardCmd)
}

// Styles
var boardBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var boardHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var riskLowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var riskMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var riskHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type boardModel struct {
	table       table.Model
	storyCount  int
	points      int
	velocity    float64
	completion  string
	risk        analytics.RiskAssessment
	bottlenecks []string
	err         error
}

func initialBoardModel() boardModel {
	services := buildServices()

	stories, err := services.Stories.ListStories()
	if err != nil {
		return boardModel{err: err}
	}

	result, err := services.Forecast.Forecast(time.Now())
	if err != nil {
		return boardModel{err: err}
	}

	risk, err := services.Forecast.Risk()
	if err != nil {
		return boardModel{err: err}
	}

	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Status", Width: 13},
		{Title: "Priority", Width: 8},
		{Title: "Pts", Width: 3},
		{Title: "Story", Width: 40},
		{Title: "Developer", Width: 15},
	}

	completion := "-"
	velocity := 0.0
	bottlenecks := []string{}
	if result != nil {
		completion = result.ProjectedCompletionDate.Format("Mon 2006-01-02 15:04")
		velocity = result.AverageVelocity
		bottlenecks = result.Bottlenecks
	}

	rows := []table.Row{}
	for _, s := range stories {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.Number),
			string(s.Status),
			string(s.Priority),
			s.Points.String(),
			s.Text,
			s.Developer(),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(styles)

	return boardModel{
		table:       t,
		storyCount:  len(stories),
		points:      backlog.TotalPoints(backlog.Forecastable(stories)),
		velocity:    velocity,
		completion:  completion,
		risk:        risk,
		bottlenecks: bottlenecks,
	}
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading board: %v\nPress q to quit.", m.err)
	}

	header := boardHeaderStyle.Render(
		fmt.Sprintf("storycast  %d stories / %d pts remaining", m.storyCount, m.points))

	summary := fmt.Sprintf("Velocity: %.1f pts/sprint    Completion: %s", m.velocity, m.completion)

	riskStyle := riskLowStyle
	switch m.risk.Level {
	case analytics.RiskMedium:
		riskStyle = riskMediumStyle
	case analytics.RiskHigh:
		riskStyle = riskHighStyle
	}
	riskView := riskStyle.Render(fmt.Sprintf("Risk: %s (%.0f/100)", m.risk.Level, m.risk.Score))

	bottleneckView := ""
	if len(m.bottlenecks) > 0 {
		bottleneckView = riskHighStyle.Render("\nBottlenecks:\n")
		for _, b := range m.bottlenecks {
			bottleneckView += fmt.Sprintf("- %s\n", b)
		}
	}

	return boardBaseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			summary,
			riskView,
			"\nBacklog:",
			m.table.View(),
			bottleneckView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
