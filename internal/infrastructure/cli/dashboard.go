package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"lodestar/pkg/domain/insights"
	"lodestar/pkg/domain/tracker"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("LODESTAR_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var insightOKStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var insightDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

type model struct {
	table    table.Model
	owner    string
	projects int
	insights string
	sparse   bool
	err      error
}

func initialModel() model {
	root, err := getProjectRoot()
	if err != nil {
		return model{err: err}
	}
	services, err := loadServices(root)
	if err != nil {
		return model{err: err}
	}
	if !services.Workspace.Repo.IsInitialized() {
		return model{err: tracker.ErrNotInitialized}
	}

	ctx := context.Background()

	// Ranking is read-only here: opening the dashboard must not rewrite the
	// snapshot the watcher and other surfaces observe.
	ranked, err := services.Score.Rank(ctx, time.Now())
	if err != nil {
		return model{err: err}
	}

	settings, err := services.Workspace.Repo.LoadSettings()
	if err != nil {
		return model{err: err}
	}
	owner := settings.Workflow.DisplayName
	if owner == "" {
		owner = "lodestar"
	}

	// Setup Table
	columns := []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Score", Width: 5},
		{Title: "Project", Width: 32},
		{Title: "Type", Width: 10},
		{Title: "Deadline", Width: 10},
	}

	rows := []table.Row{}
	for _, r := range ranked {
		deadline := "-"
		if r.Project.EndDate != nil {
			deadline = r.Project.EndDate.Format("2006-01-02")
		}
		typeLabel := string(r.Project.Type)
		if typeLabel == "" {
			typeLabel = "-"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.Breakdown.Total),
			r.Project.Name,
			typeLabel,
			deadline,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))

	t.SetStyles(s)

	summary := ""
	sparse := false
	ui, ok, err := services.Insights.UserInsights(ctx)
	switch {
	case err != nil:
		summary = fmt.Sprintf("Insights unavailable: %v", err)
		sparse = true
	case !ok:
		summary = fmt.Sprintf("Not enough data for insights yet (need %d tasks).", insights.MinInsightTasks)
		sparse = true
	default:
		summary = fmt.Sprintf("%d/%d tasks completed (%.0f%%)", ui.CompletedCount, ui.TaskCount, ui.CompletionRate)
		if ui.MostProductiveDay != "" {
			summary += fmt.Sprintf(" | best day %s", ui.MostProductiveDay.DisplayName())
		}
		if ui.MostEfficientType != "" {
			summary += fmt.Sprintf(" | strongest type %s", ui.MostEfficientType)
		}
	}

	return model{
		table:    t,
		owner:    owner,
		projects: len(ranked),
		insights: summary,
		sparse:   sparse,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("%s | %d projects", m.owner, m.projects))

	insightView := insightOKStyle.Render("\n" + m.insights)
	if m.sparse {
		insightView = insightDimStyle.Render("\n" + m.insights)
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"\nPriority ranking:",
			m.table.View(),
			insightView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
