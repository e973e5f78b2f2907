// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/edmetric/lrslens/internal/analytics"
	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/report"
	"github.com/edmetric/lrslens/internal/store"
	"github.com/edmetric/lrslens/internal/xapi"
)

const (
	tabOverview = iota
	tabTimeline
	tabScores
	tabInsights
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3A8AC8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	sectionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
)

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	store  *store.Store
	engine *analytics.Engine
	cfg    model.ReportConfig

	report report.Report
	errMsg string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	scoreTable  table.Model
	scoreLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a dashboard UI model.
func NewModel(st *store.Store, eng *analytics.Engine, cfg model.ReportConfig) *Model {
	m := &Model{
		store:  st,
		engine: eng,
		cfg:    cfg,
		tabs:   []string{"Overview", "Timeline", "Scores", "Insights"},
	}
	m.initInputs()
	m.initScoreTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		// "q" stays typable inside the filter form.
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.activeTab == tabScores {
			m.scoreTable.Focus()
		} else {
			m.scoreTable.Blur()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			m.updateLayout()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabScores {
				m.scoreTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabScores {
				m.scoreTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabScores {
				var cmd tea.Cmd
				m.scoreTable, cmd = m.scoreTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Actor: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initScoreTable() {
	m.scoreTable = table.New(
		table.WithColumns(scoreColumns()),
		table.WithHeight(1),
	)
	m.scoreTable.SetStyles(scoreTableStyles())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.Actor))
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setScoreTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabScores {
		m.scoreTable.Focus()
	} else {
		m.scoreTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	actor := m.cfg.Actor
	if actor == "" {
		actor = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filters: actor=%s  since=%s  last=%s", actor, since, last)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Refresh: r  Filters: /  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabScores {
		switch {
		case m.report.Summary.Overview.TotalStatements == 0:
			return fitLines("No statements found.", m.width, height)
		case len(m.report.Summary.Scores.Scores) == 0:
			return fitLines("No scored activities.", m.width, height)
		default:
			view := tableMutedStyle.Render(m.scoreTable.View())
			return fitLines(view, m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	r, err := report.Build(context.Background(), m.store, m.engine, m.cfg, time.Now())
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load dashboard.")
		}
		return
	}
	m.errMsg = ""
	m.report = r
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyScoreTable(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load dashboard.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabTimeline].SetContent(renderTimeline(m.report.Summary, width))
	m.viewports[tabInsights].SetContent(renderInsights(m.report))
}

func renderOverview(r report.Report, width int) string {
	s := r.Summary
	if s.Overview.TotalStatements == 0 {
		return "No statements found."
	}
	cards := []string{
		metricCard("Progress", fmt.Sprintf("%d%%", s.Progress.Percentage)),
		metricCard("Avg Score", fmt.Sprintf("%d%%", s.Scores.Average)),
		metricCard("Streak", fmt.Sprintf("%dd", s.Engagement.CurrentStreak)),
		metricCard("Active Days", strconv.Itoa(s.Engagement.ActiveDays)),
		metricCard("Video", xapi.FormatSeconds(s.Engagement.VideoSeconds)),
		metricCard("Quality", fmt.Sprintf("%d%%", s.Overview.DataQuality)),
	}
	var top string
	if width < 80 {
		top = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		top = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	lines := []string{
		sectionStyle.Render("Activity"),
		fmt.Sprintf("Daily: %s", report.Sparkline(s.Charts.DailyActivity.Values)),
		fmt.Sprintf("Completed %d of %d activities, %d remaining", s.Progress.Completed, s.Progress.Total, s.Progress.Remaining),
		"",
		sectionStyle.Render("Grades"),
	}
	lines = append(lines, report.BarChart(s.Charts.GradeDistribution.Labels, s.Charts.GradeDistribution.Values, width/3)...)
	return strings.TrimRight(top+"\n\n"+strings.Join(lines, "\n"), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTimeline(s model.DashboardSummary, width int) string {
	if len(s.Timeline) == 0 {
		return "No activity yet."
	}
	lines := []string{
		sectionStyle.Render(fmt.Sprintf("Daily activity %s .. %s", s.Timeline[0].Date, s.Timeline[len(s.Timeline)-1].Date)),
		report.Sparkline(s.Charts.DailyActivity.Values),
		"",
	}
	for i := len(s.Timeline) - 1; i >= 0; i-- {
		day := s.Timeline[i]
		avg := "-"
		if day.AverageScore != nil {
			avg = fmt.Sprintf("%d%%", *day.AverageScore)
		}
		line := fmt.Sprintf("%s  %2d activities  %2d completed  avg %-4s  video %s",
			day.Date, day.TotalActivities, day.Completions, avg, xapi.FormatSeconds(day.VideoSeconds))
		lines = append(lines, truncateLine(line, width))
	}
	return strings.Join(lines, "\n")
}

func renderInsights(r report.Report) string {
	if len(r.Summary.Insights) == 0 && len(r.Anomalies.Anomalies) == 0 {
		return "No insights yet."
	}
	var lines []string
	if len(r.Summary.Insights) > 0 {
		lines = append(lines, sectionStyle.Render("Insights"))
		for _, in := range r.Summary.Insights {
			style, ok := priorityStyles[in.Priority]
			if !ok {
				style = headerStyle
			}
			lines = append(lines, fmt.Sprintf("%s %s: %s", style.Render("["+string(in.Priority)+"]"), in.Title, in.Message))
		}
	}
	if len(r.Anomalies.Anomalies) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionStyle.Render(fmt.Sprintf("Anomalies (risk: %s)", r.Anomalies.RiskLevel)))
		for _, a := range r.Anomalies.Anomalies {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", a.Severity, a.Kind, a.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func scoreColumns() []table.Column {
	return []table.Column{
		{Title: "Activity", Width: 32},
		{Title: "Score", Width: 6},
		{Title: "Best", Width: 6},
		{Title: "Attempts", Width: 8},
		{Title: "Passed", Width: 6},
		{Title: "Last attempt", Width: 12},
	}
}

func (m *Model) applyScoreTable(width, height int) {
	records := m.report.Summary.Scores.Scores
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		passed := "no"
		if rec.Success {
			passed = "yes"
		}
		rows = append(rows, table.Row{
			rec.ActivityName,
			fmt.Sprintf("%d%%", rec.Score),
			fmt.Sprintf("%d%%", rec.BestScore),
			strconv.Itoa(rec.Attempts),
			passed,
			rec.Timestamp.Format("2006-01-02"),
		})
	}
	m.scoreTable.SetColumns(scoreColumns())
	m.scoreTable.SetRows(rows)
	m.scoreLayout.rowCount = len(rows)
	m.setScoreTableSize(width, height)
}

func (m *Model) setScoreTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.scoreLayout.width == width && m.scoreLayout.height == viewportHeight {
		return
	}
	m.scoreLayout.width = width
	m.scoreLayout.height = viewportHeight
	m.scoreTable.SetWidth(width)
	m.scoreTable.SetHeight(viewportHeight)
}

func scoreTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	actor := strings.TrimSpace(m.filterInputs[0].Value())

	sinceInput := strings.TrimSpace(m.filterInputs[1].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	lastInput := strings.TrimSpace(m.filterInputs[2].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	m.cfg = model.ReportConfig{
		Actor: actor,
		Since: since,
		Last:  last,
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
