package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/dass-check/internal/assessment"
	"github.com/kingrea/dass-check/internal/feed"
	"github.com/kingrea/dass-check/internal/instrument"
	"github.com/kingrea/dass-check/internal/severity"
)

const (
	footerText     = "For educational screening only, not a medical diagnosis."
	emptyFeedText  = "No records yet or database not connected."
	instructions   = "Think about the past week and choose the option that best describes how much each statement applied to you."
	resultsCaption = "These scores reflect the past week. If you are distressed, please speak with a counselor or a trusted adult."
	aboutText      = "A 21-item screening tool that measures depression, anxiety and stress over the past week. It is not a diagnosis. For concerns, consult a professional."
)

var helpLines = []string{
	"Talk to your school counselor or mental health professional.",
	"Reach out to a trusted teacher, family member, or friend.",
	"If you feel unsafe, contact local emergency services immediately.",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1"))
	chosenStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	readyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// View renders the current state to a string.
func (a *App) View() string {
	mw := a.mainWidth()
	var content string
	if a.session.Phase() == assessment.PhaseResult {
		content = a.renderResult(mw - 4)
	} else {
		content = a.renderForm(mw - 4)
	}
	mainPanel := panelStyle.Width(max(20, mw-2)).Render(content)

	var body string
	if mw < a.width {
		side := panelStyle.Width(max(20, sidebarWidth-2)).Render(a.renderSidebar(sidebarWidth - 4))
		body = lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, side)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, mainPanel,
			panelStyle.Width(max(20, mw-2)).Render(a.renderSidebar(mw-4)))
	}

	sections := []string{a.renderHeader(), body}
	if a.statusMsg != "" {
		sections = append(sections, mutedStyle.Render(a.statusMsg))
	}
	sections = append(sections, a.renderHelp(), subtitleStyle.Render(footerText))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("DASS-21 Student Check")
	sub := subtitleStyle.Render("Depression · Anxiety · Stress")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", sub)
}

func (a *App) renderHelp() string {
	switch {
	case a.session.Phase() == assessment.PhaseResult:
		return a.help.View(resultHelp{keys: a.keys})
	case a.focus == focusFields:
		return a.help.View(fieldHelp{keys: a.keys})
	default:
		return a.help.View(a.keys)
	}
}

func (a *App) renderForm(width int) string {
	answers := a.session.Answers()
	lines := []string{
		headingStyle.Render("Complete the DASS-21"),
		mutedStyle.Width(width).Render(instructions),
		"",
		a.renderFields(),
		"",
		mutedStyle.Render(fmt.Sprintf("Answered %d/%d", answers.AnsweredCount(), answers.Len())),
	}
	lines = append(lines, a.renderItems(width)...)
	lines = append(lines, "")
	if msg := a.session.ErrorMessage(); msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, a.renderSubmitLine(answers))
	return strings.Join(lines, "\n")
}

func (a *App) renderFields() string {
	labels := [fieldCount]string{"Name", "Email", "Age", "Context"}
	rows := make([]string, 0, fieldCount)
	for i := range a.inputs {
		marker := "  "
		if a.focus == focusFields && a.field == i {
			marker = cursorStyle.Render("› ")
		}
		label := mutedStyle.Render(fmt.Sprintf("%-8s", labels[i]))
		rows = append(rows, marker+label+a.inputs[i].View())
	}
	return strings.Join(rows, "\n")
}

// itemWindow returns the half-open range of items listed around the cursor.
func (a *App) itemWindow() (int, int) {
	size := max(3, a.height-26)
	if size > instrument.ItemCount {
		size = instrument.ItemCount
	}
	start := a.cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > instrument.ItemCount {
		start = instrument.ItemCount - size
	}
	return start, start + size
}

func (a *App) renderItems(width int) []string {
	items := instrument.Items()
	answers := a.session.Answers()
	start, end := a.itemWindow()
	var lines []string
	if start > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		item := items[i]
		value, ok := answers.Get(item.Index)
		state := openStyle.Render("[ ]")
		if ok {
			state = chosenStyle.Render(fmt.Sprintf("[%d]", value))
		}
		text := fmt.Sprintf("%2d. %s", item.Index, item.Text)
		if i != a.cursor || a.focus != focusItems {
			lines = append(lines, fmt.Sprintf("  %s %s", state, truncate(text, width-8)))
			continue
		}
		lines = append(lines, cursorStyle.Render("› ")+state+" "+cursorStyle.Render(truncate(text, width-8)))
		for _, opt := range instrument.Options() {
			mark := "○"
			style := mutedStyle
			if ok && value == opt.Value {
				mark = "●"
				style = chosenStyle
			}
			lines = append(lines, style.Render(fmt.Sprintf("      %s %d  %s", mark, opt.Value, opt.Label)))
		}
	}
	if end < instrument.ItemCount {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ↓ %d more", instrument.ItemCount-end)))
	}
	return lines
}

func (a *App) renderSubmitLine(answers assessment.AnswerSet) string {
	switch {
	case a.session.Phase() == assessment.PhaseSubmitting:
		return a.spinner.View() + " Scoring…"
	case a.session.CanSubmit():
		return readyStyle.Render("Submit & See Results") + mutedStyle.Render("  (enter)")
	default:
		open := len(answers.Unanswered())
		return mutedStyle.Render(fmt.Sprintf("Submit & See Results  (%d item(s) left)", open))
	}
}

// resultRow is one subscale line of the result screen.
type resultRow struct {
	Subscale instrument.Subscale
	Score    int
	Max      int
	Fill     float64
	Badge    severity.Badge
}

func (a *App) resultRows() []resultRow {
	result, ok := a.session.Result()
	if !ok {
		return nil
	}
	maximum := a.config.SubscaleMax()
	rows := make([]resultRow, 0, 3)
	for _, s := range instrument.Subscales() {
		score := result.Score(s)
		rows = append(rows, resultRow{
			Subscale: s,
			Score:    score,
			Max:      maximum,
			Fill:     severity.Fill(float64(score), float64(maximum)),
			Badge:    severity.BadgeFor(string(result.Severity(s))),
		})
	}
	return rows
}

func (a *App) renderResult(width int) string {
	result, ok := a.session.Result()
	if !ok {
		return ""
	}
	lines := []string{
		headingStyle.Render("Your Results"),
		mutedStyle.Width(width).Render(resultsCaption),
		"",
	}
	for _, row := range a.resultRows() {
		label := fmt.Sprintf("%-11s %2d / %d", row.Subscale.FriendlyName()+":", row.Score, row.Max)
		lines = append(lines, label+"  "+row.Badge.Render())
		lines = append(lines, a.bars[row.Subscale].ViewAs(row.Fill), "")
	}
	lines = append(lines, fmt.Sprintf("Total score: %d / %d", result.TotalScore, a.config.TotalMax()))
	if result.AssessmentID != "" {
		lines = append(lines, mutedStyle.Render("Saved with ID: "+result.AssessmentID))
	}
	lines = append(lines, "", mutedStyle.Render("Press t to take the test again."))
	return strings.Join(lines, "\n")
}

func (a *App) renderSidebar(width int) string {
	lines := []string{
		headingStyle.Render("About DASS-21"),
		mutedStyle.Width(width).Render(aboutText),
		"",
		headingStyle.Render("Recent Assessments"),
	}
	switch {
	case !a.feedLoaded:
		lines = append(lines, mutedStyle.Render("Loading..."))
	case len(a.recent) == 0:
		lines = append(lines, mutedStyle.Width(width).Render(emptyFeedText))
	default:
		for _, summary := range a.recent {
			line := feed.Format(summary)
			lines = append(lines,
				truncate(line.Name, width-len(line.Date)-1)+" "+mutedStyle.Render(line.Date),
				mutedStyle.Render("  "+line.Scores),
			)
		}
	}
	lines = append(lines, "", headingStyle.Render("If you need help"))
	for _, h := range helpLines {
		lines = append(lines, mutedStyle.Width(width).Render("• "+h))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
