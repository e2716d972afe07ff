// internal/tui/app.go
//
// This is the terminal front end for the DASS-21 check.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: App holds the session and every widget
// 2. Update: keys and command results arrive as messages
// 3. View: renders the current phase to a string
//
// All state transitions happen inside Update. Network calls run as tea.Cmds
// and report back with messages, so nothing here needs a lock.

package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kingrea/dass-check/internal/assessment"
	"github.com/kingrea/dass-check/internal/config"
	"github.com/kingrea/dass-check/internal/feed"
	"github.com/kingrea/dass-check/internal/instrument"
	"github.com/kingrea/dass-check/internal/scoring"
	"github.com/kingrea/dass-check/internal/severity"
)

// Scorer is the part of the scoring service the UI calls directly.
type Scorer interface {
	Score(ctx context.Context, payload assessment.SubmissionPayload) (assessment.ScoreResult, error)
	SystemCheck(ctx context.Context) (scoring.SystemStatus, error)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogger sets the logger used by the app and the default client.
func WithLogger(log *zap.Logger) AppOption {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithScorer replaces the scoring client.
func WithScorer(s Scorer) AppOption {
	return func(a *App) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithFeedSource replaces where recent assessments come from.
func WithFeedSource(src feed.Source) AppOption {
	return func(a *App) {
		if src != nil {
			a.feedSource = src
		}
	}
}

type focusArea int

const (
	focusItems focusArea = iota
	focusFields
)

const (
	fieldName = iota
	fieldEmail
	fieldAge
	fieldContext
	fieldCount
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	sidebarWidth  = 34
)

type feedLoadedMsg struct {
	items []assessment.RecentAssessmentSummary
}

type scoreFinishedMsg struct {
	round  int
	result assessment.ScoreResult
	err    error
}

type systemCheckMsg struct {
	status scoring.SystemStatus
	err    error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config     *config.Config
	log        *zap.Logger
	session    *assessment.Session
	scorer     Scorer
	feedSource feed.Source
	feed       *feed.Loader
	timeout    time.Duration

	// Form state
	focus  focusArea
	cursor int // zero-based item index
	field  int
	inputs [fieldCount]textinput.Model

	// Widgets
	spinner spinner.Model
	bars    map[instrument.Subscale]progress.Model
	help    help.Model
	keys    keyMap

	recent     []assessment.RecentAssessmentSummary
	feedLoaded bool
	checking   bool
	statusMsg  string

	width  int
	height int
}

// NewApp creates a new App instance from resolved configuration.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("tui: config is required")
	}
	app := &App{
		config:  cfg,
		log:     zap.NewNop(),
		session: assessment.NewSession(),
		timeout: cfg.RequestTimeout(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6366F1"))),
		),
		bars:   map[instrument.Subscale]progress.Model{},
		help:   help.New(),
		keys:   newKeyMap(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	var client *scoring.Client
	if app.scorer == nil || app.feedSource == nil {
		client = scoring.NewClient(cfg.BaseURL(),
			scoring.WithTimeout(cfg.RequestTimeout()),
			scoring.WithLogger(app.log),
		)
	}
	if app.scorer == nil {
		app.scorer = client
	}
	if app.feedSource == nil {
		app.feedSource = client
	}
	app.feed = feed.NewLoader(app.feedSource, cfg.FeedLimit(), app.log)

	for _, s := range instrument.Subscales() {
		app.bars[s] = progress.New(
			progress.WithSolidFill(severity.BarColour(s)),
			progress.WithoutPercentage(),
		)
	}
	app.inputs = newFieldInputs()
	app.resize()

	app.log.Info("session opened", zap.String("base_url", cfg.BaseURL()))
	return app, nil
}

func newFieldInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	fields := [fieldCount]struct {
		placeholder string
		limit       int
	}{
		fieldName:    {"Name (optional)", 80},
		fieldEmail:   {"Email (optional)", 120},
		fieldAge:     {"Age (optional)", 3},
		fieldContext: {"Class / context (optional)", 120},
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.limit
		ti.Prompt = ""
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}
	return inputs
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.loadFeed()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case feedLoadedMsg:
		// Only the sidebar reads this, whatever phase we are in.
		a.recent = msg.items
		a.feedLoaded = true
		return a, nil

	case scoreFinishedMsg:
		return a.handleScoreFinished(msg)

	case systemCheckMsg:
		a.checking = false
		a.statusMsg = describeSystemCheck(msg.status, msg.err)
		return a, nil

	case spinner.TickMsg:
		if a.session.Phase() != assessment.PhaseSubmitting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.session.Phase() {
	case assessment.PhaseSubmitting:
		// Frozen until the service answers.
		return a, nil
	case assessment.PhaseResult:
		return a.handleResultKey(msg)
	}
	if a.focus == focusFields {
		return a.handleFieldKey(msg)
	}
	return a.handleItemKey(msg)
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.TakeAgain), key.Matches(msg, a.keys.Reset):
		a.reset()
	case key.Matches(msg, a.keys.Check):
		return a, a.systemCheck()
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleItemKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := instrument.ItemCount - 1
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < last {
			a.cursor++
		}
	case key.Matches(msg, a.keys.First):
		a.cursor = 0
	case key.Matches(msg, a.keys.Last):
		a.cursor = last
	case key.Matches(msg, a.keys.Answer):
		value := instrument.Response(msg.Runes[0] - '0')
		if a.answer(value) && a.cursor < last {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Prev):
		a.step(-1)
	case key.Matches(msg, a.keys.Next):
		a.step(1)
	case key.Matches(msg, a.keys.Fields):
		field := fieldName
		if msg.String() == "shift+tab" {
			field = fieldCount - 1
		}
		return a, a.focusField(field)
	case key.Matches(msg, a.keys.Submit), key.Matches(msg, a.keys.ForceSubmit):
		return a.submit()
	case key.Matches(msg, a.keys.Reset):
		a.reset()
	case key.Matches(msg, a.keys.Check):
		return a, a.systemCheck()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "enter":
		if a.field == fieldCount-1 {
			a.focusItems()
			return a, nil
		}
		return a, a.focusField(a.field + 1)
	case "shift+tab", "up":
		if a.field == 0 {
			a.focusItems()
			return a, nil
		}
		return a, a.focusField(a.field - 1)
	case "esc":
		a.focusItems()
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.ForceSubmit):
		return a.submit()
	case key.Matches(msg, a.keys.Reset):
		a.reset()
		return a, nil
	}
	var cmd tea.Cmd
	a.inputs[a.field], cmd = a.inputs[a.field].Update(msg)
	return a, cmd
}

// answer records value for the item under the cursor.
func (a *App) answer(value instrument.Response) bool {
	if err := a.session.SetAnswer(a.cursor+1, value); err != nil {
		a.log.Debug("answer rejected", zap.Int("item", a.cursor+1), zap.Error(err))
		return false
	}
	return true
}

// step moves the current item's answer one notch, starting from the nearest
// end when the item is still open.
func (a *App) step(delta int) {
	current, ok := a.session.Answers().Get(a.cursor + 1)
	var next instrument.Response
	switch {
	case !ok && delta > 0:
		next = instrument.MinResponse
	case !ok:
		next = instrument.MaxResponse
	default:
		next = current + instrument.Response(delta)
	}
	if !next.Valid() {
		return
	}
	a.answer(next)
}

func (a *App) focusField(field int) tea.Cmd {
	a.focus = focusFields
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
	a.field = field
	return a.inputs[field].Focus()
}

func (a *App) focusItems() {
	a.focus = focusItems
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
}

func (a *App) metadataInput() assessment.MetadataInput {
	return assessment.MetadataInput{
		Name:    a.inputs[fieldName].Value(),
		Email:   a.inputs[fieldEmail].Value(),
		Age:     a.inputs[fieldAge].Value(),
		Context: a.inputs[fieldContext].Value(),
	}
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	if err := a.session.SetMetadata(a.metadataInput()); err != nil {
		return a, nil
	}
	sub, err := a.session.BeginSubmit()
	if err != nil {
		a.log.Info("submission blocked", zap.Error(err))
		switch {
		case errors.Is(err, assessment.ErrIncomplete):
			if open := a.session.Answers().Unanswered(); len(open) > 0 {
				a.cursor = open[0] - 1
			}
			a.focusItems()
		case errors.Is(err, assessment.ErrInvalidEmail):
			return a, a.focusField(fieldEmail)
		case errors.Is(err, assessment.ErrInvalidAge):
			return a, a.focusField(fieldAge)
		}
		return a, nil
	}
	a.focusItems()
	a.statusMsg = ""
	a.log.Info("submitting assessment", zap.Int("round", sub.Round))
	return a, tea.Batch(a.spinner.Tick, a.scoreCmd(sub))
}

func (a *App) scoreCmd(sub assessment.Submission) tea.Cmd {
	scorer := a.scorer
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := scorer.Score(ctx, sub.Payload)
		return scoreFinishedMsg{round: sub.Round, result: result, err: err}
	}
}

func (a *App) handleScoreFinished(msg scoreFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if err := a.session.FailSubmit(msg.round, msg.err); err != nil {
			a.log.Debug("dropping stale score failure", zap.Error(err))
			return a, nil
		}
		a.log.Error("scoring failed", zap.Int("round", msg.round), zap.Error(msg.err))
		return a, nil
	}
	if err := a.session.CompleteSubmit(msg.round, msg.result); err != nil {
		a.log.Debug("dropping stale score result", zap.Error(err))
		return a, nil
	}
	a.log.Info("assessment scored",
		zap.Int("round", msg.round),
		zap.String("assessment_id", msg.result.AssessmentID),
	)
	return a, nil
}

func (a *App) reset() {
	a.session.Reset()
	a.cursor = 0
	a.focusItems()
	a.statusMsg = ""
	a.log.Info("session reset")
}

func (a *App) loadFeed() tea.Cmd {
	loader := a.feed
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return feedLoadedMsg{items: loader.Load(ctx)}
	}
}

func (a *App) systemCheck() tea.Cmd {
	if a.checking {
		return nil
	}
	a.checking = true
	a.statusMsg = "Checking scoring service..."
	scorer := a.scorer
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		status, err := scorer.SystemCheck(ctx)
		return systemCheckMsg{status: status, err: err}
	}
}

func describeSystemCheck(status scoring.SystemStatus, err error) string {
	if err != nil || !status.Reachable {
		var statusErr *scoring.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Sprintf("System check: service answered %d", statusErr.StatusCode)
		}
		return "System check: scoring service unreachable"
	}
	if len(status.Fields) == 0 {
		return "System check: scoring service reachable"
	}
	keys := make([]string, 0, len(status.Fields))
	for k := range status.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, status.Fields[k]))
	}
	return "System check: " + strings.Join(parts, " · ")
}

func (a *App) resize() {
	mw := a.mainWidth()
	for s, bar := range a.bars {
		bar.Width = max(10, mw-36)
		a.bars[s] = bar
	}
	for i := range a.inputs {
		a.inputs[i].Width = max(10, mw/2-8)
	}
	a.help.Width = a.width
}

func (a *App) mainWidth() int {
	if a.width-sidebarWidth < 50 {
		return a.width
	}
	return a.width - sidebarWidth
}
