// Package ui is the interactive terminal view of the point cloud.
package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"

	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/db"
	"github.com/ramanasai/mindcloud/internal/logging"
	"github.com/ramanasai/mindcloud/internal/metrics"
	"github.com/ramanasai/mindcloud/internal/notify"
	"github.com/ramanasai/mindcloud/internal/pipeline"
	"github.com/ramanasai/mindcloud/internal/plans"
	"github.com/ramanasai/mindcloud/internal/scene"
	"github.com/ramanasai/mindcloud/internal/version"
)

type mode int

const (
	modeNormal mode = iota
	modeCompose
	modeSearch
	modeHelp
)

const (
	sidebarWidth = 36
	orbitStep    = math.Pi / 24
	maxMatches   = 8
)

// Deps are the collaborators of the cloud view. Analyzer is required; the
// rest are optional.
type Deps struct {
	Config   config.Config
	Analyzer *pipeline.Analyzer
	DB       *sql.DB
	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Notifier notify.Notifier
}

// events collects controller callbacks. Model is copied on every update, so
// the callbacks write through this pointer.
type events struct {
	status string
}

type Model struct {
	ctx      context.Context
	cfg      config.Config
	theme    Theme
	analyzer *pipeline.Analyzer
	ctrl     *scene.Controller
	dbh      *sql.DB
	logger   logging.Logger
	notifier notify.Notifier
	ev       *events

	width, height int
	mode          mode

	editor  textarea.Model
	search  textinput.Model
	matches []cloud.Point

	plans     []plans.ActionPlan
	compare   *comparison
	analyzing bool
	shown     uint64 // generation on screen
	pending   string
	lastFrame time.Time
	err       error
}

// comparison is the compare-mode state: an anchor and, once a second point
// is selected, the scored relationship.
type comparison struct {
	from cloud.Point
	to   *cloud.Point
	rel  cloud.Relationship
}

type frameMsg time.Time

type analysisMsg struct {
	res pipeline.Result
	err error
}

type savedMsg struct {
	id  int64
	err error
}

// New builds the model. Call WithText to analyze something on start.
func New(ctx context.Context, d Deps) Model {
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	ed := textarea.New()
	ed.Placeholder = "How was your day?  (Ctrl+S to analyze, Esc to cancel)"
	ed.SetHeight(8)
	ed.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(lipgloss.Color("#313244"))

	si := textinput.New()
	si.Placeholder = "find a word"
	si.CharLimit = 64
	si.Width = 30

	ev := &events{}
	ctrl := scene.NewController(scene.OptionsFromConfig(d.Config.Scene), d.Logger)
	if d.Metrics != nil {
		ctrl.SetPickRecorder(d.Metrics)
	}
	ctrl.OnPointClick = func(p *cloud.Point) {
		if p == nil {
			ev.status = "selection cleared"
			return
		}
		ev.status = fmt.Sprintf("%s · %s · %s", p.Word, p.Category, p.EmotionalTone)
	}
	ctrl.OnFilterChange = func(tone string) {
		if tone == "" {
			ev.status = "showing all groups"
			return
		}
		ev.status = "focused on " + tone
	}

	return Model{
		ctx:      ctx,
		cfg:      d.Config,
		theme:    ThemeByName(d.Config.Theme),
		analyzer: d.Analyzer,
		ctrl:     ctrl,
		dbh:      d.DB,
		logger:   d.Logger.Named("ui"),
		notifier: d.Notifier,
		ev:       ev,
		editor:   ed,
		search:   si,
	}
}

// WithText queues text for analysis when the program starts.
func (m Model) WithText(text string) Model {
	m.pending = text
	return m
}

// Controller exposes the view state, mostly for tests.
func (m Model) Controller() *scene.Controller { return m.ctrl }

// Run starts the full-screen program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, d Deps, initial string) error {
	if d.Analyzer == nil {
		return errors.New("ui: analyzer is required")
	}
	m := New(ctx, d).WithText(initial)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.nextFrame()}
	if strings.TrimSpace(m.pending) != "" {
		cmds = append(cmds, m.analyzeCmd(m.pending))
	}
	return tea.Batch(cmds...)
}

func (m Model) frameInterval() time.Duration {
	fps := m.cfg.Scene.FPS
	if fps <= 0 {
		fps = 20
	}
	return time.Second / time.Duration(fps)
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg { return frameMsg(t) })
}

// analyzeCmd reserves a generation now, so a later request supersedes this
// one even if this one finishes last.
func (m Model) analyzeCmd(text string) tea.Cmd {
	gen := m.analyzer.Begin()
	ctx := m.ctx
	a := m.analyzer
	return func() tea.Msg {
		res, err := a.Run(ctx, gen, text)
		return analysisMsg{res: res, err: err}
	}
}

func (m Model) saveCmd(text string) tea.Cmd {
	if m.dbh == nil {
		return nil
	}
	ctx, dbh := m.ctx, m.dbh
	return func() tea.Msg {
		id, err := db.AddEntry(ctx, dbh, db.Entry{Text: text, Category: "note"})
		return savedMsg{id: id, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(20, msg.Width-4))
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.ctrl.Tick(now.Sub(m.lastFrame))
		}
		m.lastFrame = now
		return m, m.nextFrame()

	case analysisMsg:
		return m.applyAnalysis(msg), nil

	case savedMsg:
		if msg.err != nil {
			m.ev.status = "save failed: " + msg.err.Error()
			m.logger.Warn("save entry failed", logging.Err(msg.err))
		} else {
			m.logger.Debug("entry saved", logging.Int("id", int(msg.id)))
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg), nil

	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCompose:
			return m.updateCompose(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			if k == "esc" || k == "?" || k == "q" {
				m.mode = modeNormal
			}
			return m, nil
		default:
			return m.updateNormal(k)
		}
	}
	return m, nil
}

// superseded reports whether a newer run has been requested or shown.
func (m Model) superseded(gen uint64) bool {
	return gen < m.shown || gen < m.analyzer.Latest()
}

func (m Model) applyAnalysis(msg analysisMsg) Model {
	if errors.Is(msg.err, pipeline.ErrStale) || m.superseded(msg.res.Generation) {
		// a newer run owns the view
		m.logger.Debug("superseded analysis dropped", logging.Uint64("generation", msg.res.Generation))
		return m
	}
	m.analyzing = false
	m.shown = msg.res.Generation
	if msg.err != nil {
		m.err = msg.err
		m.ev.status = "analysis failed: " + msg.err.Error()
		return m
	}
	m.err = nil
	m.compare = nil
	m.ctrl.SetSnapshot(msg.res.Snapshot)
	m.plans = msg.res.Plans
	switch msg.res.Status {
	case pipeline.StatusEmpty:
		m.ev.status = "nothing to analyze"
	default:
		m.ev.status = fmt.Sprintf("%d words in %d groups", len(msg.res.Points()), len(msg.res.Groups()))
	}
	return m
}

func (m Model) updateNormal(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "i", "n":
		m.mode = modeCompose
		m.editor.Reset()
		return m, m.editor.Focus()
	case "/":
		m.mode = modeSearch
		m.search.SetValue("")
		m.matches = nil
		return m, m.search.Focus()
	case "+", "=":
		m.ctrl.ZoomIn()
	case "-", "_":
		m.ctrl.ZoomOut()
	case "0", "r":
		m.ctrl.ResetView()
	case "left", "h":
		m.ctrl.Orbit(-orbitStep, 0)
	case "right", "l":
		m.ctrl.Orbit(orbitStep, 0)
	case "up", "k":
		m.ctrl.Orbit(0, orbitStep)
	case "down", "j":
		m.ctrl.Orbit(0, -orbitStep)
	case "]":
		n := m.ctrl.SetVisibleClusters(m.ctrl.VisibleClusterCount() + 1)
		m.ev.status = fmt.Sprintf("showing up to %d groups", n)
	case "[":
		n := m.ctrl.SetVisibleClusters(m.ctrl.VisibleClusterCount() - 1)
		m.ev.status = fmt.Sprintf("showing up to %d groups", n)
	case "tab":
		m.cycleGroup(1)
	case "shift+tab":
		m.cycleGroup(-1)
	case "c":
		p, ok := m.ctrl.Selected()
		if !ok {
			m.ev.status = "select a word to compare from"
			return m, nil
		}
		m.compare = &comparison{from: p}
		m.ev.status = "compare " + p.Word + " with… (click or / to pick)"
	case "esc":
		m.compare = nil
		m.ctrl.ResetEmotionalGroupFilter()
		m.ctrl.ClearSelection()
	case "p":
		if m.notifier != nil {
			if err := notify.SendPlan(m.notifier, m.plans); err != nil {
				m.logger.Warn("plan notification failed", logging.Err(err))
			}
		}
	}
	return m, nil
}

// cycleGroup moves the tone filter to the next visible group; past the end
// the filter is cleared.
func (m Model) cycleGroup(step int) {
	groups := m.ctrl.VisibleGroups()
	if len(groups) == 0 {
		return
	}
	cur := -1
	for i, g := range groups {
		if g.Name == m.ctrl.Filter() {
			cur = i
		}
	}
	next := cur + step
	if cur == -1 && step < 0 {
		next = len(groups) - 1
	}
	if next < 0 || next >= len(groups) {
		m.ctrl.ResetEmotionalGroupFilter()
		return
	}
	m.ctrl.FocusOnEmotionalGroup(groups[next].Name)
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.editor.Blur()
		return m, nil
	case "ctrl+s":
		text := strings.TrimSpace(m.editor.Value())
		m.mode = modeNormal
		m.editor.Blur()
		if text == "" {
			return m, nil
		}
		m.analyzing = true
		m.ev.status = "analyzing…"
		return m, tea.Batch(m.analyzeCmd(text), m.saveCmd(text))
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.search.Blur()
		m.matches = nil
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.search.Blur()
		if len(m.matches) == 0 {
			m.ev.status = "no matching word"
			return m, nil
		}
		if !m.ctrl.Select(m.matches[0].ID) {
			m.ev.status = m.matches[0].Word + " is outside the focused group"
		}
		m.matches = nil
		return m.resolveCompare(), nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.matches = m.findWords(m.search.Value())
	return m, cmd
}

// findWords fuzzy-matches query against the words on screen, best first.
func (m Model) findWords(query string) []cloud.Point {
	snap := m.ctrl.Snapshot()
	if snap.Empty() || strings.TrimSpace(query) == "" {
		return nil
	}
	words := make([]string, len(snap.Points))
	for i, p := range snap.Points {
		words[i] = p.Word
	}
	found := fuzzy.Find(strings.ToLower(query), words)
	out := make([]cloud.Point, 0, min(len(found), maxMatches))
	for _, f := range found {
		if len(out) == maxMatches {
			break
		}
		out = append(out, snap.Points[f.Index])
	}
	return out
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if m.mode != modeNormal {
		return m
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.ZoomIn()
		return m
	case tea.MouseButtonWheelDown:
		m.ctrl.ZoomOut()
		return m
	case tea.MouseButtonLeft:
	default:
		return m
	}
	if msg.Action != tea.MouseActionPress {
		return m
	}
	w, h := m.canvasSize()
	col, row := msg.X, msg.Y-headerHeight
	if col < 0 || row < 0 || col >= w || row >= h {
		return m
	}
	m.ctrl.Click(col, row, w, h)
	return m.resolveCompare()
}

// resolveCompare scores the anchor against a newly selected point.
func (m Model) resolveCompare() Model {
	if m.compare == nil || m.compare.to != nil {
		return m
	}
	p, ok := m.ctrl.Selected()
	if !ok || p.ID == m.compare.from.ID {
		return m
	}
	m.compare = &comparison{from: m.compare.from, to: &p, rel: m.ctrl.Snapshot().Compare(m.compare.from, p)}
	m.ev.status = fmt.Sprintf("%s ↔ %s: %s", m.compare.from.Word, p.Word, m.compare.rel.Label)
	return m
}

const (
	headerHeight = 1
	footerHeight = 1
)

func (m Model) showSidebar() bool { return m.width >= 80 }

// canvasSize is the cloud viewport in cells.
func (m Model) canvasSize() (int, int) {
	w := m.width
	if m.showSidebar() {
		w -= sidebarWidth
	}
	return max(w, 1), max(m.height-headerHeight-footerHeight, 1)
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch m.mode {
	case modeHelp:
		body = m.helpView()
	case modeCompose:
		body = m.theme.Border.Render(m.editor.View())
	default:
		w, h := m.canvasSize()
		c := NewCanvas(w, h, m.theme.Color)
		c.Words = true
		c.Draw(m.ctrl.Frame(), m.ctrl.Camera())
		body = c.String()
		if m.showSidebar() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidebar(sidebarWidth, h))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	left := m.theme.Title.Render(version.GetShortVersion())
	status := m.ev.status
	if m.analyzing {
		status = "analyzing…"
	}
	st := m.theme.Hint
	if m.err != nil {
		st = m.theme.Error
	}
	right := st.Render(status)
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter() string {
	switch m.mode {
	case modeSearch:
		return m.search.View()
	case modeCompose:
		return m.theme.Hint.Render("ctrl+s analyze · esc cancel")
	case modeHelp:
		return m.theme.Hint.Render("esc close")
	}
	return m.theme.Hint.Render("i write · / find · c compare · tab focus group · [ ] groups · +/- zoom · arrows orbit · 0 reset · ? help · q quit")
}

func (m Model) renderSidebar(w, h int) string {
	inner := w - 4
	var b strings.Builder

	if m.mode == modeSearch && len(m.matches) > 0 {
		b.WriteString(m.theme.Label.Render("Matches"))
		b.WriteString("\n")
		for i, p := range m.matches {
			line := p.Word
			if i == 0 {
				line = m.theme.Selected.Render("› " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if p, ok := m.ctrl.Selected(); ok {
		b.WriteString(m.theme.Label.Render("Selected"))
		b.WriteString("\n")
		b.WriteString(m.theme.Selected.Render(p.Word))
		b.WriteString(fmt.Sprintf(" %s\n", p.Category))
		b.WriteString(m.theme.Value.Render(p.EmotionalTone))
		if p.HasSentiment {
			b.WriteString(fmt.Sprintf("  sentiment %.2f", p.Sentiment))
		}
		b.WriteString("\n")
		if len(p.Keywords) > 0 {
			b.WriteString(wordwrap.String("near: "+strings.Join(p.Keywords, ", "), inner))
			b.WriteString("\n")
		}
		snap := m.ctrl.Snapshot()
		for _, q := range m.ctrl.Connected() {
			rel := snap.Compare(p, q)
			b.WriteString(fmt.Sprintf("  ↔ %s %s\n", q.Word, m.theme.Hint.Render(rel.Label)))
		}
		b.WriteString("\n")
	}

	if c := m.compare; c != nil && c.to != nil {
		b.WriteString(m.theme.Label.Render("Compare"))
		b.WriteString("\n")
		b.WriteString(m.theme.Selected.Render(c.from.Word + " ↔ " + c.to.Word))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("spatial %.2f  sentiment %.2f\n", c.rel.SpatialSimilarity, c.rel.SentimentSimilarity))
		if len(c.rel.SharedKeywords) > 0 {
			b.WriteString(wordwrap.String("shared: "+strings.Join(c.rel.SharedKeywords, ", "), inner))
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s (%.2f)\n\n", c.rel.Label, c.rel.Overall))
	}

	groups := m.ctrl.VisibleGroups()
	if len(groups) > 0 {
		b.WriteString(m.theme.Label.Render(fmt.Sprintf("Groups (%d)", len(groups))))
		b.WriteString("\n")
		for _, g := range groups {
			marker := "  "
			if g.Name == m.ctrl.Filter() {
				marker = "› "
			}
			swatch := "■"
			if m.theme.Color {
				swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render(swatch)
			}
			b.WriteString(fmt.Sprintf("%s%s %s %d\n", marker, swatch, g.Name, len(g.Points)))
		}
		b.WriteString("\n")
	}

	if len(m.plans) > 0 {
		b.WriteString(m.theme.Label.Render("Plans"))
		b.WriteString("\n")
		for _, p := range m.plans {
			b.WriteString(m.theme.Value.Render(wordwrap.String(p.Title, inner)))
			b.WriteString("\n")
			for _, s := range p.Steps {
				b.WriteString(wordwrap.String("· "+s, inner))
				b.WriteString("\n")
			}
		}
	}

	content := lipgloss.NewStyle().Width(inner).MaxHeight(max(h-2, 1)).Render(strings.TrimRight(b.String(), "\n"))
	return m.theme.Border.Width(w - 2).Height(max(h-2, 1)).Render(content)
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"i / n", "write an entry and analyze it"},
		{"/", "find a word and select it"},
		{"click", "select the word under the cursor"},
		{"tab / shift+tab", "focus the next / previous group"},
		{"[ ]", "show fewer / more groups"},
		{"+ - wheel", "zoom in / out"},
		{"arrows hjkl", "orbit the camera"},
		{"0 r", "reset the camera"},
		{"c", "compare the selection with the next pick"},
		{"esc", "clear focus, selection and compare"},
		{"p", "notify the first suggested plan"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", r[0], r[1]))
	}
	return m.theme.Border.Render(b.String())
}
