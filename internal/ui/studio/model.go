// Package studio is the interactive generation TUI: pick a business, compose
// a prompt against its templates and strategies, and watch results arrive.
package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"pdc/internal/api"
	"pdc/internal/catalog"
	"pdc/internal/history"
	"pdc/internal/log"
	"pdc/internal/pubsub"
	"pdc/internal/ui/markdown"
	"pdc/internal/ui/styles"
)

type phase int

const (
	phasePick phase = iota
	phaseCompose
	phaseWaiting
	phaseResult
)

// Model is the root studio model.
type Model struct {
	ctx      context.Context
	client   *api.Client
	registry *catalog.Registry
	store    *history.Store // optional, nil disables run history
	broker   *pubsub.Broker[TaskEvent]
	listener *pubsub.Stream[TaskEvent]
	markdown *markdown.Renderer

	phase  phase
	width  int
	height int

	// pick
	businesses []catalog.Business
	cursor     int

	// compose
	business   catalog.Business
	templates  []catalog.Template
	strategies []catalog.Strategy
	tmplIdx    int
	stratIdx   int
	prompt     textarea.Model
	async      bool

	// waiting
	spin      spinner.Model
	taskID    string
	taskState string

	// result
	result      viewport.Model
	mermaid     string
	errText     string
	submittedAt time.Time
	latency     string
	showLatency bool
}

// New builds a studio model. store may be nil when run history is disabled.
func New(ctx context.Context, client *api.Client, registry *catalog.Registry, store *history.Store, mdStyle string, showLatency bool) *Model {
	ta := textarea.New()
	ta.Placeholder = "Describe what to generate..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.HighlightColor)

	broker := pubsub.NewBroker[TaskEvent]()

	md, err := markdown.New(80, mdStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "Markdown renderer init failed", err)
		md = nil
	}

	return &Model{
		ctx:         ctx,
		client:      client,
		registry:    registry,
		store:       store,
		broker:      broker,
		listener:    pubsub.NewStream(ctx, broker),
		markdown:    md,
		businesses:  registry.Businesses(),
		prompt:      ta,
		spin:        sp,
		result:      viewport.New(80, 20),
		showLatency: showLatency,
	}
}

// Close releases the broker. Call after the program exits.
func (m *Model) Close() {
	m.broker.Close()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.listener.Next())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.SetWidth(msg.Width - 6)
		m.prompt.SetHeight(5)
		m.result.Width = msg.Width - 4
		m.result.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case phasePick:
			return m.updatePick(msg)
		case phaseCompose:
			return m.updateCompose(msg)
		case phaseWaiting:
			if msg.String() == "esc" {
				m.phase = phaseCompose
				return m, nil
			}
			return m, nil
		case phaseResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submittedMsg:
		m.taskID = msg.taskID
		m.taskState = "pending"
		return m, nil

	case diagramMsg:
		return m.onDiagram(msg)

	case integrationMsg:
		return m.onIntegration(msg)

	case renderedMsg:
		m.result.SetContent(msg.content)
		m.result.GotoTop()
		m.phase = phaseResult
		return m, nil

	case pubsub.Event[TaskEvent]:
		return m.onTaskEvent(msg)
	}

	return m, nil
}

func (m *Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down", "ctrl+n":
		if m.cursor < len(m.businesses)-1 {
			m.cursor++
		}
	case "k", "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		return m.selectBusiness(m.businesses[m.cursor])
	}
	return m, nil
}

func (m *Model) selectBusiness(b catalog.Business) (tea.Model, tea.Cmd) {
	res, err := m.registry.Resolve(b.BusinessID)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	templates, _ := m.registry.ListTemplates(b.BusinessID)
	strategies, _ := m.registry.ListStrategies(b.BusinessID)

	m.business = b
	m.templates = templates
	m.strategies = strategies
	m.tmplIdx = indexOfTemplate(templates, res.DefaultTemplate.TemplateID)
	m.stratIdx = indexOfStrategy(strategies, res.DefaultStrategy.StrategyID)
	m.errText = ""
	m.phase = phaseCompose
	m.prompt.Reset()
	if exs := templates[m.tmplIdx].ExampleInputs; len(exs) > 0 {
		m.prompt.Placeholder = exs[0]
	}
	return m, m.prompt.Focus()
}

func (m *Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.phase = phasePick
		m.prompt.Blur()
		return m, nil
	case "tab":
		if len(m.templates) > 0 {
			m.tmplIdx = (m.tmplIdx + 1) % len(m.templates)
			if exs := m.templates[m.tmplIdx].ExampleInputs; len(exs) > 0 {
				m.prompt.Placeholder = exs[0]
			}
		}
		return m, nil
	case "shift+tab":
		if len(m.strategies) > 0 {
			m.stratIdx = (m.stratIdx + 1) % len(m.strategies)
		}
		return m, nil
	case "ctrl+a":
		m.async = !m.async
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.prompt.Value())
	if text == "" {
		m.errText = "prompt is empty"
		return m, nil
	}
	m.errText = ""

	tmpl := m.templates[m.tmplIdx]
	strat := m.strategies[m.stratIdx]
	log.Info(log.CatUI, "Submitting generation",
		"business", m.business.BusinessID,
		"template", tmpl.TemplateID,
		"strategy", strat.StrategyID,
		"async", m.async)

	m.phase = phaseWaiting
	m.taskID = ""
	m.taskState = ""
	m.submittedAt = time.Now()

	if strat.LLMOutputFormat == catalog.FormatNone {
		// Settlement strategies skip the LLM and are driven by uploaded data,
		// which the studio does not collect. Fall back to a diagram request.
		log.Warn(log.CatUI, "Strategy has no LLM output, submitting as diagram", "strategy", strat.StrategyID)
	}

	req := api.DiagramRequest{
		DiagramType: diagramTypeFor(tmpl.GraphType),
		Text:        text,
		Scene:       m.business.BusinessID,
	}
	if m.async {
		return m, m.submitTaskCmd(req)
	}
	if tmpl.GraphType == catalog.GraphArchitecture {
		return m, m.generateIntegrationCmd(api.IntegrationRequest{Text: text})
	}
	return m, m.generateDiagramCmd(req)
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.phase = phaseCompose
		return m, m.prompt.Focus()
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m *Model) onDiagram(msg diagramMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errText = msg.err.Error()
		m.phase = phaseCompose
		return m, nil
	}
	m.markDone()
	m.mermaid = msg.resp.Mermaid
	m.saveRun(history.KindDiagram, msg.resp.Mermaid)
	return m, m.renderMarkdownCmd("```mermaid\n" + msg.resp.Mermaid + "\n```")
}

func (m *Model) onIntegration(msg integrationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errText = msg.err.Error()
		m.phase = phaseCompose
		return m, nil
	}
	m.markDone()
	m.mermaid = ""
	m.saveRun(history.KindIntegration, msg.resp.Markdown)
	return m, m.renderMarkdownCmd(msg.resp.Markdown)
}

func (m *Model) onTaskEvent(ev pubsub.Event[TaskEvent]) (tea.Model, tea.Cmd) {
	listen := m.listener.Next()

	switch ev.Type {
	case pubsub.TaskSubmittedEvent, pubsub.TaskUpdatedEvent:
		m.taskID = ev.Payload.TaskID
		m.taskState = ev.Payload.State
		return m, listen

	case pubsub.TaskFailedEvent:
		if ev.Payload.Err != nil {
			m.errText = ev.Payload.Err.Error()
		} else if msg, ok := ev.Payload.Result["error"].(string); ok {
			m.errText = msg
		} else {
			m.errText = "task failed"
		}
		m.phase = phaseCompose
		return m, listen

	case pubsub.TaskCompletedEvent:
		m.markDone()
		src, _ := ev.Payload.Result["mermaid"].(string)
		if src == "" {
			src, _ = ev.Payload.Result["markdown"].(string)
		}
		m.mermaid, _ = ev.Payload.Result["mermaid"].(string)
		if m.mermaid != "" {
			m.saveRun(history.KindDiagram, m.mermaid)
			return m, tea.Batch(listen, m.renderMarkdownCmd("```mermaid\n"+m.mermaid+"\n```"))
		}
		m.saveRun(history.KindIntegration, src)
		return m, tea.Batch(listen, m.renderMarkdownCmd(src))
	}

	return m, listen
}

// markDone records how long the round trip took for the status bar.
func (m *Model) markDone() {
	if m.submittedAt.IsZero() {
		return
	}
	m.latency = time.Since(m.submittedAt).Round(time.Millisecond).String()
}

func (m *Model) saveRun(kind history.Kind, source string) {
	if m.store == nil {
		return
	}
	tmpl := m.templates[m.tmplIdx]
	rec := &history.Record{
		Kind:        kind,
		BusinessID:  m.business.BusinessID,
		TemplateID:  tmpl.TemplateID,
		StrategyID:  m.strategies[m.stratIdx].StrategyID,
		DiagramType: string(diagramTypeFor(tmpl.GraphType)),
		Prompt:      strings.TrimSpace(m.prompt.Value()),
		Source:      source,
	}
	if err := m.store.Save(rec); err != nil {
		log.ErrorErr(log.CatUI, "Failed to save run", err)
	}
}

func (m *Model) View() string {
	var body string
	switch m.phase {
	case phasePick:
		body = m.viewPick()
	case phaseCompose:
		body = m.viewCompose()
	case phaseWaiting:
		body = m.viewWaiting()
	case phaseResult:
		body = m.viewResult()
	}
	return body + "\n" + m.statusBar()
}

func (m *Model) viewPick() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Select a business") + "\n\n")
	for i, biz := range m.businesses {
		label := fmt.Sprintf("%s (%s)", biz.Label, biz.BusinessID)
		if i == m.cursor {
			b.WriteString(styles.SelectionIndicator.Render("> ") + lipgloss.NewStyle().Bold(true).Render(label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return styles.Pane.Render(b.String())
}

func (m *Model) viewCompose() string {
	tmpl := m.templates[m.tmplIdx]
	strat := m.strategies[m.stratIdx]

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.business.Label) + "\n")
	b.WriteString(styles.Subtle.Render(fmt.Sprintf(
		"template: %s [tab]   strategy: %s [shift+tab]   mode: %s [ctrl+a]",
		tmpl.Label, strat.Label, modeLabel(m.async))) + "\n\n")
	if tmpl.GraphType == catalog.GraphArchitecture {
		b.WriteString(styles.Subtle.Render(
			"architecture templates return an integration plan, not a rendered diagram") + "\n\n")
	}
	b.WriteString(m.prompt.View() + "\n\n")
	b.WriteString(styles.Subtle.Render("ctrl+s submit  esc back"))
	if m.errText != "" {
		b.WriteString("\n" + styles.Error.Render(m.errText))
	}
	return styles.Pane.Render(b.String())
}

func (m *Model) viewWaiting() string {
	line := m.spin.View() + " generating"
	if m.taskID != "" {
		line += fmt.Sprintf("  task %s", m.taskID)
	}
	if m.taskState != "" {
		line += styles.Subtle.Render("  (" + m.taskState + ")")
	}
	return styles.Pane.Render(line)
}

func (m *Model) viewResult() string {
	header := styles.Title.Render("Result")
	if m.mermaid != "" {
		header += styles.Subtle.Render("  mermaid")
	}
	return styles.Pane.Render(header + "\n" + m.result.View() + "\n" + styles.Subtle.Render("esc new prompt  q quit"))
}

func (m *Model) statusBar() string {
	parts := []string{
		"pdc",
		m.client.Environment().String(),
		"catalog " + m.registry.Version(),
	}
	if m.showLatency && m.latency != "" {
		parts = append(parts, m.latency)
	}
	bar := strings.Join(parts, " | ")
	if m.width > 0 {
		bar = truncate.StringWithTail(bar, uint(m.width-2), "…")
	}
	return styles.StatusBar.Render(bar)
}

func modeLabel(async bool) string {
	if async {
		return "async"
	}
	return "sync"
}

// diagramTypeFor maps a catalog graph shape to the backend diagram family.
func diagramTypeFor(g catalog.GraphType) api.DiagramType {
	switch g {
	case catalog.GraphSequence:
		return api.DiagramSequence
	case catalog.GraphState:
		return api.DiagramState
	case catalog.GraphMetrics, catalog.GraphAttribution:
		return api.DiagramCMICReport
	default:
		return api.DiagramFlow
	}
}

func indexOfTemplate(ts []catalog.Template, id string) int {
	for i, t := range ts {
		if t.TemplateID == id {
			return i
		}
	}
	return 0
}

func indexOfStrategy(ss []catalog.Strategy, id string) int {
	for i, s := range ss {
		if s.StrategyID == id {
			return i
		}
	}
	return 0
}
