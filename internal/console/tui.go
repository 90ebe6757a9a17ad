package console

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/ui/splitpanel"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

const maxTranscript = 1000

// RunTUI runs the full screen console.
func RunTUI(ctx context.Context, e Engine, caller domain.Issuer) error {
	p := tea.NewProgram(newModel(ctx, e, caller), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type resultMsg struct {
	res dispatchers.Result
}

type model struct {
	ctx    context.Context
	engine Engine
	caller domain.Issuer

	input      textinput.Model
	transcript []string
	scroll     int // lines scrolled up from the bottom

	span     dispatchers.Completion
	selected int

	history []string
	histPos int

	busy   bool
	cancel context.CancelFunc

	width, height int
	renderer      *Renderer
}

func newModel(ctx context.Context, e Engine, caller domain.Issuer) *model {
	ti := textinput.New()
	ti.Prompt = style.Prompt("> ")
	ti.Placeholder = "type a command, tab to complete"
	ti.Focus()

	m := &model{
		ctx:      ctx,
		engine:   e,
		caller:   caller,
		input:    ti,
		width:    80,
		height:   24,
		renderer: NewRenderer(60),
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		layout := m.layout()
		m.input.Width = max(m.width-4, 10)
		m.renderer = NewRenderer(layout.MainContentWidth())
		return m, nil

	case resultMsg:
		m.busy = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if text := m.renderer.Result(msg.res); text != "" {
			m.appendTranscript(text)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.busy && m.cancel != nil {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "tab":
		m.accept()
		return m, nil

	case "esc":
		m.span.Items = nil
		return m, nil

	case "up":
		if m.input.Value() == "" || m.browsing() || len(m.span.Items) == 0 {
			m.recall(-1)
		} else {
			m.selected = (m.selected - 1 + len(m.span.Items)) % len(m.span.Items)
		}
		return m, nil

	case "down":
		if m.browsing() || len(m.span.Items) == 0 {
			m.recall(1)
		} else {
			m.selected = (m.selected + 1) % len(m.span.Items)
		}
		return m, nil

	case "pgup":
		m.scroll = min(m.scroll+m.panelHeight()/2, max(len(m.transcript)-1, 0))
		return m, nil

	case "pgdown":
		m.scroll = max(m.scroll-m.panelHeight()/2, 0)
		return m, nil
	}

	before, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.histPos = len(m.history)
	}
	if m.input.Value() != before || m.input.Position() != pos {
		m.refresh()
	}
	return m, cmd
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" || m.busy {
		return m, nil
	}
	if isExit(raw) {
		return m, tea.Quit
	}

	m.history = append(m.history, raw)
	m.histPos = len(m.history)
	m.appendTranscript(style.Prompt("> ") + raw)
	m.input.SetValue("")
	m.refresh()

	ctx, cancel := context.WithCancel(m.ctx)
	m.busy = true
	m.cancel = cancel
	e, caller := m.engine, m.caller
	return m, func() tea.Msg {
		return resultMsg{res: e.Dispatch(ctx, caller, raw)}
	}
}

// accept replaces the completed span with the selected suggestion.
func (m *model) accept() {
	if len(m.span.Items) == 0 {
		return
	}
	v := m.input.Value()
	if m.span.End > len(v) || m.span.Start > m.span.End {
		return
	}
	item := m.span.Items[m.selected]
	next := v[:m.span.Start] + item + v[m.span.End:]
	cursor := m.span.Start + len(item)
	if cursor == len(next) {
		next += " "
		cursor++
	}
	m.input.SetValue(next)
	m.input.SetCursor(cursor)
	m.refresh()
}

// browsing reports whether the input holds a recalled history line.
func (m *model) browsing() bool {
	return m.histPos < len(m.history)
}

func (m *model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histPos = min(max(m.histPos+step, 0), len(m.history))
	if m.histPos == len(m.history) {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.history[m.histPos])
	}
	m.input.CursorEnd()
	m.refresh()
}

func (m *model) refresh() {
	m.span = m.engine.CompleteSpan(m.ctx, m.caller, m.input.Value(), m.input.Position())
	m.selected = 0
}

func (m *model) appendTranscript(text string) {
	m.transcript = append(m.transcript, strings.Split(text, "\n")...)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
	m.scroll = 0
}

func (m *model) layout() *splitpanel.Layout {
	return splitpanel.NewLayout(m.width, splitpanel.DefaultConfig, style.GetColors())
}

// panelHeight leaves room for the input and status lines.
func (m *model) panelHeight() int {
	return max(m.height-2, 4)
}

func (m *model) View() string {
	layout := m.layout()
	height := m.panelHeight()
	visible := height - 2

	sidebar := splitpanel.Panel{Title: "Suggestions", TotalItems: len(m.span.Items), ScrollPos: m.selected}
	start := 0
	if m.selected >= visible-1 {
		start = m.selected - (visible - 2)
	}
	for i := start; i < len(m.span.Items) && len(sidebar.Lines) < visible-1; i++ {
		if i == m.selected {
			sidebar.Lines = append(sidebar.Lines, style.Prompt("> "+m.span.Items[i]))
		} else {
			sidebar.Lines = append(sidebar.Lines, "  "+m.span.Items[i])
		}
	}

	end := len(m.transcript) - m.scroll
	from := max(end-visible, 0)
	content := splitpanel.Panel{
		Lines:      m.transcript[from:end],
		TotalItems: len(m.transcript),
		ScrollPos:  from,
	}

	status := "tab complete · ↑↓ select · enter run · pgup/pgdn scroll · ctrl+c quit"
	if m.busy {
		status = "running… ctrl+c cancels"
	}

	return layout.Render(sidebar, content, height) + "\n" +
		m.input.View() + "\n" +
		style.Muted(splitpanel.Fit(status, max(m.width, 1)))
}
