// Package chat is the terminal front end of EagleChat.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eaglechat/eaglechat/internal/model/chat"
	chatService "github.com/eaglechat/eaglechat/internal/service/chat"
)

// inputHeight covers the status line and the text input.
const inputHeight = 3

// replyMsg carries the resolved bot message back into the update loop.
type replyMsg struct {
	message chat.Message
}

// Model is the Bubble Tea model wrapping a chat controller.
type Model struct {
	ctx        context.Context
	controller *chatService.Controller
	renderer   Renderer
	now        func() time.Time

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
	status string
}

// Option configures the Model.
type Option func(*Model)

// WithRenderer sets the markdown renderer for bot messages.
func WithRenderer(r Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithClock sets the reference time used for date labels.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the chat view. ctx bounds every gateway call it starts.
func New(ctx context.Context, controller *chatService.Controller, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Ask a legal question"
	input.Prompt = "› "
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		controller: controller,
		renderer:   plainRenderer{},
		now:        time.Now,
		input:      input,
		spinner:    sp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - inputHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.controller.Reset()
			m.status = "New conversation"
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		m.status = ""
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.controller.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	exchange, err := m.controller.Start(m.input.Value())
	if err != nil {
		m.status = "Please wait for the current reply"
		return m, nil
	}
	if exchange == nil {
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.refresh()
	return m, tea.Batch(resolve(m.ctx, exchange), m.spinner.Tick)
}

func resolve(ctx context.Context, exchange *chatService.Exchange) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{message: exchange.Resolve(ctx)}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(RenderTranscript(m.controller.Groups(m.now()), m.width, m.renderer))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting EagleChat…"
	}

	status := m.status
	if m.controller.Loading() {
		status = m.spinner.View() + " EagleChat is thinking…"
	}

	return m.viewport.View() + "\n" + statusStyle.Render(status) + "\n" + m.input.View()
}
