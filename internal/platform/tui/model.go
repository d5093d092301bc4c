package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-portfolio/internal/assets"
	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/export"
	"github.com/vovakirdan/tui-portfolio/internal/game"
	"github.com/vovakirdan/tui-portfolio/internal/markup"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/storage"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

const statusDuration = 3 * time.Second

// Options wires optional services into a Model.
type Options struct {
	Store     *storage.Store  // nil disables run history
	Assistant *chat.Assistant // nil disables the chat
	Logger    *log.Logger

	// Session and Source label the saved run ("local"/"tui", user/"ssh").
	Session string
	Source  string

	// SnapshotDir receives Ctrl+S snapshots; empty means ~/.portfolio/snapshots.
	SnapshotDir string

	// Bell receives a BEL on break cues; nil keeps the game silent.
	Bell io.Writer

	// Clipboard enables Ctrl+Y. Off for remote sessions, where the
	// clipboard would be the server's.
	Clipboard bool

	// Context bounds chat requests, e.g. the SSH session's context.
	// Requests are also cancelled when the model quits.
	Context context.Context
}

// chatReplyMsg carries the assistant's answer back to the update loop.
type chatReplyMsg struct {
	reply string
}

// Model is the Bubble Tea model for the portfolio game.
type Model struct {
	session *game.Session
	screen  *core.Screen
	config  core.RuntimeConfig
	opts    Options
	keys    *KeyMapper
	actions core.InputFrame // non-movement actions applied on the next tick
	now     time.Time

	ctx    context.Context
	cancel context.CancelFunc

	panel   viewport.Model
	panelID world.BoxID

	chatOpen bool
	waiting  bool
	pending  string
	input    textinput.Model
	history  viewport.Model
	spinner  spinner.Model

	status      string
	statusUntil time.Time
	quitting    bool
	saved       bool
}

// NewModel creates a model for a terminal of rc.ScreenW x rc.ScreenH cells.
func NewModel(cfg config.Config, prof profile.Profile, rc core.RuntimeConfig, opts Options) Model {
	rc = rc.Normalize()
	if opts.Session == "" {
		opts.Session = "local"
	}
	if opts.Source == "" {
		opts.Source = "tui"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	w, h := pixelSize(rc, cfg.World)
	ti := textinput.New()
	ti.Placeholder = "Ask about " + prof.FirstName() + "..."
	ti.CharLimit = 500
	ti.Prompt = "› "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		session: game.NewSession(cfg, prof, w, h, time.Now()),
		screen:  core.NewScreen(rc.ScreenW, rc.ScreenH),
		config:  rc,
		opts:    opts,
		keys:    NewKeyMapper(),
		actions: core.NewInputFrame(),
		ctx:     ctx,
		cancel:  cancel,
		panel:   viewport.New(0, 0),
		history: viewport.New(0, 0),
		input:   ti,
		spinner: sp,
	}
	m.layout()
	return m
}

func pixelSize(rc core.RuntimeConfig, wc config.WorldConfig) (int, int) {
	return int(float64(rc.ScreenW) * wc.CellWidth), int(float64(rc.ScreenH) * wc.CellHeight)
}

// layout sizes the panel and chat widgets for the current terminal.
func (m *Model) layout() {
	m.panel.Width = core.Clamp(m.config.ScreenW-6, 10, 76)
	m.panel.Height = core.Clamp(m.config.ScreenH-8, 3, 24)
	m.history.Width = core.Max(10, m.config.ScreenW)
	m.history.Height = core.Max(3, m.config.ScreenH-4)
	m.input.Width = core.Max(10, m.config.ScreenW-4)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.chatOpen {
			return m.handleChatKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case chatReplyMsg:
		m.waiting = false
		m.pending = ""
		m.input.Focus()
		m.refreshChat()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// clock returns the time of the last frame so key holds line up with the
// simulation clock.
func (m Model) clock() time.Time {
	if m.now.IsZero() {
		return time.Now()
	}
	return m.now
}

// handleKey processes keyboard input while the game has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		return m.quit()
	case core.ActionSnapshot:
		m.saveSnapshot()
		return m, nil
	case core.ActionCopy:
		m.copyPanel()
		return m, nil
	case core.ActionChat:
		if m.opts.Assistant != nil {
			m.chatOpen = true
			m.refreshChat()
			return m, m.input.Focus()
		}
		return m, nil
	}

	if m.panelID != world.BoxNone {
		switch action {
		case core.ActionBack, core.ActionConfirm:
			m.session.ClosePanel()
			m.panelID = world.BoxNone
			return m, nil
		}
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}

	switch {
	case action.IsMovement():
		m.session.Input().Press(msg.String(), m.clock())
	case action == core.ActionSound, action == core.ActionRestart:
		m.actions.Set(action)
	}
	return m, nil
}

// handleChatKey processes keyboard input while the chat has focus.
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapChatKey(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionBack:
		m.chatOpen = false
		m.input.Blur()
		return m, nil
	case core.ActionCopy:
		if reply, ok := m.opts.Assistant.Conversation().Last(chat.RoleAssistant); ok {
			m.copyText(reply.Content, "reply")
		}
		return m, nil
	case core.ActionConfirm:
		question := strings.TrimSpace(m.input.Value())
		if question == "" || m.waiting {
			return m, nil
		}
		m.input.Reset()
		m.input.Blur()
		m.waiting = true
		m.pending = question
		m.refreshChat()
		return m, tea.Batch(askCmd(m.ctx, m.opts.Assistant, question), m.spinner.Tick)
	}

	var cmd tea.Cmd
	switch msg.String() {
	case "pgup", "pgdown", "up", "down":
		m.history, cmd = m.history.Update(msg)
	default:
		if !m.waiting {
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, cmd
}

func askCmd(ctx context.Context, a *chat.Assistant, question string) tea.Cmd {
	return func() tea.Msg {
		reply, _ := a.Ask(ctx, question)
		return chatReplyMsg{reply: reply}
	}
}

func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		io.WriteString(w, "\a")
		return nil
	}
}

// handleResize processes window resize events. The world is rebuilt for
// the new size; the character keeps its position where it still fits.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.session.Resize(pixelSize(m.config, m.session.Config().World))
	m.layout()
	if m.panelID != world.BoxNone {
		m.panelID = world.BoxNone
		m.syncPanel()
	}
	if m.chatOpen {
		m.refreshChat()
	}
	return m, nil
}

// handleTick advances one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now

	if m.actions.Has(core.ActionRestart) {
		m.session.Restart()
	}
	if m.actions.Has(core.ActionSound) {
		if m.session.ToggleSound() {
			m.setStatus("sound on")
		} else {
			m.setStatus("sound off")
		}
	}
	m.actions.Clear()

	_, cues := m.session.Tick(now)
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	for _, c := range cues {
		// Terminals have no music; only the break sound maps to the bell.
		if c.Sound == assets.SoundBreak && m.opts.Bell != nil {
			cmds = append(cmds, bellCmd(m.opts.Bell))
		}
	}
	m.syncPanel()

	return m, tea.Batch(cmds...)
}

// syncPanel follows the session's active box: a newly broken box loads its
// section, a restored one closes the panel.
func (m *Model) syncPanel() {
	sec, ok := m.session.Panel()
	if !ok {
		m.panelID = world.BoxNone
		return
	}
	if sec.ID == m.panelID {
		return
	}
	m.panelID = sec.ID
	body := RenderMarkup(markup.Render(sec.Body))
	m.panel.SetContent(lipgloss.NewStyle().Width(m.panel.Width).Render(body))
	m.panel.GotoTop()
}

// refreshChat redraws the conversation into the history viewport.
func (m *Model) refreshChat() {
	if m.opts.Assistant == nil {
		return
	}
	name := m.session.Config().Chat.AssistantName
	wrap := lipgloss.NewStyle().Width(m.history.Width)

	var blocks []string
	for _, msg := range m.opts.Assistant.Conversation().Messages() {
		switch msg.Role {
		case chat.RoleUser:
			blocks = append(blocks, userLabel.Render("You")+"\n"+wrap.Render(msg.Content))
		case chat.RoleAssistant:
			blocks = append(blocks, assistantLabel.Render(name)+"\n"+wrap.Render(RenderMarkup(markup.Render(msg.Content))))
		}
	}
	if m.pending != "" {
		blocks = append(blocks, userLabel.Render("You")+"\n"+wrap.Render(m.pending))
	}
	m.history.SetContent(strings.Join(blocks, "\n\n"))
	m.history.GotoBottom()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.clock().Add(statusDuration)
}

// copyPanel copies the open section, or the contact details when no panel
// is open.
func (m *Model) copyPanel() {
	id := m.panelID
	if id == world.BoxNone {
		id = world.BoxContact
	}
	sec, ok := m.session.Profile().Section(id)
	if !ok {
		return
	}
	m.copyText(markup.PlainText(markup.Render(sec.Body)), strings.ToLower(sec.Title))
}

func (m *Model) copyText(text, what string) {
	if !m.opts.Clipboard {
		m.setStatus("clipboard unavailable in this session")
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.opts.Logger.Debug("clipboard write failed", "error", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("copied " + what)
}

// saveSnapshot saves the current world as a PNG.
func (m *Model) saveSnapshot() {
	dir := m.opts.SnapshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".portfolio", "snapshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create snapshot directory", "error", err)
		m.setStatus("snapshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("portfolio_%s.png", timestamp))
	v := m.session.View()
	if err := export.SavePNG(path, v.World, v.State, v.Physics, export.Options{}); err != nil {
		m.opts.Logger.Warn("snapshot failed", "error", err)
		m.setStatus("snapshot failed")
		return
	}
	m.setStatus("saved " + path)
}

// quit records the run once, cancels chat requests in flight and stops
// the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	m.saveRun()
	return m, tea.Quit
}

func (m *Model) saveRun() {
	if m.saved || m.opts.Store == nil {
		return
	}
	m.saved = true
	stats := m.session.Stats()
	if stats.Score == 0 {
		return
	}
	if _, err := m.opts.Store.SaveRun(stats.Record(m.opts.Session, m.opts.Source)); err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
}

// Session returns the underlying game session.
func (m Model) Session() *game.Session {
	return m.session
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.chatOpen {
		return m.chatView()
	}
	if m.panelID != world.BoxNone {
		return m.panelView()
	}

	game.Render(m.screen, m.session.View())
	if m.status != "" && m.clock().Before(m.statusUntil) {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)
	panelTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func (m Model) panelView() string {
	sec, _ := m.session.Panel()
	box := panelBorder.Render(lipgloss.JoinVertical(lipgloss.Left,
		panelTitle.Render(sec.Title),
		"",
		m.panel.View(),
		"",
		helpStyle.Render("esc close · ↑/↓ scroll · c chat · ctrl+y copy"),
	))
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) chatView() string {
	name := m.session.Config().Chat.AssistantName
	header := panelTitle.Render(fmt.Sprintf("%s · ask about %s", name, m.session.Profile().FirstName()))

	footer := m.input.View()
	if m.waiting {
		footer = m.spinner.View() + " thinking..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.history.View(),
		footer,
		helpStyle.Render("enter send · esc back to the game · ctrl+y copy reply"),
	)
}

// Run starts the Bubble Tea program for a local terminal.
func Run(cfg config.Config, prof profile.Profile, rc core.RuntimeConfig, opts Options) error {
	model := NewModel(cfg, prof, rc, opts)
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
