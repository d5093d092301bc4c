package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/storage"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

const frame = 16 * time.Millisecond

// 240x68 cells is a 1920x1088 pixel world.
var testRuntime = core.RuntimeConfig{ScreenW: 240, ScreenH: 68, TickRate: 60}

type fakeCompleter struct {
	reply string
}

func (f fakeCompleter) Complete(_ context.Context, _ []chat.Message) (string, error) {
	return f.reply, nil
}

// blockingCompleter answers only when the request is cancelled.
type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ []chat.Message) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type harness struct {
	t   *testing.T
	m   Model
	now time.Time
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		m:   NewModel(config.Default(), profile.Default(), testRuntime, opts),
		now: time.Unix(9000, 0),
	}
	h.send(TickMsg(h.now))
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) tick() {
	h.now = h.now.Add(frame)
	h.send(TickMsg(h.now))
}

// breakAbout walks under the first box and jumps into it.
func (h *harness) breakAbout() {
	h.t.Helper()
	for h.m.Session().State().X < 120 {
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		h.tick()
	}
	for i := 0; i < 40; i++ {
		h.tick()
	}
	if x := h.m.Session().State().X; x <= 96 || x >= 272 {
		h.t.Fatalf("X = %v, expected the character under the about box", x)
	}
	for i := 0; i < 120 && h.m.panelID == world.BoxNone; i++ {
		h.send(tea.KeyMsg{Type: tea.KeyUp})
		h.tick()
	}
	if h.m.panelID != world.BoxAbout {
		h.t.Fatalf("panel = %v, expected about", h.m.panelID)
	}
}

func TestModelMovesOnKeyPress(t *testing.T) {
	h := newHarness(t, Options{})

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 10; i++ {
		h.tick()
	}
	if x := h.m.Session().State().X; x <= 0 {
		t.Errorf("X = %v after holding right, expected positive", x)
	}
}

func TestModelKeyHoldExpires(t *testing.T) {
	h := newHarness(t, Options{})

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 60; i++ {
		h.tick()
	}
	if vx := h.m.Session().State().VX; vx != 0 {
		t.Errorf("VX = %v one second after a single press, expected 0", vx)
	}
}

func TestModelPanelOpensAndCloses(t *testing.T) {
	h := newHarness(t, Options{})
	h.breakAbout()

	if !strings.Contains(h.m.View(), "About Me") {
		t.Error("panel view should show the section title")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.panelID != world.BoxNone || h.m.Session().PanelOpen() {
		t.Error("esc should close the panel")
	}
	h.tick()
	if !strings.Contains(h.m.View(), "SCORE 1") {
		t.Error("game view should show the score after closing the panel")
	}
}

func TestModelSoundToggle(t *testing.T) {
	h := newHarness(t, Options{})

	h.send(runeKey("m"))
	if !h.m.Session().SoundEnabled() {
		t.Fatal("sound toggles on the next tick, not on the key")
	}
	h.tick()
	if h.m.Session().SoundEnabled() {
		t.Error("sound should be off after m and a tick")
	}
	if !strings.Contains(h.m.View(), "sound off") {
		t.Error("status line should report the sound setting")
	}
}

func TestModelResize(t *testing.T) {
	h := newHarness(t, Options{})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	if h.m.screen.Width() != 100 || h.m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", h.m.screen.Width(), h.m.screen.Height())
	}
	if w := h.m.Session().World().Width; w <= 0 {
		t.Errorf("world width = %v after resize", w)
	}
}

func TestModelChat(t *testing.T) {
	cfg := config.Default()
	prof := profile.Default()
	assistant := chat.NewAssistant(fakeCompleter{reply: "Hello **there**"}, "system", profile.Greeting(prof, cfg.Chat.AssistantName))
	h := newHarness(t, Options{Assistant: assistant})

	h.send(runeKey("c"))
	if !h.m.chatOpen {
		t.Fatal("c should open the chat")
	}
	h.send(runeKey("h"))
	h.send(runeKey("i"))
	if got := h.m.input.Value(); got != "hi" {
		t.Fatalf("input = %q, expected hi", got)
	}

	if cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatal("enter should start a request")
	}
	if !h.m.waiting || h.m.pending != "hi" {
		t.Errorf("waiting = %v, pending = %q", h.m.waiting, h.m.pending)
	}
	if cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter while waiting should be ignored")
	}

	h.send(askCmd(h.m.ctx, assistant, "hi")())
	if h.m.waiting {
		t.Error("reply should end the wait")
	}
	if n := assistant.Conversation().Len(); n != 3 {
		t.Errorf("conversation length = %d, expected 3", n)
	}
	if !strings.Contains(h.m.View(), "there") {
		t.Error("chat view should show the reply")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.chatOpen {
		t.Error("esc should close the chat")
	}
}

// awaitReply runs cmd in the background and waits for its message.
func awaitReply(t *testing.T, cmd tea.Cmd, cancel func()) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	cancel()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("chat request still running after cancellation")
		return nil
	}
}

func TestModelQuitCancelsChat(t *testing.T) {
	assistant := chat.NewAssistant(blockingCompleter{}, "system", "hello")
	h := newHarness(t, Options{Assistant: assistant})

	cmd := askCmd(h.m.ctx, assistant, "hi")
	msg := awaitReply(t, cmd, func() { h.send(tea.KeyMsg{Type: tea.KeyCtrlC}) })
	reply, ok := msg.(chatReplyMsg)
	if !ok {
		t.Fatalf("message = %T, expected chatReplyMsg", msg)
	}
	if !strings.HasPrefix(reply.reply, "⚠️") {
		t.Errorf("reply = %q, expected a warning", reply.reply)
	}
}

func TestModelParentContextCancelsChat(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	defer cancel()
	assistant := chat.NewAssistant(blockingCompleter{}, "system", "hello")
	h := newHarness(t, Options{Assistant: assistant, Context: parent})

	msg := awaitReply(t, askCmd(h.m.ctx, assistant, "hi"), cancel)
	if _, ok := msg.(chatReplyMsg); !ok {
		t.Errorf("message = %T, expected chatReplyMsg", msg)
	}
	if h.m.ctx.Err() == nil {
		t.Error("model context should follow its parent")
	}
}

func TestModelChatDisabledWithoutAssistant(t *testing.T) {
	h := newHarness(t, Options{})
	h.send(runeKey("c"))
	if h.m.chatOpen {
		t.Error("chat should stay closed without an assistant")
	}
}

func TestModelQuitSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	h := newHarness(t, Options{Store: store})
	h.breakAbout()
	h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if h.m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
	h.send(tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Session != "local" || runs[0].Source != "tui" || runs[0].Score != 1 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestModelSnapshot(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, Options{SnapshotDir: dir})
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	matches, err := filepath.Glob(filepath.Join(dir, "portfolio_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("found %d snapshots, expected 1", len(matches))
	}
}
