package vtui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var teaSpecial = map[tea.KeyType]KeyCode{
	tea.KeyEnter:     Special(KeyEnter),
	tea.KeyBackspace: Special(KeyBackspace),
	tea.KeyTab:       Special(KeyTab),
	tea.KeyShiftTab:  Special(KeyBackTab),
	tea.KeyEsc:       Special(KeyEsc),
	tea.KeyUp:        Special(KeyUp),
	tea.KeyDown:      Special(KeyDown),
	tea.KeyLeft:      Special(KeyLeft),
	tea.KeyRight:     Special(KeyRight),
	tea.KeyHome:      Special(KeyHome),
	tea.KeyEnd:       Special(KeyEnd),
	tea.KeyPgUp:      Special(KeyPageUp),
	tea.KeyPgDown:    Special(KeyPageDown),
	tea.KeyDelete:    Special(KeyDelete),
	tea.KeyInsert:    Special(KeyInsert),
	tea.KeySpace:     Char(' '),
	tea.KeyF1:        Function(1),
	tea.KeyF2:        Function(2),
	tea.KeyF3:        Function(3),
	tea.KeyF4:        Function(4),
	tea.KeyF5:        Function(5),
	tea.KeyF6:        Function(6),
	tea.KeyF7:        Function(7),
	tea.KeyF8:        Function(8),
	tea.KeyF9:        Function(9),
	tea.KeyF10:       Function(10),
	tea.KeyF11:       Function(11),
	tea.KeyF12:       Function(12),
}

// translateKey converts a bubbletea key to key codes. Runes that arrive
// together come as one KeyMsg and become one KeyCode each.
func translateKey(k tea.KeyMsg) []KeyCode {
	if k.Type == tea.KeyRunes {
		out := make([]KeyCode, 0, len(k.Runes))
		for _, r := range k.Runes {
			kc := Char(r)
			kc.Alt = k.Alt
			out = append(out, kc)
		}
		return out
	}
	if kc, ok := teaSpecial[k.Type]; ok {
		kc.Alt = k.Alt
		return []KeyCode{kc}
	}
	// ctrl+letter and friends
	name := k.String()
	if rest, ok := strings.CutPrefix(name, "alt+"); ok {
		name = rest
	}
	if rest, ok := strings.CutPrefix(name, "ctrl+"); ok {
		if r, size := utf8.DecodeRuneInString(rest); size == len(rest) && r != utf8.RuneError {
			kc := Char(r)
			kc.Ctrl = true
			kc.Alt = k.Alt
			return []KeyCode{kc}
		}
	}
	return nil
}

// translate converts a bubbletea message into the events it carries.
func translate(msg tea.Msg) []any {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			return nil
		}
		var out []any
		for _, kc := range translateKey(msg) {
			out = append(out, KeyPress{Key: kc})
		}
		return out
	case tea.MouseMsg:
		if ev, ok := translateMouse(msg); ok {
			return []any{ev}
		}
	case tea.WindowSizeMsg:
		return []any{Resize{Width: msg.Width, Height: msg.Height}}
	}
	return nil
}

func translateMouse(m tea.MouseMsg) (any, bool) {
	switch m.Button {
	case tea.MouseButtonWheelUp:
		return MouseScroll{X: m.X, Y: m.Y, Direction: ScrollUp}, true
	case tea.MouseButtonWheelDown:
		return MouseScroll{X: m.X, Y: m.Y, Direction: ScrollDown}, true
	case tea.MouseButtonWheelLeft:
		return MouseScroll{X: m.X, Y: m.Y, Direction: ScrollLeft}, true
	case tea.MouseButtonWheelRight:
		return MouseScroll{X: m.X, Y: m.Y, Direction: ScrollRight}, true
	}

	var button MouseButton
	switch m.Button {
	case tea.MouseButtonLeft:
		button = MouseLeft
	case tea.MouseButtonRight:
		button = MouseRight
	case tea.MouseButtonMiddle:
		button = MouseMiddle
	case tea.MouseButtonNone:
		if m.Action == tea.MouseActionMotion {
			return MouseHover{X: m.X, Y: m.Y}, true
		}
		if m.Action == tea.MouseActionRelease {
			return MouseUp{X: m.X, Y: m.Y, Button: MouseLeft}, true
		}
		return nil, false
	default:
		return nil, false
	}

	switch m.Action {
	case tea.MouseActionPress:
		return MouseDown{X: m.X, Y: m.Y, Button: button}, true
	case tea.MouseActionRelease:
		return MouseUp{X: m.X, Y: m.Y, Button: button}, true
	case tea.MouseActionMotion:
		return MouseDrag{X: m.X, Y: m.Y, Button: button}, true
	}
	return nil, false
}

// TeaInput is a Producer that decodes terminal input with bubbletea and
// sends the resulting events to the runtime. bubbletea's renderer is
// disabled; pair it with a Screen for output.
type TeaInput struct {
	in   io.Reader
	prog *tea.Program
	done chan struct{}
}

// NewTeaInput returns a producer reading from in.
func NewTeaInput(in io.Reader) *TeaInput {
	return &TeaInput{in: in}
}

type teaForwarder struct {
	sink Sink
}

func (f teaForwarder) Init() tea.Cmd { return nil }

func (f teaForwarder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	for _, ev := range translate(msg) {
		if err := f.sink.Send(ev); err != nil {
			return f, tea.Quit
		}
	}
	return f, nil
}

func (f teaForwarder) View() string { return "" }

// Start begins reading input.
func (t *TeaInput) Start(sink Sink) {
	t.prog = tea.NewProgram(teaForwarder{sink: sink},
		tea.WithInput(t.in),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		if _, err := t.prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logger.Printf("input: %v", err)
		}
	}()
}

// Stop stops reading input and waits for the reader to finish.
func (t *TeaInput) Stop() {
	if t.prog == nil {
		return
	}
	t.prog.Kill()
	<-t.done
	t.prog = nil
}

// busMsg carries an event from the runtime's bus into bubbletea.
type busMsg struct {
	event any
}

// TeaModel runs a tree inside a bubbletea program: bubbletea owns the
// terminal and the frame loop, the tree handles events and draws into View.
type TeaModel struct {
	rt   *Runtime
	buf  *Buffer
	quit key.Binding
}

// NewTeaModel mounts root for use as a bubbletea model. Events sent to
// Sink are delivered alongside terminal input.
func NewTeaModel(root Descriptor, cfg Config) *TeaModel {
	return &TeaModel{
		rt:  NewRuntime(root, cfg),
		buf: NewBuffer(0, 0),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// Runtime returns the runtime the model drives.
func (m *TeaModel) Runtime() *Runtime {
	return m.rt
}

// Sink returns a handle for sending events from other goroutines.
func (m *TeaModel) Sink() Sink {
	return m.rt.Sink()
}

func (m *TeaModel) waitBus() tea.Cmd {
	return func() tea.Msg {
		ev, err := m.rt.bus.Recv(context.Background())
		if err != nil {
			return nil
		}
		return busMsg{event: ev}
	}
}

func (m *TeaModel) Init() tea.Cmd {
	return m.waitBus()
}

func (m *TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			m.rt.Close()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.buf.Resize(msg.Width, msg.Height)
	case busMsg:
		m.rt.Dispatch(msg.event)
		cmd = m.waitBus()
	}

	for _, ev := range translate(msg) {
		if m.rt.ShouldExit() {
			break
		}
		m.rt.Dispatch(ev)
	}
	if m.rt.ShouldExit() {
		m.rt.Close()
		return m, tea.Quit
	}
	return m, cmd
}

func (m *TeaModel) View() string {
	m.rt.Draw(m.buf)
	return m.buf.Render()
}

// RunTea runs root as a bubbletea program until a listener requests
// shutdown, ctrl+c is pressed or ctx is cancelled.
func RunTea(ctx context.Context, root Descriptor, cfg Config, opts ...tea.ProgramOption) error {
	if cfg.DebugLog != "" {
		closer, err := openDebugLog(cfg.DebugLog)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer func() {
			SetLogOutput(nil)
			closer.Close()
		}()
	}

	m := NewTeaModel(root, cfg)
	defer m.rt.Close()

	base := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		base = append(base, tea.WithAltScreen())
	}
	switch cfg.Mouse {
	case MouseAll:
		base = append(base, tea.WithMouseAllMotion())
	case MouseCell:
		base = append(base, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(m, append(base, opts...)...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running bubbletea program: %w", err)
	}
	return nil
}
