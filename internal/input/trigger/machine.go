package trigger

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/input/key"
	"github.com/dshills/scribe/internal/input/palette"
	"github.com/dshills/scribe/internal/renderer/overlay"
)

// ErrStaleMarker is returned when a commit finds the trigger gone.
var ErrStaleMarker = errors.New("palette marker is stale")

// Default menu and viewport sizes in cells.
const (
	DefaultMenuWidth      = 32
	DefaultMenuHeight     = 10
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 24
)

// Machine is the palette state machine. It is not safe for concurrent use.
type Machine struct {
	surface surface.Surface
	source  CandidateSource
	guard   *surface.Guard
	logger  *zap.Logger

	trigger        rune
	menuWidth      int
	menuHeight     int
	viewportWidth  int
	viewportHeight int

	state   MenuState
	pending bool

	onOpen   func(MenuState)
	onClose  func(CloseReason)
	onCommit func(Commit)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTrigger sets the trigger character.
func WithTrigger(r rune) Option {
	return func(m *Machine) { m.trigger = r }
}

// WithMenuSize sets the rendered menu size used for placement.
func WithMenuSize(width, height int) Option {
	return func(m *Machine) {
		m.menuWidth = width
		m.menuHeight = height
	}
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(m *Machine) {
		m.viewportWidth = width
		m.viewportHeight = height
	}
}

// OnOpen registers fn to run when the palette opens.
func OnOpen(fn func(MenuState)) Option {
	return func(m *Machine) { m.onOpen = fn }
}

// OnClose registers fn to run when the palette closes, commit included.
func OnClose(fn func(CloseReason)) Option {
	return func(m *Machine) { m.onClose = fn }
}

// OnCommit registers fn to run after a committed command's action.
func OnCommit(fn func(Commit)) Option {
	return func(m *Machine) { m.onCommit = fn }
}

// New creates a closed machine over s. The guard is shared with every other
// component that mutates s. A nil guard gets a private one.
func New(s surface.Surface, source CandidateSource, guard *surface.Guard, opts ...Option) *Machine {
	if guard == nil {
		guard = &surface.Guard{}
	}
	m := &Machine{
		surface:        s,
		source:         source,
		guard:          guard,
		logger:         zap.NewNop(),
		trigger:        DefaultTrigger,
		menuWidth:      DefaultMenuWidth,
		menuHeight:     DefaultMenuHeight,
		viewportWidth:  DefaultViewportWidth,
		viewportHeight: DefaultViewportHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the menu state.
func (m *Machine) State() MenuState {
	s := m.state
	s.Candidates = append(s.Candidates[:0:0], m.state.Candidates...)
	return s
}

// Candidates returns the commands currently offered, best first.
func (m *Machine) Candidates() []*palette.Command {
	return append([]*palette.Command(nil), m.state.Candidates...)
}

// IsOpen reports whether the palette is open.
func (m *Machine) IsOpen() bool {
	return m.state.IsOpen
}

// SetViewport updates the viewport size and repositions an open menu.
func (m *Machine) SetViewport(width, height int) {
	m.viewportWidth = width
	m.viewportHeight = height
	if m.state.IsOpen {
		m.reposition()
	}
}

// HandleKey runs before a key reaches the surface. It reports whether the
// key was consumed. The trigger character is never consumed; it only arms
// detection for the next AfterInput.
func (m *Machine) HandleKey(ev key.Event) bool {
	if !m.state.IsOpen {
		if ev.IsRune() && ev.Rune == m.trigger {
			m.pending = true
		}
		return false
	}

	switch ev.Key {
	case key.KeyUp:
		m.move(-1)
		return true
	case key.KeyDown:
		m.move(1)
		return true
	case key.KeyEnter, key.KeyTab:
		m.Commit()
		return true
	case key.KeyEscape:
		m.close(ReasonEscape)
		return true
	}
	return false
}

// AfterInput runs once an input event has been applied to the surface. It
// opens the palette after a trigger keystroke and keeps an open palette in
// sync with the buffer. Changes made under the guard are ignored.
func (m *Machine) AfterInput() {
	if m.guard.Held() {
		return
	}
	if m.pending {
		m.pending = false
		if !m.state.IsOpen {
			m.open()
			return
		}
	}
	if m.state.IsOpen {
		m.refresh()
	}
}

// Dismiss closes an open palette without touching the buffer. It reports
// whether the palette was open.
func (m *Machine) Dismiss(reason CloseReason) bool {
	if !m.state.IsOpen {
		return false
	}
	m.close(reason)
	return true
}

// Highlight moves the highlight to index i, clamped to the candidates.
func (m *Machine) Highlight(i int) {
	if !m.state.IsOpen {
		return
	}
	m.state.SelectedIndex = max(0, min(i, len(m.state.Candidates)-1))
}

// Commit runs the highlighted command. The trigger and filter text are
// removed, the caret returns to the trigger's offset and the palette closes
// before the action runs. It reports whether a command ran.
func (m *Machine) Commit() bool {
	cmd := m.state.Selected()
	if cmd == nil {
		return false
	}
	mk := m.state.Marker
	filter := m.state.FilterText

	var (
		removed string
		err     error
	)
	ran := m.guard.Do(func() {
		removed, err = m.removeSpan(mk, filter)
	})
	if !ran {
		return false
	}
	if err != nil {
		m.logger.Warn("palette commit failed", zap.String("command", cmd.ID), zap.Error(err))
		m.close(ReasonStaleMarker)
		return false
	}

	offset := mk.Offset
	m.close(ReasonCommit)
	m.logger.Debug("palette command committed", zap.String("command", cmd.ID))
	cmd.Run()
	if m.onCommit != nil {
		m.onCommit(Commit{Command: cmd, Removed: removed, Offset: offset})
	}
	return true
}

func (m *Machine) removeSpan(mk *surface.Marker, filter string) (string, error) {
	if r, ok := mk.RuneAt(); !ok || r != m.trigger {
		return "", ErrStaleMarker
	}
	runes := []rune(mk.Unit.Text())
	end := mk.Offset + 1 + utf8.RuneCountInString(filter)
	if end > len(runes) || string(runes[mk.Offset+1:end]) != filter {
		return "", ErrStaleMarker
	}
	removed := string(runes[mk.Offset:end])
	if err := m.surface.ReplaceText(mk.Unit, mk.Offset, end, ""); err != nil {
		return "", fmt.Errorf("remove trigger span: %w", err)
	}
	if err := m.surface.MoveCaret(mk.Unit, mk.Offset); err != nil {
		return "", fmt.Errorf("restore caret: %w", err)
	}
	return removed, nil
}

func (m *Machine) open() {
	c, ok := m.surface.Caret()
	if !ok || c.Unit == nil || c.Offset < 1 {
		return
	}
	runes := []rune(c.Unit.Text())
	if c.Offset > len(runes) || runes[c.Offset-1] != m.trigger {
		m.logger.Debug("trigger not before caret, staying closed")
		return
	}

	m.state = MenuState{
		IsOpen: true,
		Marker: surface.NewMarker(c.Unit, c.Offset-1),
	}
	m.state.Candidates = m.source.Candidates("")
	m.reposition()
	m.logger.Debug("palette opened", zap.Int("offset", c.Offset-1))
	if m.onOpen != nil {
		m.onOpen(m.State())
	}
}

func (m *Machine) refresh() {
	mk := m.state.Marker
	if r, ok := mk.RuneAt(); !ok || r != m.trigger {
		m.close(ReasonStaleMarker)
		return
	}
	c, ok := m.surface.Caret()
	if !ok || !surface.SameUnit(c.Unit, mk.Unit) || c.Offset <= mk.Offset {
		m.close(ReasonCaretMoved)
		return
	}
	runes := []rune(c.Unit.Text())
	if c.Offset > len(runes) {
		m.close(ReasonStaleMarker)
		return
	}
	filter := string(runes[mk.Offset+1 : c.Offset])
	if strings.ContainsAny(filter, " \n\r") {
		m.close(ReasonWhitespace)
		return
	}

	m.state.FilterText = filter
	m.state.SelectedIndex = 0
	m.state.Candidates = m.source.Candidates(filter)
	m.reposition()
}

func (m *Machine) move(delta int) {
	n := len(m.state.Candidates)
	if n == 0 {
		m.state.SelectedIndex = 0
		return
	}
	m.state.SelectedIndex = ((m.state.SelectedIndex+delta)%n + n) % n
}

func (m *Machine) reposition() {
	rect, ok := m.surface.CaretRect()
	if !ok {
		return
	}
	m.state.Position = overlay.Position(rect, m.menuWidth, m.menuHeight, m.viewportWidth, m.viewportHeight)
}

func (m *Machine) close(reason CloseReason) {
	m.state = MenuState{}
	m.pending = false
	m.logger.Debug("palette closed", zap.String("reason", string(reason)))
	if m.onClose != nil {
		m.onClose(reason)
	}
}
