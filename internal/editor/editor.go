package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/engine/autoformat"
	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/event"
	"github.com/dshills/scribe/internal/input/key"
	"github.com/dshills/scribe/internal/input/trigger"
	"github.com/dshills/scribe/internal/sanitize"
	"github.com/dshills/scribe/internal/store"
)

// Errors returned by the editor.
var (
	ErrSaveFailed    = errors.New("save failed")
	ErrNoPersister   = errors.New("no persister configured")
	ErrUnknownFormat = errors.New("unknown format")
)

// Mutation sources reported in event.BufferChanged.
const (
	SourceInput      = "input"
	SourceAutoformat = "autoformat"
	SourcePalette    = "palette"
	SourceToolbar    = "toolbar"
)

// Buffer is an editable surface that accepts typed input.
type Buffer interface {
	surface.Surface

	InsertText(text string) error
	Backspace() error
	SplitBlock() error
	MoveLeft()
	MoveRight()
	Home()
	End()
}

// Editor binds a buffer to the palette, the autoformatter and persistence.
// It is not safe for concurrent use.
type Editor struct {
	buf        Buffer
	source     trigger.CandidateSource
	guard      surface.Guard
	machine    *trigger.Machine
	auto       *autoformat.Autoformatter
	bus        *event.Bus
	persister  store.Persister
	logger     *zap.Logger
	documentID string
	cfg        config.EditorConfig
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBus sets the bus engine events are published on.
func WithBus(b *event.Bus) Option {
	return func(e *Editor) { e.bus = b }
}

// WithPersister sets where Save writes.
func WithPersister(p store.Persister) Option {
	return func(e *Editor) { e.persister = p }
}

// WithDocumentID sets the ID the buffer is saved under.
func WithDocumentID(id string) Option {
	return func(e *Editor) { e.documentID = id }
}

// WithConfig applies the editor section of the configuration.
func WithConfig(cfg config.EditorConfig) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// New creates an editor over buf offering commands from source.
func New(buf Buffer, source trigger.CandidateSource, opts ...Option) *Editor {
	e := &Editor{
		buf:    buf,
		source: source,
		logger: zap.NewNop(),
		cfg:    config.Default().Editor,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.documentID == "" {
		e.documentID = store.NewID()
	}

	e.machine = trigger.New(buf, source, &e.guard,
		trigger.WithLogger(e.logger.Named("palette")),
		trigger.WithTrigger(e.cfg.TriggerRune()),
		trigger.WithMenuSize(e.cfg.MenuWidth, e.cfg.MenuHeight),
		trigger.WithViewport(e.cfg.ViewportWidth, e.cfg.ViewportHeight),
		trigger.OnOpen(e.paletteOpened),
		trigger.OnClose(e.paletteClosed),
		trigger.OnCommit(e.commandCommitted),
	)

	afOpts := []autoformat.Option{
		autoformat.WithLogger(e.logger.Named("autoformat")),
		autoformat.OnRewrite(e.rewritten),
	}
	if !e.cfg.BlockShorthand {
		afOpts = append(afOpts, autoformat.WithBlockRules())
	}
	if !e.cfg.InlineShorthand {
		afOpts = append(afOpts, autoformat.WithInlineRules())
	}
	e.auto = autoformat.New(buf, &e.guard, afOpts...)
	return e
}

// DocumentID returns the ID the buffer is saved under.
func (e *Editor) DocumentID() string {
	return e.documentID
}

// Buffer returns the edited buffer.
func (e *Editor) Buffer() Buffer {
	return e.buf
}

// Menu returns the palette state for rendering.
func (e *Editor) Menu() trigger.MenuState {
	return e.machine.State()
}

// SetViewport updates the viewport the palette is placed within.
func (e *Editor) SetViewport(width, height int) {
	e.machine.SetViewport(width, height)
}

// HandleKey routes ev through the palette and then into the buffer.
// It reports whether the key was used.
func (e *Editor) HandleKey(ev key.Event) bool {
	if e.machine.HandleKey(ev) {
		return true
	}

	if e.move(ev) {
		// Only the caret moved; the palette still follows it.
		e.machine.AfterInput()
		return true
	}

	edited, err := e.apply(ev)
	if err != nil {
		e.logger.Warn("key edit failed", zap.Stringer("key", ev), zap.Error(err))
		return true
	}
	if !edited {
		return false
	}
	e.Changed(SourceInput)
	return true
}

// Changed runs the post-input pipeline after the buffer was edited outside
// the engine, such as by typing or pasting on the host surface.
func (e *Editor) Changed(source string) {
	e.machine.AfterInput()
	e.publishChange(source)
	if _, ok := e.auto.HandleChange(); ok {
		// The rewrite may have moved text out from under an open palette.
		e.machine.AfterInput()
	}
}

func (e *Editor) apply(ev key.Event) (bool, error) {
	switch {
	case ev.IsChar():
		return true, e.buf.InsertText(string(ev.Rune))
	case ev.Is(key.KeyEnter):
		return true, e.buf.SplitBlock()
	case ev.Is(key.KeyBackspace):
		return true, e.buf.Backspace()
	default:
		return false, nil
	}
}

func (e *Editor) move(ev key.Event) bool {
	switch {
	case ev.Is(key.KeyLeft):
		e.buf.MoveLeft()
	case ev.Is(key.KeyRight):
		e.buf.MoveRight()
	case ev.Is(key.KeyHome):
		e.buf.Home()
	case ev.Is(key.KeyEnd):
		e.buf.End()
	default:
		return false
	}
	return true
}

// Blur closes the palette because the surface lost focus.
func (e *Editor) Blur() {
	e.machine.Dismiss(trigger.ReasonBlur)
}

// ClickOutside closes the palette because of a click elsewhere.
func (e *Editor) ClickOutside() {
	e.machine.Dismiss(trigger.ReasonClickOutside)
}

// ActiveFormats returns the formats active at the caret.
func (e *Editor) ActiveFormats() []surface.Format {
	return surface.ActiveFormats(e.buf)
}

// ToggleFormat toggles f at the caret, as a toolbar button would.
func (e *Editor) ToggleFormat(f surface.Format) error {
	cmd, value, err := e.formatCommand(f)
	if err != nil {
		return err
	}
	var applyErr error
	if !e.guard.Do(func() { applyErr = e.buf.Apply(cmd, value) }) {
		return nil
	}
	if applyErr != nil {
		return fmt.Errorf("toggle %s: %w", f, applyErr)
	}
	e.publishChange(SourceToolbar)
	e.machine.AfterInput()
	return nil
}

func (e *Editor) formatCommand(f surface.Format) (surface.FormatCommand, string, error) {
	switch f {
	case surface.FormatBold:
		return surface.CmdBold, "", nil
	case surface.FormatItalic:
		return surface.CmdItalic, "", nil
	case surface.FormatStrikethrough:
		return surface.CmdStrikethrough, "", nil
	case surface.FormatHeading1, surface.FormatHeading2, surface.FormatHeading3:
		if e.buf.IsActive(f) {
			return surface.CmdFormatBlock, surface.BlockParagraph, nil
		}
		return surface.CmdFormatBlock, f.String(), nil
	case surface.FormatBulletedList:
		return surface.CmdInsertUnorderedList, "", nil
	case surface.FormatNumberedList:
		return surface.CmdInsertOrderedList, "", nil
	default:
		return "", "", fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
}

// Save sanitizes the buffer's markup and hands it to the persister.
// The buffer is left untouched whether or not the save succeeds.
func (e *Editor) Save(ctx context.Context) error {
	if e.persister == nil {
		return ErrNoPersister
	}
	content := sanitize.Sanitize(e.buf.Markup())

	if err := e.persister.Save(ctx, e.documentID, content); err != nil {
		e.logger.Warn("save failed", zap.String("document", e.documentID), zap.Error(err))
		e.publish(ctx, event.TopicDocumentSaveFail, event.DocumentSaved{
			DocumentID: e.documentID,
			Content:    content,
			Err:        err,
		})
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	e.logger.Debug("document saved", zap.String("document", e.documentID), zap.Int("bytes", len(content)))
	e.publish(ctx, event.TopicDocumentSaved, event.DocumentSaved{
		DocumentID: e.documentID,
		Content:    content,
	})
	return nil
}

func (e *Editor) rewritten(rw autoformat.Rewrite) {
	e.logger.Debug("shorthand applied", zap.String("rule", rw.Rule), zap.Int("consumed", rw.Consumed))
	e.publishChange(SourceAutoformat)
}

func (e *Editor) paletteOpened(s trigger.MenuState) {
	e.publish(context.Background(), event.TopicPaletteOpened, event.PaletteChanged{FilterText: s.FilterText})
}

func (e *Editor) paletteClosed(reason trigger.CloseReason) {
	e.publish(context.Background(), event.TopicPaletteClosed, event.PaletteChanged{Reason: string(reason)})
}

func (e *Editor) commandCommitted(c trigger.Commit) {
	e.logger.Debug("command committed", zap.String("command", c.Command.ID))
	e.publish(context.Background(), event.TopicPaletteCommitted, event.CommandCommitted{
		CommandID: c.Command.ID,
		Removed:   c.Removed,
	})
	e.publishChange(SourcePalette)
}

func (e *Editor) publishChange(source string) {
	if e.bus == nil {
		return
	}
	e.publish(context.Background(), event.TopicBufferChanged, event.BufferChanged{
		Source: source,
		Markup: e.buf.Markup(),
	})
}

func (e *Editor) publish(ctx context.Context, topic event.Topic, payload any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, topic, payload); err != nil {
		e.logger.Warn("event handler failed", zap.String("topic", string(topic)), zap.Error(err))
	}
}
