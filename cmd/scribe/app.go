package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/engine/document"
	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/event"
	"github.com/dshills/scribe/internal/input/key"
	"github.com/dshills/scribe/internal/input/palette"
	"github.com/dshills/scribe/internal/logging"
	"github.com/dshills/scribe/internal/renderer"
	"github.com/dshills/scribe/internal/renderer/core"
	"github.com/dshills/scribe/internal/renderer/statusline"
	"github.com/dshills/scribe/internal/sanitize"
	"github.com/dshills/scribe/internal/store"
)

// app is the terminal front end around one editor.
type app struct {
	screen tcell.Screen
	logger *zap.Logger
	store  store.Store
	doc    *document.Document
	ed     *editor.Editor
	render *renderer.Renderer
	status *statusline.StatusLine
	quit   bool
}

func newApp(opts Options) (*app, error) {
	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(opts.ConfigPath))
	}
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return nil, err
	}

	// The screen owns the terminal; only file logging is possible.
	cfg.Log.Console = false
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	a := &app{
		logger: logger,
		store:  st,
		doc:    document.New(),
		render: renderer.New(renderer.WithMenuSize(cfg.Editor.MenuWidth, cfg.Editor.MenuHeight)),
	}
	a.status = statusline.New(a.render.Theme())

	id := opts.DocumentID
	if id == "" {
		id = store.NewID()
	}
	if err := a.loadContent(id, opts.ImportPath); err != nil {
		_ = st.Close()
		return nil, err
	}
	a.status.SetName(id)

	bus := event.NewBus()
	a.subscribe(bus)

	reg := palette.NewRegistry()
	if err := registerCommands(reg, &a.ed, logger.Named("commands")); err != nil {
		_ = st.Close()
		return nil, err
	}
	a.ed = editor.New(a.doc, reg,
		editor.WithConfig(cfg.Editor),
		editor.WithLogger(logger.Named("editor")),
		editor.WithBus(bus),
		editor.WithPersister(st),
		editor.WithDocumentID(id),
	)
	return a, nil
}

func (a *app) loadContent(id, importPath string) error {
	if importPath != "" {
		data, err := os.ReadFile(importPath)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		return a.doc.Load(sanitize.Prepare(string(data)))
	}
	saved, err := a.store.Load(context.Background(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	return a.doc.Load(saved.Content)
}

func (a *app) subscribe(bus *event.Bus) {
	subs := map[event.Topic]event.HandlerFunc{
		event.TopicBufferChanged: func(context.Context, event.Topic, any) error {
			a.status.SetModified(true)
			return nil
		},
		event.TopicDocumentSaved: func(context.Context, event.Topic, any) error {
			a.status.SetModified(false)
			a.status.SetMessage("saved", statusline.MessageInfo)
			return nil
		},
		event.TopicDocumentSaveFail: func(_ context.Context, _ event.Topic, p any) error {
			if saved, ok := p.(event.DocumentSaved); ok {
				a.status.SetMessage("save failed: "+saved.Err.Error(), statusline.MessageError)
			}
			return nil
		},
	}
	for topic, fn := range subs {
		if _, err := bus.Subscribe(topic, fn); err != nil {
			a.logger.Warn("subscribe", zap.String("topic", string(topic)), zap.Error(err))
		}
	}
}

// Run drives the terminal until the user quits.
func (a *app) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	a.screen = screen

	w, h := screen.Size()
	a.ed.SetViewport(w, h-1)

	for !a.quit {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			a.ed.SetViewport(w, h-1)
			screen.Sync()
		case *tcell.EventKey:
			a.handleKey(key.FromTcell(ev))
		case *tcell.EventMouse:
			a.handleClick(ev)
		case *tcell.EventFocus:
			if !ev.Focused {
				a.ed.Blur()
			}
		case nil:
			return nil
		}
	}
	return nil
}

func (a *app) handleClick(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	menu := a.ed.Menu()
	if !menu.IsOpen {
		return
	}
	col, row := ev.Position()
	if a.render.MenuRect(menu).Contains(core.ScreenPos{Row: row, Col: col}) {
		return
	}
	a.ed.ClickOutside()
}

func (a *app) handleKey(ev key.Event) {
	a.status.ClearMessage()
	if ev.IsRune() && ev.Modifiers.Has(key.ModCtrl) {
		switch unicode.ToLower(ev.Rune) {
		case 'q', 'c':
			a.quit = true
		case 's':
			_ = a.ed.Save(context.Background())
		case 'b':
			if err := a.ed.ToggleFormat(surface.FormatBold); err != nil {
				a.logger.Warn("toggle bold", zap.Error(err))
			}
		}
		return
	}
	a.ed.HandleKey(ev)
}

func (a *app) draw() {
	a.screen.Clear()
	pos, ok := a.render.Draw(a.screen, a.doc, a.ed.Menu())
	if ok {
		a.screen.ShowCursor(pos.Col, pos.Row)
		origin := a.doc.Origin()
		a.status.SetPosition(pos.Row-origin.Row, pos.Col-origin.Col)
	} else {
		a.screen.HideCursor()
	}
	a.status.SetFormats(a.ed.ActiveFormats())

	_, h := a.screen.Size()
	a.status.Render(a.screen, h-1)
	a.screen.Show()
}

// Close releases the store and flushes the log.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", zap.Error(err))
	}
	_ = a.logger.Sync()
}
