package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/input/palette"
)

// registerCommands fills reg with the palette commands of the terminal
// editor. The actions resolve ed when they run.
func registerCommands(reg *palette.Registry, ed **editor.Editor, logger *zap.Logger) error {
	toggle := func(f surface.Format) func() {
		return func() {
			if err := (*ed).ToggleFormat(f); err != nil {
				logger.Warn("toggle format", zap.Stringer("format", f), zap.Error(err))
			}
		}
	}

	return reg.RegisterAll([]*palette.Command{
		{ID: "format.h1", Label: "Heading 1", Icon: "H1", Category: "Format", Action: toggle(surface.FormatHeading1)},
		{ID: "format.h2", Label: "Heading 2", Icon: "H2", Category: "Format", Action: toggle(surface.FormatHeading2)},
		{ID: "format.h3", Label: "Heading 3", Icon: "H3", Category: "Format", Action: toggle(surface.FormatHeading3)},
		{ID: "format.bullets", Label: "Bulleted List", Icon: "•", Category: "Format", Action: toggle(surface.FormatBulletedList)},
		{ID: "format.numbers", Label: "Numbered List", Icon: "1.", Category: "Format", Action: toggle(surface.FormatNumberedList)},
		{ID: "format.bold", Label: "Bold", Shortcut: "^B", Category: "Format", Action: toggle(surface.FormatBold)},
		{ID: "format.italic", Label: "Italic", Category: "Format", Action: toggle(surface.FormatItalic)},
		{ID: "format.strike", Label: "Strikethrough", Category: "Format", Action: toggle(surface.FormatStrikethrough)},
		{ID: "insert.date", Label: "Insert Date", Category: "Insert", Action: func() {
			buf := (*ed).Buffer()
			if err := buf.InsertText(time.Now().Format(time.DateOnly)); err != nil {
				logger.Warn("insert date", zap.Error(err))
			}
		}},
		{ID: "document.save", Label: "Save Document", Shortcut: "^S", Category: "Document", Action: func() {
			// Failures are published on the bus.
			_ = (*ed).Save(context.Background())
		}},
	})
}
