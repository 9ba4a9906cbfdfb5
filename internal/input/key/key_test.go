package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestModifierBits(t *testing.T) {
	assert.Equal(t, Modifier(1), ModShift)
	assert.Equal(t, Modifier(2), ModCtrl)
	assert.Equal(t, Modifier(4), ModAlt)
	assert.Equal(t, Modifier(8), ModMeta)
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, NewRuneEvent('\\').IsChar())
	assert.False(t, Event{Key: KeyRune, Rune: 's', Modifiers: ModCtrl}.IsChar())
	assert.True(t, NewSpecialEvent(KeyEnter, ModNone).Is(KeyEnter))
	assert.False(t, NewSpecialEvent(KeyEnter, ModCtrl).Is(KeyEnter))
	assert.True(t, NewSpecialEvent(KeyTab, ModShift).Is(KeyTab))
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a'), "a"},
		{NewRuneEvent(' '), "Space"},
		{Event{Key: KeyRune, Rune: 's', Modifiers: ModCtrl}, "Ctrl+s"},
		{NewSpecialEvent(KeyEscape, ModNone), "Escape"},
		{NewSpecialEvent(KeyDown, ModAlt), "Alt+Down"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, '\\', tcell.ModNone), Event{Key: KeyRune, Rune: '\\'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), Event{Key: KeyRune, Rune: 'A'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Event{Key: KeyEnter}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Key: KeyEscape}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Event{Key: KeyDown}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), Event{Key: KeyTab, Modifiers: ModShift}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTcell(tt.ev))
		})
	}
}
