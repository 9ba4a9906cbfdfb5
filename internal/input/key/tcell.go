package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event.
//
// tcell reports Ctrl+letter as dedicated keys; those come back as the letter
// rune with ModCtrl set.
func FromTcell(ev *tcell.EventKey) Event {
	mods := convertMod(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return Event{Key: KeyRune, Rune: ev.Rune(), Modifiers: mods &^ ModShift}
	case tcell.KeyEscape:
		return Event{Key: KeyEscape, Modifiers: mods}
	case tcell.KeyEnter:
		return Event{Key: KeyEnter, Modifiers: mods}
	case tcell.KeyTab:
		return Event{Key: KeyTab, Modifiers: mods}
	case tcell.KeyBacktab:
		return Event{Key: KeyTab, Modifiers: mods | ModShift}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: KeyBackspace, Modifiers: mods}
	case tcell.KeyDelete:
		return Event{Key: KeyDelete, Modifiers: mods}
	case tcell.KeyHome:
		return Event{Key: KeyHome, Modifiers: mods}
	case tcell.KeyEnd:
		return Event{Key: KeyEnd, Modifiers: mods}
	case tcell.KeyUp:
		return Event{Key: KeyUp, Modifiers: mods}
	case tcell.KeyDown:
		return Event{Key: KeyDown, Modifiers: mods}
	case tcell.KeyLeft:
		return Event{Key: KeyLeft, Modifiers: mods}
	case tcell.KeyRight:
		return Event{Key: KeyRight, Modifiers: mods}
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return Event{Key: KeyRune, Rune: rune('a' + (k - tcell.KeyCtrlA)), Modifiers: mods | ModCtrl}
		}
		return Event{Key: KeyNone, Modifiers: mods}
	}
}

func convertMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= ModMeta
	}
	return mods
}
