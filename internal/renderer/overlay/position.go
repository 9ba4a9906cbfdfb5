package overlay

import "github.com/dshills/scribe/internal/renderer/core"

// Gap is the distance kept between a popup menu, its anchor and the viewport
// edges.
const Gap = 4

// Placement is the computed top-left corner of a popup menu.
type Placement struct {
	Top  int
	Left int
}

// Position places a menu of menuWidth x menuHeight next to anchor inside a
// viewport of viewportWidth x viewportHeight.
//
// The menu opens below the anchor and flips above it when it would overflow the
// bottom edge. It is shifted left when it would overflow the right edge.
func Position(anchor core.ScreenRect, menuWidth, menuHeight, viewportWidth, viewportHeight int) Placement {
	top := anchor.Bottom + Gap
	if top+menuHeight > viewportHeight {
		top = anchor.Top - menuHeight - Gap
	}
	if top < 0 {
		top = Gap
	}

	left := anchor.Left
	if left+menuWidth > viewportWidth {
		left = viewportWidth - menuWidth - Gap
	}
	if left < Gap {
		left = Gap
	}

	return Placement{Top: top, Left: left}
}
