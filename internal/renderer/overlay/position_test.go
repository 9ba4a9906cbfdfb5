package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/scribe/internal/renderer/core"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name   string
		anchor core.ScreenRect
		menuW  int
		menuH  int
		vpW    int
		vpH    int
		want   Placement
	}{
		{
			name:   "below anchor",
			anchor: core.NewScreenRect(10, 20, 12, 21),
			menuW:  30, menuH: 10, vpW: 200, vpH: 100,
			want: Placement{Top: 16, Left: 20},
		},
		{
			name:   "flips above when bottom overflows",
			anchor: core.NewScreenRect(80, 20, 82, 21),
			menuW:  30, menuH: 20, vpW: 200, vpH: 100,
			want: Placement{Top: 56, Left: 20},
		},
		{
			name:   "negative top after flip clamps to gap",
			anchor: core.NewScreenRect(5, 20, 7, 21),
			menuW:  30, menuH: 95, vpW: 200, vpH: 100,
			want: Placement{Top: Gap, Left: 20},
		},
		{
			name:   "shifts left when right edge overflows",
			anchor: core.NewScreenRect(10, 190, 12, 191),
			menuW:  30, menuH: 10, vpW: 200, vpH: 100,
			want: Placement{Top: 16, Left: 166},
		},
		{
			name:   "left clamps to gap when menu wider than viewport",
			anchor: core.NewScreenRect(10, 10, 12, 11),
			menuW:  300, menuH: 10, vpW: 200, vpH: 100,
			want: Placement{Top: 16, Left: Gap},
		},
		{
			name:   "anchor at left edge clamps to gap",
			anchor: core.NewScreenRect(0, 0, 1, 1),
			menuW:  30, menuH: 10, vpW: 200, vpH: 100,
			want: Placement{Top: 5, Left: Gap},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Position(tt.anchor, tt.menuW, tt.menuH, tt.vpW, tt.vpH)
			assert.Equal(t, tt.want, got)
		})
	}
}
