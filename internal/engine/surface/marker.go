package surface

// Marker records a character offset inside a text unit.
//
// A marker does not observe the surface. It goes stale when its unit detaches
// or the offset drifts outside the unit, and staleness is only noticed when the
// marker is next read.
type Marker struct {
	Unit   TextUnit
	Offset int
}

// NewMarker creates a marker at offset in unit.
func NewMarker(unit TextUnit, offset int) *Marker {
	return &Marker{Unit: unit, Offset: offset}
}

// Valid reports whether the unit is attached and the offset lies in
// [0, Len(unit)].
func (m *Marker) Valid() bool {
	if m == nil || m.Unit == nil || !m.Unit.Attached() {
		return false
	}
	return m.Offset >= 0 && m.Offset <= Len(m.Unit)
}

// RuneAt returns the character at the marker. ok is false for a stale marker
// or one positioned at the end of its unit.
func (m *Marker) RuneAt() (r rune, ok bool) {
	if !m.Valid() {
		return 0, false
	}
	runes := []rune(m.Unit.Text())
	if m.Offset >= len(runes) {
		return 0, false
	}
	return runes[m.Offset], true
}
