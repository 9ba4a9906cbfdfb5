package surface

// Guard suppresses change handling while the engine mutates the surface.
//
// The editing model is single-threaded, so a plain flag is enough. Guard is
// not safe for concurrent use.
type Guard struct {
	held bool
}

// Held reports whether a mutation is in flight.
func (g *Guard) Held() bool {
	return g.held
}

// Do runs fn with the guard held. It returns false without running fn when
// the guard is already held. The guard is released on every exit path of fn,
// including panics.
func (g *Guard) Do(fn func()) bool {
	if g.held {
		return false
	}
	g.held = true
	defer func() { g.held = false }()
	fn()
	return true
}
