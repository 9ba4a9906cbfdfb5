package event

// BufferChanged is published after every engine-driven mutation.
type BufferChanged struct {
	// Source names the component that mutated the surface
	// ("autoformat", "palette", "toolbar").
	Source string
	// Markup is the surface content after the mutation.
	Markup string
}

// PaletteChanged is published when the palette opens or closes.
type PaletteChanged struct {
	FilterText string
	// Reason explains a close ("escape", "blur", "stale-marker", ...).
	Reason string
}

// CommandCommitted is published after a palette command ran.
type CommandCommitted struct {
	CommandID string
	// Removed is the trigger character plus filter text deleted from the buffer.
	Removed string
}

// DocumentSaved is published after a save attempt.
type DocumentSaved struct {
	DocumentID string
	Content    string
	Err        error
}
