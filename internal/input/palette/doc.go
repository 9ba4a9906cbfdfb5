// Package palette provides the command registry behind the inline command
// palette.
//
// Commands are registered once and listed in registration order. The palette
// only offers commands that are valid for a single item (context "single" or
// "any"), ranked by the fuzzy matcher against the typed filter:
//
//	r := palette.NewRegistry()
//	r.Register(&palette.Command{
//	    ID:       "task.new",
//	    Label:    "New Task",
//	    Category: "Create",
//	    Context:  palette.ContextAny,
//	    Action:   func() { createTask() },
//	})
//
//	cands := r.Candidates("nt")
//
// # Thread Safety
//
// Registry operations are safe for concurrent use. Candidate lists are cached
// per registry revision and filter text.
package palette
