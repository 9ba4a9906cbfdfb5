package palette

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by registry operations.
var (
	ErrNilCommand     = errors.New("command cannot be nil")
	ErrEmptyID        = errors.New("command ID cannot be empty")
	ErrEmptyLabel     = errors.New("command label cannot be empty")
	ErrInvalidContext = errors.New("invalid command context")
)

// Context describes the selection cardinality a command is valid for.
type Context uint8

const (
	// ContextAny is valid regardless of selection.
	ContextAny Context = iota
	// ContextSingle is valid for a single item.
	ContextSingle
	// ContextMulti is valid for multiple items.
	ContextMulti
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextAny:
		return "any"
	case ContextSingle:
		return "single"
	case ContextMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// ParseContext parses a context name.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "":
		return ContextAny, nil
	case "single":
		return ContextSingle, nil
	case "multi":
		return ContextMulti, nil
	default:
		return ContextAny, fmt.Errorf("%w: %q", ErrInvalidContext, s)
	}
}

// Command is an action that can be invoked from the palette.
type Command struct {
	// ID is the unique command identifier (e.g., "task.new").
	ID string

	// Label is the display name matched against the filter.
	Label string

	// Icon references the icon shown next to the label.
	Icon string

	// Shortcut shows the keyboard shortcut (for display only).
	Shortcut string

	// Category groups related commands (e.g., "Create", "Format").
	Category string

	// Action runs the command.
	Action func()

	// Context is the selection cardinality the command applies to.
	Context Context
}

// Validate checks the command's required fields.
func (c *Command) Validate() error {
	if c == nil {
		return ErrNilCommand
	}
	if c.ID == "" {
		return ErrEmptyID
	}
	if c.Label == "" {
		return fmt.Errorf("command %q: %w", c.ID, ErrEmptyLabel)
	}
	if c.Context > ContextMulti {
		return fmt.Errorf("command %q: %w", c.ID, ErrInvalidContext)
	}
	return nil
}

// Run invokes the command's action. A command without an action does nothing.
func (c *Command) Run() {
	if c.Action != nil {
		c.Action()
	}
}

// InlineEligible reports whether the command may be offered by the inline
// palette, which always acts on a single item.
func (c *Command) InlineEligible() bool {
	return c.Context == ContextAny || c.Context == ContextSingle
}
