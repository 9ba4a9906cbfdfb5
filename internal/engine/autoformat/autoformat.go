package autoformat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/engine/surface"
)

// Kind distinguishes block and inline rewrites.
type Kind uint8

const (
	KindBlock Kind = iota + 1
	KindInline
)

// Rewrite describes a shorthand that fired.
type Rewrite struct {
	Kind Kind
	Rule string
	// Consumed is the number of shorthand characters removed from the unit.
	Consumed int
}

// Autoformatter watches surface changes and rewrites shorthand.
type Autoformatter struct {
	surface   surface.Surface
	guard     *surface.Guard
	blocks    []BlockRule
	inlines   []InlineRule
	logger    *zap.Logger
	onRewrite func(Rewrite)
}

// Option configures an Autoformatter.
type Option func(*Autoformatter)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Autoformatter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithBlockRules replaces the block rules.
func WithBlockRules(rules ...BlockRule) Option {
	return func(a *Autoformatter) { a.blocks = rules }
}

// WithInlineRules replaces the inline rules. Order is precedence.
func WithInlineRules(rules ...InlineRule) Option {
	return func(a *Autoformatter) { a.inlines = rules }
}

// OnRewrite registers fn to run after every rewrite, once the guard is
// released.
func OnRewrite(fn func(Rewrite)) Option {
	return func(a *Autoformatter) { a.onRewrite = fn }
}

// New creates an Autoformatter over s. The guard is shared with every other
// component that mutates s. A nil guard gets a private one.
func New(s surface.Surface, guard *surface.Guard, opts ...Option) *Autoformatter {
	if guard == nil {
		guard = &surface.Guard{}
	}
	a := &Autoformatter{
		surface: s,
		guard:   guard,
		blocks:  DefaultBlockRules(),
		inlines: DefaultInlineRules(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HandleChange inspects the surface after an edit and applies at most one
// shorthand. It does nothing while the guard is held, when the selection is
// not collapsed, or when the caret is outside a text unit.
func (a *Autoformatter) HandleChange() (Rewrite, bool) {
	var (
		rw    Rewrite
		fired bool
	)
	if !a.guard.Do(func() { rw, fired = a.rewrite() }) {
		return Rewrite{}, false
	}
	if fired && a.onRewrite != nil {
		a.onRewrite(rw)
	}
	return rw, fired
}

func (a *Autoformatter) rewrite() (Rewrite, bool) {
	c, ok := a.surface.Caret()
	if !ok || !c.Collapsed || c.Unit == nil || !c.Unit.Attached() {
		return Rewrite{}, false
	}
	runes := []rune(c.Unit.Text())
	if c.Offset < 0 || c.Offset > len(runes) {
		return Rewrite{}, false
	}
	before := runes[:c.Offset]

	for _, rule := range a.blocks {
		m := rule.Pattern.FindStringSubmatch(string(before))
		if m == nil {
			continue
		}
		if err := a.applyBlock(c, rule, m); err != nil {
			a.logger.Warn("block shorthand failed", zap.String("rule", rule.Name), zap.Error(err))
			return Rewrite{}, false
		}
		a.logger.Debug("block shorthand applied", zap.String("rule", rule.Name))
		return Rewrite{Kind: KindBlock, Rule: rule.Name, Consumed: c.Offset}, true
	}

	for _, rule := range a.inlines {
		delim := []rune(rule.Delimiter)
		open, ok := findSpan(before, delim)
		if !ok {
			continue
		}
		if err := a.applyInline(c, rule, open, len(delim)); err != nil {
			a.logger.Warn("inline shorthand failed", zap.String("rule", rule.Name), zap.Error(err))
			return Rewrite{}, false
		}
		a.logger.Debug("inline shorthand applied", zap.String("rule", rule.Name))
		return Rewrite{Kind: KindInline, Rule: rule.Name, Consumed: 2 * len(delim)}, true
	}
	return Rewrite{}, false
}

func (a *Autoformatter) applyBlock(c surface.Caret, rule BlockRule, m []string) error {
	if err := a.surface.ReplaceText(c.Unit, 0, c.Offset, ""); err != nil {
		return fmt.Errorf("consume prefix: %w", err)
	}
	if err := a.surface.MoveCaret(c.Unit, 0); err != nil {
		return fmt.Errorf("move caret: %w", err)
	}
	if err := a.surface.Apply(rule.Command, rule.value(m)); err != nil {
		return fmt.Errorf("apply %s: %w", rule.Command, err)
	}
	return nil
}

func (a *Autoformatter) applyInline(c surface.Caret, rule InlineRule, open, d int) error {
	unit := c.Unit
	closing := c.Offset - d
	interior := closing - (open + d)

	if err := a.surface.ReplaceText(unit, closing, c.Offset, ""); err != nil {
		return fmt.Errorf("consume closing delimiter: %w", err)
	}
	if err := a.surface.ReplaceText(unit, open, open+d, ""); err != nil {
		return fmt.Errorf("consume opening delimiter: %w", err)
	}
	if err := a.surface.Select(unit, open, open+interior); err != nil {
		return fmt.Errorf("select span: %w", err)
	}
	if err := a.surface.Apply(rule.Command, ""); err != nil {
		return fmt.Errorf("apply %s: %w", rule.Command, err)
	}

	// Formatting may move the span into a new unit; the focus marks its end.
	if after, ok := a.surface.Caret(); ok && after.Unit != nil && after.Unit.Attached() {
		return a.surface.MoveCaret(after.Unit, after.Offset)
	}
	return a.surface.MoveCaret(unit, open+interior)
}
