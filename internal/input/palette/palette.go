package palette

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dshills/scribe/internal/input/fuzzy"
)

const (
	candidateCacheTTL     = 30 * time.Second
	candidateCacheCleanup = time.Minute
)

// Registry holds the commands offered by the palette in registration order.
type Registry struct {
	mu       sync.RWMutex
	commands []*Command
	index    map[string]int
	revision uint64
	cache    *cache.Cache

	// onChange callbacks are called when commands are added/removed.
	onChange []func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
		cache: cache.New(candidateCacheTTL, candidateCacheCleanup),
	}
}

// Register adds a command to the registry.
// A command with an existing ID replaces it in place, keeping its position.
func (r *Registry) Register(cmd *Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if i, exists := r.index[cmd.ID]; exists {
		r.commands[i] = cmd
	} else {
		r.index[cmd.ID] = len(r.commands)
		r.commands = append(r.commands, cmd)
	}
	r.revision++
	r.mu.Unlock()

	r.notifyChange()
	return nil
}

// RegisterAll adds multiple commands to the registry.
func (r *Registry) RegisterAll(commands []*Command) error {
	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes a command from the registry.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	i, exists := r.index[id]
	if exists {
		r.commands = append(r.commands[:i], r.commands[i+1:]...)
		delete(r.index, id)
		for j := i; j < len(r.commands); j++ {
			r.index[r.commands[j].ID] = j
		}
		r.revision++
	}
	r.mu.Unlock()

	if exists {
		r.notifyChange()
	}
	return exists
}

// Get retrieves a command by ID.
func (r *Registry) Get(id string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[id]; ok {
		return r.commands[i]
	}
	return nil
}

// List returns all registered commands in registration order.
func (r *Registry) List() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Revision increases on every registry change.
func (r *Registry) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// Candidates returns the inline-eligible commands matching query, best match
// first. Ties keep registration order.
func (r *Registry) Candidates(query string) []*Command {
	r.mu.RLock()
	key := strconv.FormatUint(r.revision, 10) + "\x00" + query
	r.mu.RUnlock()

	if cached, ok := r.cache.Get(key); ok {
		return clone(cached.([]*Command)) //nolint:errcheck // cache only holds []*Command
	}

	eligible := make([]*Command, 0, r.Count())
	for _, cmd := range r.List() {
		if cmd.InlineEligible() {
			eligible = append(eligible, cmd)
		}
	}

	ranked := fuzzy.Filter(query, eligible, func(c *Command) string { return c.Label })
	result := make([]*Command, len(ranked))
	for i, rk := range ranked {
		result[i] = rk.Item
	}

	r.cache.SetDefault(key, result)
	return clone(result)
}

// Categories returns the unique command categories in registration order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, cmd := range r.commands {
		if cmd.Category != "" && !seen[cmd.Category] {
			seen[cmd.Category] = true
			result = append(result, cmd.Category)
		}
	}
	return result
}

// OnChange registers a callback for command list changes.
// Callbacks run without the registry lock held.
func (r *Registry) OnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// notifyChange drops cached candidates and calls the change callbacks.
func (r *Registry) notifyChange() {
	r.cache.Flush()

	r.mu.RLock()
	callbacks := make([]func(), len(r.onChange))
	copy(callbacks, r.onChange)
	r.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
}

func clone(cmds []*Command) []*Command {
	out := make([]*Command, len(cmds))
	copy(out, cmds)
	return out
}
