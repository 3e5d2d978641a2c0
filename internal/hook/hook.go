// Package hook implements named filter and action lists that plugins subscribe to.
package hook

import (
	"sort"
	"sync"

	"github.com/eq-toolbox/eq-toolbox/internal/request"
)

// Hook names used by the host.
const (
	// AdminInit runs once before the first admin screen is served.
	AdminInit = "admin_init"
	// EnqueueScripts runs on every front end page before the head is printed.
	EnqueueScripts = "enqueue_scripts"
	// TheContent filters the body of a post before it is printed.
	TheContent = "the_content"
)

// DefaultPriority is the priority used by most subscribers. Lower runs first.
const DefaultPriority = 10

// Filter transforms value for the given request.
type Filter func(value string, req *request.Context) string

// Action reacts to an event of the given request.
type Action func(req *request.Context)

type entry[T any] struct {
	priority int
	fn       T
}

// Registry holds the subscribers of every hook.
// Subscribers with equal priority run in registration order.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]entry[Filter]
	actions map[string][]entry[Action]
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		filters: make(map[string][]entry[Filter]),
		actions: make(map[string][]entry[Action]),
	}
}

func insert[T any](list []entry[T], e entry[T]) []entry[T] {
	list = append(list, e)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].priority < list[j].priority
	})

	return list
}

// AddFilter subscribes fn to the filter name.
func (r *Registry) AddFilter(name string, priority int, fn Filter) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters[name] = insert(r.filters[name], entry[Filter]{priority: priority, fn: fn})
}

// AddAction subscribes fn to the action name.
func (r *Registry) AddAction(name string, priority int, fn Action) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[name] = insert(r.actions[name], entry[Action]{priority: priority, fn: fn})
}

// HasFilter reports whether name has subscribers.
func (r *Registry) HasFilter(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters[name]) > 0
}

// HasAction reports whether name has subscribers.
func (r *Registry) HasAction(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions[name]) > 0
}

// ApplyFilters passes value through every subscriber of name and returns the result.
func (r *Registry) ApplyFilters(name, value string, req *request.Context) string {
	r.mu.RLock()
	list := r.filters[name]
	r.mu.RUnlock()

	for _, e := range list {
		value = e.fn(value, req)
	}

	return value
}

// DoAction calls every subscriber of name.
func (r *Registry) DoAction(name string, req *request.Context) {
	r.mu.RLock()
	list := r.actions[name]
	r.mu.RUnlock()

	for _, e := range list {
		e.fn(req)
	}
}
