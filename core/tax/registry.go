package tax

import (
	"sort"
	"sync"

	"tax-dashboard/internal/errors"
)

// Registry holds named schedules. Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	schedules   map[string]Schedule
	defaultName string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		schedules: make(map[string]Schedule),
	}
}

// NewRegistryWith creates a registry holding the given schedules.
// The first schedule becomes the default.
func NewRegistryWith(schedules ...Schedule) (*Registry, error) {
	r := NewRegistry()
	for _, s := range schedules {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates and adds a schedule
func (r *Registry) Register(s Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[s.Name]; exists {
		return errors.InvalidInputf("schedule already registered: %s", s.Name)
	}

	r.schedules[s.Name] = s
	if r.defaultName == "" {
		r.defaultName = s.Name
	}
	return nil
}

// Get returns a schedule by name
func (r *Registry) Get(name string) (Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[name]
	if !ok {
		return Schedule{}, errors.NotFound("schedule", name)
	}
	return s, nil
}

// Resolve returns the named schedule, or the default when name is empty
func (r *Registry) Resolve(name string) (Schedule, error) {
	if name == "" {
		r.mu.RLock()
		name = r.defaultName
		r.mu.RUnlock()
		if name == "" {
			return Schedule{}, errors.NotFound("schedule", "default")
		}
	}
	return r.Get(name)
}

// Pair resolves the two sides of a comparison. An empty base falls back to
// the default schedule and an empty proposed to the "proposed" schedule.
func (r *Registry) Pair(base, proposed string) (Schedule, Schedule, error) {
	b, err := r.Resolve(base)
	if err != nil {
		if base == "" {
			return Schedule{}, Schedule{}, errors.InvalidInput("base schedule is required: no default schedule is registered")
		}
		return Schedule{}, Schedule{}, err
	}

	if proposed == "" {
		p, err := r.Get(ScheduleProposed)
		if err != nil {
			return Schedule{}, Schedule{}, errors.InvalidInputf("proposed schedule is required: no %q schedule is registered", ScheduleProposed)
		}
		return b, p, nil
	}
	p, err := r.Get(proposed)
	if err != nil {
		return Schedule{}, Schedule{}, err
	}
	return b, p, nil
}

// SetDefault selects the schedule used when none is named
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schedules[name]; !ok {
		return errors.NotFound("schedule", name)
	}
	r.defaultName = name
	return nil
}

// Default returns the default schedule name
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Names returns the registered schedule names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schedules))
	for name := range r.schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered schedule, sorted by name
func (r *Registry) All() []Schedule {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Schedule, 0, len(names))
	for _, name := range names {
		if s, ok := r.schedules[name]; ok {
			out = append(out, s)
		}
	}
	return out
}
