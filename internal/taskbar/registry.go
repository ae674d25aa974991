package taskbar

import (
	"fmt"
	"slices"

	"github.com/ItsNotGoodName/waterline/internal/bus"
)

// Changed is broadcast after a batch of changes to a taskbar.
type Changed struct {
	TaskbarID string `json:"taskbar_id"`
}

// Registry is the process wide set of taskbars. Window system notifications
// enter through it and are handed to every taskbar. It belongs to the loop
// like the taskbars themselves, only Changed may be used from anywhere.
type Registry struct {
	taskbars []*Taskbar
	changed  *bus.Hub[Changed]
}

func NewRegistry() *Registry {
	return &Registry{
		changed: bus.NewHub[Changed](),
	}
}

func (r *Registry) Changed() *bus.Hub[Changed] {
	return r.changed
}

func (r *Registry) add(tb *Taskbar) {
	if slices.Contains(r.taskbars, tb) {
		return
	}
	r.taskbars = append(r.taskbars, tb)
}

func (r *Registry) remove(tb *Taskbar) {
	r.taskbars = slices.DeleteFunc(r.taskbars, func(x *Taskbar) bool { return x == tb })
}

func (r *Registry) Taskbars() []*Taskbar {
	return slices.Clone(r.taskbars)
}

func (r *Registry) Get(id string) (*Taskbar, error) {
	for _, tb := range r.taskbars {
		if tb.id == id {
			return tb, nil
		}
	}
	return nil, fmt.Errorf("taskbar %q: %w", id, ErrNotFound)
}

func (r *Registry) HandleRootProperty(p Property) {
	for _, tb := range r.Taskbars() {
		tb.HandleRootProperty(p)
	}
}

func (r *Registry) HandleWindowProperty(w Window, p Property, deleted bool) {
	for _, tb := range r.Taskbars() {
		tb.HandleWindowProperty(w, p, deleted)
	}
}
