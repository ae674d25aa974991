package taskbar

import (
	"slices"
	"sort"
)

// TaskClass is a group of tasks sharing a classification key.
type TaskClass struct {
	key     string
	members []*Task

	// Derived from members on every refresh.
	visibleCount int
	visible      *Task
	displayName  string

	// timestamp is the creation timestamp of the first member.
	timestamp uint64

	// manual pins the collapsed state set from the menu.
	manual          bool
	manualCollapsed bool

	flash        flasher
	flashingTask *Task
}

func (c *TaskClass) Key() string {
	return c.key
}

func (c *TaskClass) urgent() bool {
	for _, t := range c.members {
		if t.urgency {
			return true
		}
	}
	return false
}

func (c *TaskClass) indexOf(t *Task) int {
	return slices.Index(c.members, t)
}

// classRegistry owns the classes, kept sorted by key.
type classRegistry struct {
	classes []*TaskClass
	byKey   map[string]*TaskClass
}

func newClassRegistry() classRegistry {
	return classRegistry{byKey: make(map[string]*TaskClass)}
}

func (r *classRegistry) get(key string) *TaskClass {
	return r.byKey[key]
}

func (r *classRegistry) getOrCreate(key string, timestamp uint64) *TaskClass {
	if c, ok := r.byKey[key]; ok {
		return c
	}

	c := &TaskClass{key: key, timestamp: timestamp}
	idx := sort.Search(len(r.classes), func(i int) bool { return r.classes[i].key >= key })
	r.classes = slices.Insert(r.classes, idx, c)
	r.byKey[key] = c
	return c
}

func (r *classRegistry) remove(c *TaskClass) {
	delete(r.byKey, c.key)
	r.classes = slices.DeleteFunc(r.classes, func(x *TaskClass) bool { return x == c })
}

func (r *classRegistry) all() []*TaskClass {
	return r.classes
}

func (r *classRegistry) len() int {
	return len(r.classes)
}
