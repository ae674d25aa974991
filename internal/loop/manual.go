package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by hand. Time only moves on Advance and idle
// callbacks only run on Flush.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	idle   []*source
}

type manualTimer struct {
	source
	due time.Duration
	seq int
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Idle(fn func()) Handle {
	s := &source{fn: fn}
	m.idle = append(m.idle, s)
	return s
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	m.seq++
	t := &manualTimer{source: source{fn: fn}, due: m.now + d, seq: m.seq}
	m.timers = append(m.timers, t)
	return t
}

// Now is the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Flush runs idle callbacks until none are left.
func (m *Manual) Flush() {
	for len(m.idle) > 0 {
		idle := m.idle
		m.idle = nil
		for _, s := range idle {
			s.fire()
		}
	}
}

// Advance moves time forward by d, firing due timers in order and flushing
// idle callbacks after each one.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		m.Flush()
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.due
		t.fire()
	}
	m.now = end
	m.Flush()
}

// Pending counts timers that have not fired or been canceled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (m *Manual) next(end time.Duration) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.canceled {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due == m.timers[j].due {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due < m.timers[j].due
	})
	if len(m.timers) == 0 || m.timers[0].due > end {
		return nil
	}
	return m.timers[0]
}
