package taskbar

type TaskSnapshot struct {
	Window    Window `json:"window"`
	Name      string `json:"name"`
	Label     string `json:"label"`
	Class     string `json:"class,omitempty"`
	Desktop   int    `json:"desktop"`
	Focused   bool   `json:"focused"`
	Iconified bool   `json:"iconified"`
	Maximized bool   `json:"maximized"`
	Urgency   bool   `json:"urgency"`
	Visible   bool   `json:"visible"`
	Icon      string `json:"icon"`
	Timestamp uint64 `json:"timestamp"`
}

type ClassSnapshot struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"display_name"`
	Members      []Window `json:"members"`
	VisibleCount int      `json:"visible_count"`
	Visible      Window   `json:"visible,omitempty"`
	Collapsed    bool     `json:"collapsed"`
	Flashing     bool     `json:"flashing"`
	Timestamp    uint64   `json:"timestamp"`
}

type GridSnapshot struct {
	Rows        int `json:"rows"`
	Columns     int `json:"columns"`
	ChildWidth  int `json:"child_width"`
	ChildHeight int `json:"child_height"`
}

// Snapshot is a read only view of a taskbar.
type Snapshot struct {
	ID             string          `json:"id"`
	CurrentDesktop int             `json:"current_desktop"`
	DesktopCount   int             `json:"desktop_count"`
	Focused        Window          `json:"focused,omitempty"`
	GroupBy        string          `json:"group_by"`
	SortBy         string          `json:"sort_by"`
	Tasks          []TaskSnapshot  `json:"tasks"`
	Classes        []ClassSnapshot `json:"classes"`
	Grid           GridSnapshot    `json:"grid"`
}

func (tb *Taskbar) Snapshot() Snapshot {
	s := Snapshot{
		ID:             tb.id,
		CurrentDesktop: tb.currentDesktop,
		DesktopCount:   tb.desktopCount,
		GroupBy:        tb.cfg.GroupBy.String(),
		SortBy:         tb.cfg.SortBy.String(),
		Tasks:          []TaskSnapshot{},
		Classes:        []ClassSnapshot{},
	}
	if tb.focused != nil {
		s.Focused = tb.focused.window
	}
	if tb.grid != nil {
		w, h := tb.grid.ChildSize()
		s.Grid = GridSnapshot{Rows: tb.grid.Rows(), Columns: tb.grid.Columns(), ChildWidth: w, ChildHeight: h}
	}

	for _, t := range tb.order {
		s.Tasks = append(s.Tasks, TaskSnapshot{
			Window:    t.window,
			Name:      t.name,
			Label:     t.rendered.Label,
			Class:     t.classKey,
			Desktop:   t.desktop,
			Focused:   t.focused,
			Iconified: t.iconified,
			Maximized: t.maximized,
			Urgency:   t.urgency,
			Visible:   tb.grid.Visible(t.widget),
			Icon:      t.iconSource.String(),
			Timestamp: t.timestamp,
		})
	}

	for _, c := range tb.classes.all() {
		cs := ClassSnapshot{
			Key:          c.key,
			DisplayName:  c.displayName,
			VisibleCount: c.visibleCount,
			Collapsed:    tb.collapsed(c),
			Flashing:     c.flash.running(),
			Timestamp:    c.timestamp,
		}
		for _, t := range c.members {
			cs.Members = append(cs.Members, t.window)
		}
		if c.visible != nil {
			cs.Visible = c.visible.window
		}
		s.Classes = append(s.Classes, cs)
	}

	return s
}
