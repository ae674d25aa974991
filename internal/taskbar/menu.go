package taskbar

import (
	"fmt"
	"strconv"
	"strings"
)

type MenuItemKind int

const (
	MenuAction MenuItemKind = iota
	MenuSeparator
	MenuSubmenu
)

func (k MenuItemKind) String() string {
	switch k {
	case MenuSeparator:
		return "separator"
	case MenuSubmenu:
		return "submenu"
	default:
		return "action"
	}
}

func (k MenuItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type MenuItem struct {
	ID      string       `json:"id,omitempty"`
	Label   string       `json:"label,omitempty"`
	Kind    MenuItemKind `json:"kind"`
	Enabled bool         `json:"enabled"`
	Visible bool         `json:"visible"`
	Items   []MenuItem   `json:"items,omitempty"`
}

// Menu is the context menu of one task.
type Menu struct {
	Window Window     `json:"window"`
	Items  []MenuItem `json:"items"`
}

// Find returns the item with id, searching submenus.
func (m Menu) Find(id string) (MenuItem, bool) {
	return findItem(m.Items, id)
}

func findItem(items []MenuItem, id string) (MenuItem, bool) {
	for _, item := range items {
		if item.ID == id && item.Kind == MenuAction {
			return item, true
		}
		if found, ok := findItem(item.Items, id); ok {
			return found, true
		}
	}
	return MenuItem{}, false
}

const (
	MenuRaise      = "raise"
	MenuRestore    = "restore"
	MenuMaximize   = "maximize"
	MenuIconify    = "iconify"
	MenuClose      = "close"
	MenuUngroup    = "ungroup"
	MenuResetGroup = "reset_group"
	MenuExpand     = "expand"
	MenuShrink     = "shrink"

	menuDesktop    = "desktop/"
	menuDesktopAll = "desktop/all"
	menuGroup      = "group/"
	menuWindow     = "window/"
)

func action(id, label string, visible, enabled bool) MenuItem {
	return MenuItem{ID: id, Label: label, Kind: MenuAction, Visible: visible, Enabled: enabled}
}

func separator() MenuItem {
	return MenuItem{Kind: MenuSeparator, Visible: true, Enabled: true}
}

// Menu builds the context menu of w. A collapsed class gets the menu of its
// representative plus a list of its windows.
func (tb *Taskbar) Menu(w Window) (Menu, error) {
	t := tb.tasks[w]
	if t == nil {
		return Menu{}, fmt.Errorf("window %s: %w", w, ErrNotFound)
	}
	return tb.buildMenu(t), nil
}

func (tb *Taskbar) buildMenu(t *Task) Menu {
	c := tb.classOf(t)
	collapsed := c != nil && tb.collapsed(c)
	if collapsed && c.visible != nil {
		t = c.visible
	}

	var items []MenuItem

	if collapsed {
		for _, m := range c.members {
			items = append(items, action(menuWindow+strconv.FormatUint(uint64(m.window), 10), m.label(), true, !m.focused))
		}
		items = append(items, separator())
	}

	items = append(items,
		action(MenuRaise, "Raise", !t.iconified, true),
		action(MenuRestore, "Restore", t.iconified || t.maximized, true),
		action(MenuMaximize, "Maximize", !t.maximized, true),
		action(MenuIconify, "Iconify", !t.iconified, true),
		separator(),
	)

	desktops := MenuItem{Label: "Move to workspace", Kind: MenuSubmenu, Visible: tb.desktopCount > 1, Enabled: true}
	for d := 0; d < tb.desktopCount; d++ {
		desktops.Items = append(desktops.Items, action(menuDesktop+strconv.Itoa(d), tb.desktopName(d), true, t.desktop != d))
	}
	desktops.Items = append(desktops.Items,
		separator(),
		action(menuDesktopAll, "All workspaces", true, t.desktop != AllDesktops),
	)
	items = append(items, desktops, separator())

	manual := tb.cfg.ManualGrouping && tb.grouping()
	grouped := c != nil && len(c.members) > 1

	groups := MenuItem{Label: "Move to group", Kind: MenuSubmenu, Enabled: true}
	for _, other := range tb.classes.all() {
		if c != nil && other == c {
			continue
		}
		groups.Items = append(groups.Items, action(menuGroup+other.key, other.displayName, true, true))
	}
	groups.Visible = manual && len(groups.Items) > 0

	items = append(items,
		action(MenuUngroup, "Ungroup", manual && grouped, true),
		groups,
		action(MenuResetGroup, "Reset grouping", manual && t.overrideClass != "", true),
		action(MenuExpand, "Expand group", manual && grouped && collapsed, true),
		action(MenuShrink, "Shrink group", manual && grouped && !collapsed, true),
		separator(),
		action(MenuClose, "Close", true, true),
	)

	collapseSeparators(items)
	return Menu{Window: t.window, Items: items}
}

// collapseSeparators hides a separator that would follow another separator
// or start the menu.
func collapseSeparators(items []MenuItem) {
	previousSeparator := true
	for i := range items {
		if len(items[i].Items) > 0 {
			collapseSeparators(items[i].Items)
		}
		if !items[i].Visible {
			continue
		}
		if items[i].Kind == MenuSeparator {
			if previousSeparator {
				items[i].Visible = false
				continue
			}
			previousSeparator = true
			continue
		}
		previousSeparator = false
	}
}

// ActivateMenuItem runs item id of the menu of w.
func (tb *Taskbar) ActivateMenuItem(w Window, id string) error {
	t := tb.tasks[w]
	if t == nil {
		return fmt.Errorf("window %s: %w", w, ErrNotFound)
	}

	menu := tb.buildMenu(t)
	item, ok := menu.Find(id)
	if !ok || !item.Visible || !item.Enabled {
		return fmt.Errorf("menu item %q: %w", id, ErrNotFound)
	}
	t = tb.tasks[menu.Window]

	tb.begin()
	defer tb.end()

	var err error
	switch {
	case id == MenuRaise:
		err = tb.raise(t)
	case id == MenuRestore:
		if t.iconified {
			err = tb.raise(t)
		}
		if t.maximized && err == nil {
			err = tb.display.SetMaximized(t.window, false)
		}
	case id == MenuMaximize:
		err = tb.display.SetMaximized(t.window, true)
	case id == MenuIconify:
		err = tb.display.Iconify(t.window)
	case id == MenuClose:
		err = tb.display.Close(t.window)
	case id == menuDesktopAll:
		err = tb.display.MoveToDesktop(t.window, AllDesktops)
	case strings.HasPrefix(id, menuDesktop):
		d, _ := strconv.Atoi(strings.TrimPrefix(id, menuDesktop))
		err = tb.display.MoveToDesktop(t.window, d)
	case strings.HasPrefix(id, menuWindow):
		n, _ := strconv.ParseUint(strings.TrimPrefix(id, menuWindow), 10, 32)
		if m := tb.tasks[Window(n)]; m != nil {
			err = tb.raise(m)
		}
	case id == MenuUngroup:
		tb.setOverride(t, t.title())
	case strings.HasPrefix(id, menuGroup):
		tb.setOverride(t, strings.TrimPrefix(id, menuGroup))
	case id == MenuResetGroup:
		tb.setOverride(t, "")
	case id == MenuExpand:
		tb.setManualCollapse(tb.classOf(t), false)
	case id == MenuShrink:
		tb.setManualCollapse(tb.classOf(t), true)
	}
	if err != nil {
		tb.slog.Debug("Menu action failed", "item", id, "window", t.window, "error", err)
	}
	return nil
}

// setOverride moves t into a manual class, an empty class resets it.
func (tb *Taskbar) setOverride(t *Task, class string) {
	if t.overrideClass == class {
		return
	}
	t.overrideClass = class
	tb.reclassify(t)
}

func (tb *Taskbar) setManualCollapse(c *TaskClass, collapsed bool) {
	if c == nil {
		return
	}
	c.manual, c.manualCollapsed = true, collapsed
	tb.refreshClass(c)
	tb.markDirty()
}
