package taskbar

import (
	"log/slog"

	"github.com/ItsNotGoodName/waterline/internal/config"
)

type IconsTitles int

const (
	ShowIcons IconsTitles = iota
	ShowTitles
	ShowBoth
)

var iconsTitlesNames = []string{"icons", "titles", "both"}

type Mode int

const (
	ModeClassic Mode = iota
	ModeActiveWindow
)

var modeNames = []string{"classic", "active_window"}

type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupClass
	GroupWorkspace
	GroupState
)

var groupByNames = []string{"none", "class", "workspace", "state"}

type SortBy int

const (
	SortTimestamp SortBy = iota
	SortWorkspace
	SortState
	SortClass
)

var sortByNames = []string{"timestamp", "workspace", "state", "class"}

type Action int

const (
	ActionNone Action = iota
	ActionShowMenu
	ActionClose
	ActionRaiseIconify
	ActionIconify
	ActionMaximize
	ActionNextWindow
	ActionPrevWindow
	ActionToggleGroup
)

var actionNames = []string{
	"none",
	"show_menu",
	"close",
	"raise_iconify",
	"iconify",
	"maximize",
	"next_window",
	"prev_window",
	"toggle_group",
}

func (a Action) String() string {
	return enumName(actionNames, int(a))
}

func (g GroupBy) String() string {
	return enumName(groupByNames, int(g))
}

func (s SortBy) String() string {
	return enumName(sortByNames, int(s))
}

func (m Mode) String() string {
	return enumName(modeNames, int(m))
}

func (i IconsTitles) String() string {
	return enumName(iconsTitlesNames, int(i))
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func enumValue(names []string, s string) (int, bool) {
	for i, name := range names {
		if name == s {
			return i, true
		}
	}
	return 0, false
}

// Config is the taskbar's plugin block.
type Config struct {
	Tooltips           bool
	ShowIconsTitles    IconsTitles
	Mode               Mode
	ShowAllDesks       bool
	ShowMapped         bool
	ShowIconified      bool
	UseMouseWheel      bool
	UseUrgencyHint     bool
	FlatButton         bool
	GroupBy            GroupBy
	GroupThreshold     int
	ExpandFocusedGroup bool
	ManualGrouping     bool
	SortBy             SortBy
	MaxTaskWidth       int
	Spacing            int
	// ButtonActions holds buttons 1 to 3, ShiftButtonActions the same with
	// Shift held.
	ButtonActions      [3]Action
	ShiftButtonActions [3]Action
	ScrollUpAction     Action
	ScrollDownAction   Action
}

func DefaultConfig() Config {
	return Config{
		Tooltips:           true,
		ShowIconsTitles:    ShowBoth,
		Mode:               ModeClassic,
		ShowMapped:         true,
		ShowIconified:      true,
		UseMouseWheel:      true,
		UseUrgencyHint:     true,
		GroupBy:            GroupClass,
		GroupThreshold:     2,
		ManualGrouping:     true,
		SortBy:             SortTimestamp,
		MaxTaskWidth:       150,
		Spacing:            1,
		ButtonActions:      [3]Action{ActionRaiseIconify, ActionClose, ActionShowMenu},
		ShiftButtonActions: [3]Action{ActionIconify, ActionMaximize, ActionNone},
		ScrollUpAction:     ActionPrevWindow,
		ScrollDownAction:   ActionNextWindow,
	}
}

var (
	buttonKeys      = [3]string{"Button1Action", "Button2Action", "Button3Action"}
	shiftButtonKeys = [3]string{"ShiftButton1Action", "ShiftButton2Action", "ShiftButton3Action"}
)

const legacyGroupedTasks = "GroupedTasks"

type configReader struct {
	section config.Section
	slog    *slog.Logger
}

func (r configReader) bool(key string, v *bool) {
	raw, ok := r.section.Get(key)
	if !ok {
		return
	}
	b, ok := r.section.GetBool(key)
	if !ok {
		r.slog.Debug("Ignoring invalid bool", "key", key, "value", raw)
		return
	}
	*v = b
}

func (r configReader) int(key string, v *int) {
	raw, ok := r.section.Get(key)
	if !ok {
		return
	}
	i, ok := r.section.GetInt(key)
	if !ok {
		r.slog.Debug("Ignoring invalid int", "key", key, "value", raw)
		return
	}
	*v = i
}

func (r configReader) enum(key string, names []string) (int, bool) {
	raw, ok := r.section.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := enumValue(names, raw)
	if !ok {
		r.slog.Debug("Ignoring invalid value", "key", key, "value", raw)
	}
	return i, ok
}

func (r configReader) action(key string, v *Action) {
	if i, ok := r.enum(key, actionNames); ok {
		*v = Action(i)
	}
}

// LoadConfig reads a taskbar block. Invalid values keep their default.
func LoadConfig(section config.Section) Config {
	r := configReader{section: section, slog: slog.With("package", "taskbar")}
	cfg := DefaultConfig()

	// Legacy boolean from before GroupBy existed, explicit keys below win.
	if grouped, ok := section.GetBool(legacyGroupedTasks); ok {
		if grouped {
			cfg.GroupBy = GroupClass
			cfg.GroupThreshold = 1
		} else {
			cfg.GroupBy = GroupNone
		}
	}

	r.bool("Tooltips", &cfg.Tooltips)
	if i, ok := r.enum("ShowIconsTitles", iconsTitlesNames); ok {
		cfg.ShowIconsTitles = IconsTitles(i)
	}
	if i, ok := r.enum("Mode", modeNames); ok {
		cfg.Mode = Mode(i)
	}
	r.bool("ShowAllDesks", &cfg.ShowAllDesks)
	r.bool("ShowMapped", &cfg.ShowMapped)
	r.bool("ShowIconified", &cfg.ShowIconified)
	r.bool("UseMouseWheel", &cfg.UseMouseWheel)
	r.bool("UseUrgencyHint", &cfg.UseUrgencyHint)
	r.bool("FlatButton", &cfg.FlatButton)
	if i, ok := r.enum("GroupBy", groupByNames); ok {
		cfg.GroupBy = GroupBy(i)
	}
	r.int("GroupThreshold", &cfg.GroupThreshold)
	r.bool("ExpandFocusedGroup", &cfg.ExpandFocusedGroup)
	r.bool("ManualGrouping", &cfg.ManualGrouping)
	if i, ok := r.enum("SortBy", sortByNames); ok {
		cfg.SortBy = SortBy(i)
	}
	r.int("MaxTaskWidth", &cfg.MaxTaskWidth)
	r.int("Spacing", &cfg.Spacing)
	for i := range buttonKeys {
		r.action(buttonKeys[i], &cfg.ButtonActions[i])
		r.action(shiftButtonKeys[i], &cfg.ShiftButtonActions[i])
	}
	r.action("ScrollUpAction", &cfg.ScrollUpAction)
	r.action("ScrollDownAction", &cfg.ScrollDownAction)

	if cfg.MaxTaskWidth < 1 {
		r.slog.Debug("Clamping MaxTaskWidth", "value", cfg.MaxTaskWidth)
		cfg.MaxTaskWidth = 1
	}
	if cfg.Spacing < 0 {
		r.slog.Debug("Clamping Spacing", "value", cfg.Spacing)
		cfg.Spacing = 0
	}

	return cfg
}

// Save writes every key into section. Keys the taskbar does not know are
// left alone.
func (c Config) Save(section *config.Section) {
	section.Delete(legacyGroupedTasks)
	section.SetBool("Tooltips", c.Tooltips)
	section.Set("ShowIconsTitles", c.ShowIconsTitles.String())
	section.Set("Mode", c.Mode.String())
	section.SetBool("ShowAllDesks", c.ShowAllDesks)
	section.SetBool("ShowMapped", c.ShowMapped)
	section.SetBool("ShowIconified", c.ShowIconified)
	section.SetBool("UseMouseWheel", c.UseMouseWheel)
	section.SetBool("UseUrgencyHint", c.UseUrgencyHint)
	section.SetBool("FlatButton", c.FlatButton)
	section.Set("GroupBy", c.GroupBy.String())
	section.SetInt("GroupThreshold", c.GroupThreshold)
	section.SetBool("ExpandFocusedGroup", c.ExpandFocusedGroup)
	section.SetBool("ManualGrouping", c.ManualGrouping)
	section.Set("SortBy", c.SortBy.String())
	section.SetInt("MaxTaskWidth", c.MaxTaskWidth)
	section.SetInt("Spacing", c.Spacing)
	for i := range buttonKeys {
		section.Set(buttonKeys[i], c.ButtonActions[i].String())
	}
	for i := range shiftButtonKeys {
		section.Set(shiftButtonKeys[i], c.ShiftButtonActions[i].String())
	}
	section.Set("ScrollUpAction", c.ScrollUpAction.String())
	section.Set("ScrollDownAction", c.ScrollDownAction.String())
}

// buttonAction maps a pointer button to its configured action.
func (c Config) buttonAction(button int, shift bool) Action {
	if button < 1 || button > 3 {
		return ActionNone
	}
	if shift {
		return c.ShiftButtonActions[button-1]
	}
	return c.ButtonActions[button-1]
}
