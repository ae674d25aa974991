// Package api is the debug HTTP API. It serves taskbar snapshots and context
// menus and streams change notifications.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ItsNotGoodName/waterline/internal/build"
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/loop"
	"github.com/ItsNotGoodName/waterline/internal/panel"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
)

// Runner runs functions on the goroutine that owns the taskbars.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Panel is the panel geometry. It is used on the loop like the taskbars.
type Panel interface {
	Settings() panel.Settings
	SetSettings(settings panel.Settings)
}

type API struct {
	runner   Runner
	registry *taskbar.Registry
	panel    Panel
}

func New(runner Runner, registry *taskbar.Registry, p Panel) *API {
	return &API{
		runner:   runner,
		registry: registry,
		panel:    p,
	}
}

// Register adds every operation to api.
func (a *API) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Get build information",
	}, a.GetBuild)

	huma.Register(api, huma.Operation{
		OperationID: "get-panel",
		Method:      http.MethodGet,
		Path:        "/api/panel",
		Summary:     "Get the panel geometry",
	}, a.GetPanel)

	huma.Register(api, huma.Operation{
		OperationID: "update-panel",
		Method:      http.MethodPut,
		Path:        "/api/panel",
		Summary:     "Move or resize the panel",
	}, a.UpdatePanel)

	huma.Register(api, huma.Operation{
		OperationID: "list-taskbars",
		Method:      http.MethodGet,
		Path:        "/api/taskbars",
		Summary:     "List taskbar snapshots",
	}, a.ListTaskbars)

	huma.Register(api, huma.Operation{
		OperationID: "get-taskbar",
		Method:      http.MethodGet,
		Path:        "/api/taskbars/{id}",
		Summary:     "Get a taskbar snapshot",
	}, a.GetTaskbar)

	huma.Register(api, huma.Operation{
		OperationID: "get-menu",
		Method:      http.MethodGet,
		Path:        "/api/taskbars/{id}/tasks/{window}/menu",
		Summary:     "Get the context menu of a task",
	}, a.GetMenu)

	huma.Register(api, huma.Operation{
		OperationID:   "activate-menu-item",
		Method:        http.MethodPost,
		Path:          "/api/taskbars/{id}/tasks/{window}/menu",
		Summary:       "Activate a context menu item",
		DefaultStatus: http.StatusNoContent,
	}, a.ActivateMenuItem)

	sse.Register(api, huma.Operation{
		OperationID: "events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream taskbar changes",
	}, map[string]any{
		"changed": taskbar.Changed{},
	}, a.Events)
}

type BuildOutput struct {
	Body build.Build
}

func (a *API) GetBuild(ctx context.Context, input *struct{}) (*BuildOutput, error) {
	return &BuildOutput{Body: build.Current}, nil
}

type PanelSettings struct {
	Edge     string `json:"edge" enum:"bottom,top,left,right" doc:"Screen edge"`
	Height   int    `json:"height" minimum:"1" doc:"Thickness in pixels"`
	IconSize int    `json:"iconsize" minimum:"1" doc:"Icon size in pixels, at most height"`
}

func newPanelSettings(s panel.Settings) PanelSettings {
	return PanelSettings{
		Edge:     s.Edge.String(),
		Height:   s.Height,
		IconSize: s.IconSize,
	}
}

type PanelOutput struct {
	Body PanelSettings
}

func (a *API) GetPanel(ctx context.Context, input *struct{}) (*PanelOutput, error) {
	var out PanelOutput
	if err := a.do(ctx, func() error {
		out.Body = newPanelSettings(a.panel.Settings())
		return nil
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

type UpdatePanelInput struct {
	Body PanelSettings
}

func (a *API) UpdatePanel(ctx context.Context, input *UpdatePanelInput) (*PanelOutput, error) {
	edge, ok := geom.ParseEdge(input.Body.Edge)
	if !ok {
		return nil, huma.Error422UnprocessableEntity("invalid edge " + input.Body.Edge)
	}

	var out PanelOutput
	if err := a.do(ctx, func() error {
		a.panel.SetSettings(panel.Settings{
			Edge:     edge,
			Height:   input.Body.Height,
			IconSize: input.Body.IconSize,
		})
		out.Body = newPanelSettings(a.panel.Settings())
		return nil
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

type TaskbarsOutput struct {
	Body []taskbar.Snapshot
}

func (a *API) ListTaskbars(ctx context.Context, input *struct{}) (*TaskbarsOutput, error) {
	out := TaskbarsOutput{Body: []taskbar.Snapshot{}}
	if err := a.do(ctx, func() error {
		for _, tb := range a.registry.Taskbars() {
			out.Body = append(out.Body, tb.Snapshot())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

type TaskbarInput struct {
	ID string `path:"id" doc:"Plugin instance id"`
}

type TaskbarOutput struct {
	Body taskbar.Snapshot
}

func (a *API) GetTaskbar(ctx context.Context, input *TaskbarInput) (*TaskbarOutput, error) {
	var out TaskbarOutput
	if err := a.do(ctx, func() error {
		tb, err := a.registry.Get(input.ID)
		if err != nil {
			return err
		}
		out.Body = tb.Snapshot()
		return nil
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

type MenuInput struct {
	ID     string `path:"id" doc:"Plugin instance id"`
	Window uint32 `path:"window" doc:"X window id"`
}

type MenuOutput struct {
	Body taskbar.Menu
}

func (a *API) GetMenu(ctx context.Context, input *MenuInput) (*MenuOutput, error) {
	var out MenuOutput
	if err := a.do(ctx, func() error {
		tb, err := a.registry.Get(input.ID)
		if err != nil {
			return err
		}
		out.Body, err = tb.Menu(taskbar.Window(input.Window))
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

type ActivateMenuItemInput struct {
	ID     string `path:"id" doc:"Plugin instance id"`
	Window uint32 `path:"window" doc:"X window id"`
	Body   struct {
		Item string `json:"item" minLength:"1" doc:"Menu item id, for example desktop/1"`
	}
}

func (a *API) ActivateMenuItem(ctx context.Context, input *ActivateMenuItemInput) (*struct{}, error) {
	if err := a.do(ctx, func() error {
		tb, err := a.registry.Get(input.ID)
		if err != nil {
			return err
		}
		return tb.ActivateMenuItem(taskbar.Window(input.Window), input.Body.Item)
	}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (a *API) Events(ctx context.Context, input *struct{}, send sse.Sender) {
	changedC, unsubscribe := a.registry.Changed().Subscribe(16)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case changed := <-changedC:
			if err := send.Data(changed); err != nil {
				return
			}
		}
	}
}

// do runs fn on the loop and maps its error to an HTTP error.
func (a *API) do(ctx context.Context, fn func() error) error {
	var fnErr error
	if err := a.runner.Do(ctx, func() { fnErr = fn() }); err != nil {
		if errors.Is(err, loop.ErrStopped) {
			return huma.Error503ServiceUnavailable("taskbars are stopped", err)
		}
		return err
	}
	if errors.Is(fnErr, taskbar.ErrNotFound) {
		return huma.Error404NotFound(fnErr.Error())
	}
	return fnErr
}
