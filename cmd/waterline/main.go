package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/waterline/internal/api"
	"github.com/ItsNotGoodName/waterline/internal/build"
	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/core"
	"github.com/ItsNotGoodName/waterline/internal/loop"
	"github.com/ItsNotGoodName/waterline/internal/panel"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/ItsNotGoodName/waterline/internal/xwm"
	"github.com/ItsNotGoodName/waterline/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
)

type Options struct {
	Debug     bool   `doc:"enable debug"`
	Host      string `doc:"host of the debug API"`
	Port      int    `doc:"port of the debug API, 0 disables it" default:"8080"`
	Config    string `doc:"panel config file" default:".waterline.conf"`
	BlinkTime int    `doc:"blink interval of urgent tasks in milliseconds" default:"500"`
	Font      string `doc:"TrueType font for labels, empty picks a system font"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return serve(ctx, options)
		})
	})

	cli.Root().Use = "waterline"
	cli.Root().Version = build.Current.Version
	cli.Root().AddCommand(snapshotCommand())

	cli.Run()
}

func serve(ctx context.Context, options *Options) error {
	configFilePath, err := filepath.Abs(options.Config)
	if err != nil {
		return err
	}

	driver, err := config.NewDriver(configFilePath)
	if err != nil {
		return err
	}

	store, err := config.NewStore(driver)
	if err != nil {
		return err
	}

	if err := config.Normalize(store); err != nil {
		return err
	}

	cfg, err := store.GetConfig()
	if err != nil {
		return err
	}

	font, err := xwm.LoadFont(options.Font)
	if err != nil {
		slog.Warn("Task labels are disabled", "error", err)
	}

	X, err := xwm.Connect()
	if err != nil {
		return err
	}
	defer X.Conn().Close()

	lp := loop.New()
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopErrC := make(chan error, 1)
	go func() { loopErrC <- lp.Run(loopCtx) }()
	defer func() {
		cancelLoop()
		<-loopErrC
	}()

	registry := taskbar.NewRegistry()
	host := panel.NewHost()
	display := xwm.NewDisplay(X)
	blinkTime := time.Duration(options.BlinkTime) * time.Millisecond

	var (
		win      *xwm.Panel
		setupErr error
	)
	if err := lp.Do(ctx, func() {
		win, setupErr = xwm.NewPanel(X, panel.LoadSettings(cfg.Global), font)
		if setupErr != nil {
			return
		}

		host.Register(taskbar.PluginType, func(id string, p panel.Panel) panel.Plugin {
			return taskbar.New(taskbar.Options{
				ID:        id,
				Display:   display,
				Scheduler: lp,
				Buttons:   win,
				Panel:     p,
				Registry:  registry,
				BlinkTime: blinkTime,
			})
		})
		host.Load(cfg)

		host.OnSettingsChanged(win.SetSettings)
		win.OnAllocate(host.Allocate)
		win.Allocate()
	}); err != nil {
		return err
	}
	if setupErr != nil {
		return setupErr
	}
	defer teardown(lp, store, host, win)

	super := sutureext.NewSimple("waterline")

	dispatcher := xwm.Dispatcher{X: X, Registry: registry, Panel: win}
	sutureext.Add(super, xwm.NewPump(X.Conn(), lp, dispatcher.Dispatch))

	if options.Port != 0 {
		handler := api.NewRouter(api.New(lp, registry, host))
		sutureext.Add(super, api.NewServer(core.Address(options.Host, options.Port), handler))
	}

	return super.Serve(ctx)
}

// teardown saves the configuration and destroys the plugins before the loop
// and the X connection go away.
func teardown(lp *loop.Loop, store config.Store, host *panel.Host, win *xwm.Panel) {
	var cfg config.Config
	if err := lp.Do(context.Background(), func() {
		cfg = host.Save()
		host.Destroy()
		win.Destroy()
	}); err != nil {
		slog.Error("Failed to tear down panel", "error", err)
		return
	}

	if err := store.UpdateConfig(func(config.Config) (config.Config, error) {
		return cfg, nil
	}); err != nil {
		slog.Error("Failed to save config", "error", err)
	}
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
