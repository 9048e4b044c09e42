// Package app is the composition root. It owns every process-wide registry
// and installs feature modules explicitly, in order.
package app

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/i18n"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Module installs one feature module into the app.
type Module func(a *App) error

// Effects subscribes a slice's event handlers. It runs once, right after the
// slice is registered.
type Effects func(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error

type App struct {
	Config Config
	Logger zerolog.Logger

	PubSub     *gochannel.GoChannel
	Bus        *events.Bus
	Store      *store.Store
	APIs       *api.Registry
	Screensets *screenset.Registry
	Icons      *screenset.Icons
	I18n       *i18n.Registry
	Runner     *action.Runner

	lang      language.Tag
	cancel    context.CancelFunc
	installed bool
}

func New(ctx context.Context, cfg Config, l zerolog.Logger) (*App, error) {
	lang, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, errors.Wrapf(err, "parse language %q", cfg.Language)
	}

	ctx, cancel := context.WithCancel(ctx)
	ps := events.NewPubSub(l.With().Str("component", "pubsub").Logger())

	a := &App{
		Config:     cfg,
		Logger:     l,
		PubSub:     ps,
		Bus:        events.NewBus(events.WithPublisher(ps), events.WithLogger(l.With().Str("component", "bus").Logger())),
		Store:      store.New(store.WithLogger(l.With().Str("component", "store").Logger()), store.WithHistory(50)),
		APIs:       api.NewRegistry(cfg.API, l.With().Str("component", "api").Logger()),
		Screensets: screenset.NewRegistry(),
		Icons:      screenset.NewIcons(),
		I18n:       i18n.NewRegistry(),
		Runner:     action.NewRunner(ctx, l.With().Str("component", "actions").Logger()),
		lang:       lang,
		cancel:     cancel,
	}
	return a, nil
}

// Install runs every module once, in order, then applies scripted mocks from
// the configuration so they override built-in ones. Any error is a fatal
// configuration problem.
func (a *App) Install(mods ...Module) error {
	if a.installed {
		return errors.New("modules already installed")
	}
	a.installed = true
	for i, m := range mods {
		if err := m(a); err != nil {
			return errors.Wrapf(err, "install module %d", i)
		}
	}
	if path := a.Config.API.MockScripts; path != "" {
		scripts, err := api.LoadScriptFile(path)
		if err != nil {
			return err
		}
		if err := api.RegisterScripts(a.APIs, scripts); err != nil {
			return err
		}
		a.Logger.Info().Str("path", path).Int("domains", len(scripts)).Msg("scripted mocks loaded")
	}
	return nil
}

// RegisterSlice adds a slice to the store and initialises its effects.
func (a *App) RegisterSlice(def store.SliceDef, fx Effects) error {
	if err := a.Store.Register(def); err != nil {
		return err
	}
	if fx == nil {
		return nil
	}
	l := a.Logger.With().Str("slice", def.Key()).Logger()
	if err := fx(a.Bus, a.Store, l); err != nil {
		return errors.Wrapf(err, "init effects for %s", def.Key())
	}
	return nil
}

// RegisterScreenset records d and its translations.
func (a *App) RegisterScreenset(d screenset.Descriptor) error {
	if err := a.Screensets.Register(d); err != nil {
		return err
	}
	if d.Localization != nil {
		if err := a.I18n.Register(d.Namespace(), d.Localization); err != nil {
			return err
		}
	}
	return nil
}

// Run executes a thunk with the store as dispatch handle.
func (a *App) Run(th action.Thunk) {
	th(a.Store)
}

func (a *App) Language() language.Tag {
	return a.lang
}

func (a *App) Translator() *i18n.Translator {
	return a.I18n.Translator(a.lang)
}

func (a *App) ScreenContext() screenset.Context {
	return screenset.Context{
		Store: a.Store,
		Bus:   a.Bus,
		APIs:  a.APIs,
		T:     a.Translator(),
		Icons: a.Icons,
	}
}

// Close cancels the action context, waits for in-flight actions and closes
// the pub/sub.
func (a *App) Close() error {
	a.cancel()
	a.Runner.Wait()
	return errors.Wrap(a.PubSub.Close(), "close pubsub")
}
