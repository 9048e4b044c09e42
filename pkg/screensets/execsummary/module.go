package execsummary

import (
	"embed"
	"time"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/i18n"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/pkg/errors"
)

//go:embed i18n/*.yaml
var translations embed.FS

type options struct {
	now     func() time.Time
	service api.Constructor
	actions **Actions
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithService(ctor api.Constructor) Option {
	return func(o *options) { o.service = ctor }
}

func WithActions(dst **Actions) Option {
	return func(o *options) { o.actions = dst }
}

// Module installs the executive-summary screenset.
func Module(opts ...Option) app.Module {
	o := options{now: time.Now, service: NewSummaryService}
	for _, opt := range opts {
		opt(&o)
	}

	return func(a *app.App) error {
		if err := DeclareEvents(a.Bus); err != nil {
			return err
		}
		if err := a.APIs.Register(APIDomain, o.service); err != nil {
			return err
		}
		if err := a.APIs.RegisterMocks(APIDomain, MockMap(NewFixtures(o.now))); err != nil {
			return err
		}
		if err := a.Icons.Register(map[string]string{
			DashboardIconID: "◧",
			AlertsIconID:    "⚑",
		}); err != nil {
			return err
		}
		if err := a.RegisterSlice(DashboardSlice, InitDashboardEffects); err != nil {
			return err
		}
		if err := a.RegisterSlice(AlertsSlice, InitAlertsEffects); err != nil {
			return err
		}

		loc, err := i18n.NewFSLoader(translations, "i18n")
		if err != nil {
			return errors.Wrap(err, "executive summary translations")
		}

		acts := NewActions(a.Bus, a.APIs, a.Runner, a.Logger.With().Str("screenset", ScreensetID).Logger())
		if o.actions != nil {
			*o.actions = acts
		}

		return a.RegisterScreenset(screenset.Descriptor{
			ID:            ScreensetID,
			Name:          "Executive Summary",
			Category:      screenset.CategoryMockups,
			DefaultScreen: DashboardScreenID,
			Localization:  loc,
			Menu: []screenset.MenuEntry{
				{
					Item: screenset.MenuItem{ID: DashboardScreenID, Label: namespace + ":screens." + DashboardScreenID + ".title", Icon: DashboardIconID},
					Screen: func(ctx screenset.Context) screenset.Screen {
						return newDashboardScreen(ctx, acts)
					},
				},
				{
					Item: screenset.MenuItem{ID: AlertsScreenID, Label: namespace + ":screens." + AlertsScreenID + ".title", Icon: AlertsIconID},
					Screen: func(ctx screenset.Context) screenset.Screen {
						return newAlertsScreen(ctx, acts)
					},
				},
			},
		})
	}
}
