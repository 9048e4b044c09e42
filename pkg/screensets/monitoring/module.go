package monitoring

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

// WithClock sets the clock the mock fixtures are generated from.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithService replaces the HTTP/mock service with ctor.
func WithService(ctor api.Constructor) Option {
	return func(o *options) { o.service = ctor }
}

// WithActions stores the module's Actions in *dst once installed.
func WithActions(dst **Actions) Option {
	return func(o *options) { o.actions = dst }
}

// Module installs the machine-monitoring screenset: events, API service and
// mocks, icons, slices with their effects, and the screenset descriptor.
func Module(opts ...Option) app.Module {
	o := options{now: time.Now, service: NewMonitoringService}
	for _, opt := range opts {
		opt(&o)
	}

	return func(a *app.App) error {
		if err := DeclareEvents(a.Bus); err != nil {
			return err
		}
		if err := a.APIs.Register(MonitoringDomain, o.service); err != nil {
			return err
		}
		if err := a.APIs.RegisterMocks(MonitoringDomain, MockMap(NewFixtures(o.now))); err != nil {
			return err
		}
		if err := a.Icons.Register(map[string]string{
			MonitorIconID: "▣",
			ServerIconID:  "▤",
		}); err != nil {
			return err
		}

		if err := a.RegisterSlice(MachinesSlice, InitMachinesEffects); err != nil {
			return err
		}
		if err := a.RegisterSlice(MetricsSlice, InitMetricsEffects); err != nil {
			return err
		}
		if err := a.RegisterSlice(ProcessesSlice, InitProcessesEffects); err != nil {
			return err
		}
		if err := a.RegisterSlice(FleetSlice, InitFleetEffects); err != nil {
			return err
		}

		loc, err := i18n.NewFSLoader(translations, "i18n")
		if err != nil {
			return errors.Wrap(err, "monitoring translations")
		}

		acts := NewActions(a.Bus, a.APIs, a.Runner, a.Logger.With().Str("screenset", ScreensetID).Logger())
		if o.actions != nil {
			*o.actions = acts
		}

		return a.RegisterScreenset(screenset.Descriptor{
			ID:            ScreensetID,
			Name:          "Machine Monitoring",
			Category:      screenset.CategoryMockups,
			DefaultScreen: DashboardScreenID,
			Localization:  loc,
			Menu: []screenset.MenuEntry{
				{
					Item: screenset.MenuItem{ID: DashboardScreenID, Label: namespace + ":screens." + DashboardScreenID + ".title", Icon: MonitorIconID},
					Screen: func(ctx screenset.Context) screenset.Screen {
						return newDashboardScreen(ctx, acts)
					},
				},
				{
					Item: screenset.MenuItem{ID: MachinesListScreenID, Label: namespace + ":screens." + MachinesListScreenID + ".title", Icon: ServerIconID},
					Screen: func(ctx screenset.Context) screenset.Screen {
						return newMachinesListScreen(ctx, acts)
					},
				},
			},
		})
	}
}
