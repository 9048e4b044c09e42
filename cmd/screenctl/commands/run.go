package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/screensets/monitoring"
	"github.com/go-go-golems/screenctl/pkg/state"
	"github.com/go-go-golems/screenctl/pkg/tui"
	"github.com/go-go-golems/screenctl/pkg/tui/models"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	screenset string
	screen    string
	noRestore bool
}

func NewRunCommand(opts *RootOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:          "run",
		Short:        "Start the dashboard",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, ro)
		},
	}
	cmd.Flags().StringVar(&ro.screenset, "screenset", "", "screenset to open (default: last session)")
	cmd.Flags().StringVar(&ro.screen, "screen", "", "screen to open within the screenset")
	cmd.Flags().BoolVar(&ro.noRestore, "no-restore", false, "ignore the saved session")
	return cmd
}

func runTUI(cmd *cobra.Command, opts *RootOptions, ro *runOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	start := restoreSession(a, opts, ro)

	model := models.NewRootModel(a.ScreenContext(), a.Screensets, start)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	watcher := &tui.StateWatcher{Store: a.Store, Send: p.Send}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	fwd := &tui.EventForwarder{
		Sub:    a.PubSub,
		Send:   p.Send,
		Logger: opts.Logger.With().Str("component", "forwarder").Logger(),
	}
	// subscribe before the program starts so the first screen's events are
	// not lost
	msgs, err := fwd.Subscribe(ctx)
	if err != nil {
		return err
	}

	var final tea.Model
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := fwd.Forward(gctx, msgs); err != nil {
			p.Send(tui.ForwarderStoppedMsg{Err: err})
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		m, err := p.Run()
		final = m
		return errors.Wrap(err, "run tui")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if root, ok := final.(models.RootModel); ok {
		saveSession(a, opts, root)
	}
	return nil
}

// restoreSession applies the saved selection to the store and returns the
// screen to open first. Flags win over the saved session.
func restoreSession(a *app.App, opts *RootOptions, ro *runOptions) screenset.NavigateMsg {
	var sess state.Session
	if !ro.noRestore {
		s, err := state.Load(opts.Config.StateDir)
		if err != nil {
			opts.Logger.Warn().Err(err).Msg("ignoring saved session")
		} else {
			sess = s
		}
	}

	if sess.SelectedMachineID != "" {
		if err := a.Store.Dispatch(monitoring.SetSelectedMachineID.With(sess.SelectedMachineID)); err != nil {
			opts.Logger.Debug().Err(err).Msg("restore selected machine")
		}
	}
	if tr := monitoring.TimeRange(sess.TimeRange); tr.Valid() {
		if err := a.Store.Dispatch(monitoring.SetTimeRange.With(tr)); err != nil {
			opts.Logger.Debug().Err(err).Msg("restore time range")
		}
	}

	start := screenset.NavigateMsg{Screenset: sess.Screenset, Screen: sess.Screen}
	if ro.screenset != "" {
		start = screenset.NavigateMsg{Screenset: ro.screenset, Screen: ro.screen}
	}
	if d, ok := a.Screensets.Get(start.Screenset); !ok {
		start = screenset.NavigateMsg{}
	} else if _, ok := d.Entry(start.Screen); !ok {
		start.Screen = d.DefaultScreen
	}
	return start
}

func saveSession(a *app.App, opts *RootOptions, root models.RootModel) {
	set, screen := root.Location()
	st := a.Store.GetState()
	sess := state.Session{
		Screenset:         set,
		Screen:            screen,
		SelectedMachineID: monitoring.SelectMachinesState(st).SelectedMachineID,
		TimeRange:         string(monitoring.SelectMetricsState(st).TimeRange),
	}
	if err := state.Save(opts.Config.StateDir, sess); err != nil {
		opts.Logger.Warn().Err(err).Msg("save session")
		return
	}
	opts.Logger.Debug().Str("screenset", set).Str("screen", screen).Msg("session saved")
}
