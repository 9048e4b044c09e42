package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-go-golems/glazed/pkg/cli"
	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/screensets/execsummary"
	"github.com/go-go-golems/screenctl/pkg/screensets/monitoring"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions is shared by every subcommand.
type RootOptions struct {
	ConfigPath string

	Config app.Config
	Logger zerolog.Logger

	// Modules builds the feature modules to install, in order.
	Modules func() []app.Module

	logFile io.Closer
}

// DefaultModules is every screenset shipped with screenctl.
func DefaultModules() []app.Module {
	return []app.Module{
		monitoring.Module(),
		execsummary.Module(),
	}
}

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	opts := &RootOptions{Modules: DefaultModules}
	cmd, err := NewRootCommand(opts)
	if err != nil {
		return err
	}
	return executeRoot(ctx, cmd, opts)
}

// executeRoot runs cmd and closes the log file on every path; cobra skips
// post-run hooks when RunE fails.
func executeRoot(ctx context.Context, cmd *cobra.Command, opts *RootOptions) error {
	defer func() { _ = opts.closeLog() }()
	return cmd.ExecuteContext(ctx)
}

func NewRootCommand(opts *RootOptions) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "screenctl",
		Short: "Screenset-based terminal dashboard",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := app.ApplyFlags(cmd.Flags(), &cfg); err != nil {
				return err
			}
			opts.Config = cfg
			return opts.setupLogging(cmd.ErrOrStderr(), cmd.Name() == "run")
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.closeLog()
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.ConfigPath, "config", app.DefaultConfigPath(), "config file")
	app.BindFlags(fs)

	screensets, err := NewScreensetsCommand(opts)
	if err != nil {
		return nil, err
	}
	screensetsCmd, err := cli.BuildCobraCommandFromGlazeCommand(screensets)
	if err != nil {
		return nil, errors.Wrap(err, "build screensets command")
	}
	eventsList, err := NewEventsCommand(opts)
	if err != nil {
		return nil, err
	}
	eventsCmd, err := cli.BuildCobraCommandFromGlazeCommand(eventsList)
	if err != nil {
		return nil, errors.Wrap(err, "build events command")
	}

	cmd.AddCommand(
		NewRunCommand(opts),
		screensetsCmd,
		eventsCmd,
		NewMockCommand(opts),
	)
	return cmd, nil
}

// setupLogging writes human-readable logs to w, or to the configured log
// file. The TUI owns the terminal, so run falls back to a file in the state
// dir.
func (o *RootOptions) setupLogging(w io.Writer, tui bool) error {
	level, err := zerolog.ParseLevel(o.Config.Log.Level)
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", o.Config.Log.Level)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	path := o.Config.Log.File
	if path == "" && tui {
		path = filepath.Join(o.Config.StateDir, "screenctl.log")
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrap(err, "mkdir log dir")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		o.logFile = f
		out = f
	}
	o.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

func (o *RootOptions) closeLog() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return errors.Wrap(err, "close log file")
}

// newApp builds the app and installs every module. A registration conflict
// is returned before anything is rendered.
func (o *RootOptions) newApp(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, o.Config, o.Logger)
	if err != nil {
		return nil, err
	}
	var mods []app.Module
	if o.Modules != nil {
		mods = o.Modules()
	}
	if err := a.Install(mods...); err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "install modules")
	}
	return a, nil
}
