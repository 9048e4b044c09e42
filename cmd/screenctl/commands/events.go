package commands

import (
	"context"

	"github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"
	"github.com/pkg/errors"
)

// EventsCommand emits one row per declared event, sorted by name.
type EventsCommand struct {
	*cmds.CommandDescription
	opts *RootOptions
}

var _ cmds.GlazeCommand = (*EventsCommand)(nil)

func NewEventsCommand(opts *RootOptions) (*EventsCommand, error) {
	glazedLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, errors.Wrap(err, "glazed layers")
	}
	return &EventsCommand{
		CommandDescription: cmds.NewCommandDescription(
			"events",
			cmds.WithShort("List declared events with their payload types"),
			cmds.WithLayersList(glazedLayer),
		),
		opts: opts,
	}, nil
}

func (c *EventsCommand) RunIntoGlazeProcessor(ctx context.Context, _ *layers.ParsedLayers, gp middlewares.Processor) error {
	a, err := c.opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	for _, d := range a.Bus.Declared() {
		row := types.NewRow(
			types.MRP("name", d.Name),
			types.MRP("payload_type", d.PayloadType),
			types.MRP("subscribers", d.Subscribers),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
