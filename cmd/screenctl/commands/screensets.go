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

// ScreensetsCommand emits one row per menu entry, screensets in
// registration order.
type ScreensetsCommand struct {
	*cmds.CommandDescription
	opts *RootOptions
}

var _ cmds.GlazeCommand = (*ScreensetsCommand)(nil)

func NewScreensetsCommand(opts *RootOptions) (*ScreensetsCommand, error) {
	glazedLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, errors.Wrap(err, "glazed layers")
	}
	return &ScreensetsCommand{
		CommandDescription: cmds.NewCommandDescription(
			"screensets",
			cmds.WithShort("List registered screensets and their menus in registration order"),
			cmds.WithLayersList(glazedLayer),
		),
		opts: opts,
	}, nil
}

func (c *ScreensetsCommand) RunIntoGlazeProcessor(ctx context.Context, _ *layers.ParsedLayers, gp middlewares.Processor) error {
	a, err := c.opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	t := a.Translator()
	for _, d := range a.Screensets.List() {
		for _, e := range d.Menu {
			row := types.NewRow(
				types.MRP("screenset", d.ID),
				types.MRP("name", d.Name),
				types.MRP("category", string(d.Category)),
				types.MRP("default", e.Item.ID == d.DefaultScreen),
				types.MRP("screen", e.Item.ID),
				types.MRP("label", t.T(e.Item.Label)),
				types.MRP("icon", a.Icons.Glyph(e.Item.Icon)),
			)
			if err := gp.AddRow(ctx, row); err != nil {
				return err
			}
		}
	}
	return nil
}
