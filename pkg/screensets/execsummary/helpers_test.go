package execsummary

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestApp(t *testing.T, opts ...Option) (*app.App, *Actions) {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.StateDir = t.TempDir()
	cfg.API.UseMocks = true

	a, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	var acts *Actions
	opts = append([]Option{WithClock(fixedClock), WithActions(&acts)}, opts...)
	require.NoError(t, a.Install(Module(opts...)))
	require.NotNil(t, acts)

	t.Cleanup(func() { _ = a.Close() })
	return a, acts
}

type recorder[P any] struct {
	mu  sync.Mutex
	got []P
}

func record[P any](t *testing.T, b *events.Bus, topic events.Topic[P]) *recorder[P] {
	t.Helper()
	r := &recorder[P]{}
	_, err := events.On(b, topic, func(p P) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.got = append(r.got, p)
		return nil
	})
	require.NoError(t, err)
	return r
}

func (r *recorder[P]) all() []P {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]P{}, r.got...)
}
