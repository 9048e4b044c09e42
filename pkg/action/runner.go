package action

import (
	"context"
	"sync"

	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// UnknownError is the failure message used when an error carries none.
const UnknownError = "Unknown error"

// Thunk is the deferred form of an action: it receives the dispatch handle
// when run.
type Thunk func(d store.Dispatcher)

// Runner launches the asynchronous part of actions. It owns the context every
// fetch runs under and tracks in-flight work so it can be awaited.
//
// Superseded fetches are not cancelled: a fetch started for an earlier
// selection still reports its result when it completes.
type Runner struct {
	ctx    context.Context
	wg     sync.WaitGroup
	logger zerolog.Logger
}

func NewRunner(ctx context.Context, l zerolog.Logger) *Runner {
	return &Runner{ctx: ctx, logger: l}
}

func (r *Runner) Context() context.Context {
	return r.ctx
}

// Go runs fn on its own goroutine. A panic inside fn is recovered and handed
// to onPanic as an error.
func (r *Runner) Go(name string, fn func(ctx context.Context), onPanic func(err error)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				err := panicError(p)
				r.logger.Error().Interface("panic", p).Str("action", name).Msg("action panicked")
				if onPanic != nil {
					onPanic(err)
				}
			}
		}()
		fn(r.ctx)
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// ErrorMessage extracts the failure message carried by fetch-failed events.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownError
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownError
}

// panicValue carries a recovered non-error value. It has no message, so
// ErrorMessage reports UnknownError for it.
type panicValue struct {
	v any
}

func (panicValue) Error() string { return "" }

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return errors.WithStack(err)
	}
	return panicValue{v: p}
}
