package store

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	ErrDuplicateSlice     = errors.New("slice key already registered")
	ErrUnknownAction      = errors.New("unknown action")
	ErrSliceNotRegistered = errors.New("slice not registered")
	ErrPayloadType        = errors.New("action payload has the wrong type")
)

// RootState maps slice keys to slice states. A RootState handed out by the
// store is never mutated afterwards.
type RootState map[string]any

// Dispatcher is the handle effects and thunks use to mutate the store.
type Dispatcher interface {
	Dispatch(a Action) error
	GetState() RootState
}

type listener struct {
	id int
	fn func(RootState)
}

// Store is the single shared mutable resource. Mutations go through Dispatch
// only, and are applied one at a time.
type Store struct {
	mu        sync.Mutex
	state     RootState
	slices    map[string]SliceDef
	order     []string
	listeners []listener
	nextID    int

	historyMax int
	history    []string

	logger zerolog.Logger
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithHistory keeps the types of the last n applied actions.
func WithHistory(n int) Option {
	return func(s *Store) {
		s.historyMax = n
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state:  RootState{},
		slices: map[string]SliceDef{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a slice to the store with its initial state.
func (s *Store) Register(def SliceDef) error {
	if def == nil {
		return errors.New("nil slice")
	}
	key := def.Key()
	if key == "" {
		return errors.New("slice key is empty")
	}

	s.mu.Lock()
	if _, ok := s.slices[key]; ok {
		s.mu.Unlock()
		return errors.Wrap(ErrDuplicateSlice, key)
	}
	s.slices[key] = def
	s.order = append(s.order, key)
	next := s.state.with(key, def.initialAny())
	s.state = next
	s.mu.Unlock()

	s.logger.Debug().Str("slice", key).Strs("reducers", def.reducerNames()).Msg("slice registered")
	s.notify(next)
	return nil
}

// Keys returns registered slice keys in registration order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.order...)
}

func (s *Store) GetState() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) error {
	i := strings.LastIndex(a.Type, "/")
	if i <= 0 || i == len(a.Type)-1 {
		return errors.Wrap(ErrUnknownAction, a.Type)
	}
	key, name := a.Type[:i], a.Type[i+1:]

	s.mu.Lock()
	def, ok := s.slices[key]
	if !ok {
		s.mu.Unlock()
		return errors.Wrap(ErrSliceNotRegistered, key)
	}
	nextSlice, err := def.reduce(name, s.state[key], a.Payload)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.state.with(key, nextSlice)
	s.state = next
	if s.historyMax > 0 {
		s.history = append(s.history, a.Type)
		if len(s.history) > s.historyMax {
			s.history = append([]string{}, s.history[len(s.history)-s.historyMax:]...)
		}
	}
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// History returns the most recently applied action types, oldest first.
func (s *Store) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.history...)
}

// Subscribe calls fn with the new root state after every registration and
// dispatch. Under concurrent dispatch a listener may see snapshots out of
// order; use GetState for the latest. The returned function removes the
// listener.
func (s *Store) Subscribe(fn func(RootState)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(append([]listener{}, s.listeners[:i]...), s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(root RootState) {
	s.mu.Lock()
	ls := append([]listener{}, s.listeners...)
	s.mu.Unlock()
	for _, l := range ls {
		l.fn(root)
	}
}

func (r RootState) with(key string, v any) RootState {
	next := make(RootState, len(r)+1)
	for k, old := range r {
		next[k] = old
	}
	next[key] = v
	return next
}
