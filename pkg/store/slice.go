package store

import (
	"github.com/pkg/errors"
)

// Action is a request to apply one named reducer of one slice.
// Type is "<slice key>/<reducer name>".
type Action struct {
	Type    string
	Payload any
}

// SliceDef is implemented by *Slice[S]. It lets the store hold slices of
// different state types.
type SliceDef interface {
	Key() string
	initialAny() any
	reduce(name string, state any, payload any) (any, error)
	reducerNames() []string
}

type reducer[S any] func(state S, payload any) (S, error)

// Slice is a named partition of the root state with its own reducers.
type Slice[S any] struct {
	key      string
	initial  S
	reducers map[string]reducer[S]
	order    []string
}

func NewSlice[S any](key string, initial S) *Slice[S] {
	return &Slice[S]{
		key:      key,
		initial:  initial,
		reducers: map[string]reducer[S]{},
	}
}

func (s *Slice[S]) Key() string {
	return s.key
}

// Initial returns the statically declared initial state.
func (s *Slice[S]) Initial() S {
	return s.initial
}

// Select returns the slice's state from root, or the initial state if the
// slice has not been registered yet.
func (s *Slice[S]) Select(root RootState) S {
	if v, ok := root[s.key]; ok {
		if st, ok := v.(S); ok {
			return st
		}
	}
	return s.initial
}

func (s *Slice[S]) initialAny() any {
	return s.initial
}

func (s *Slice[S]) reducerNames() []string {
	return append([]string{}, s.order...)
}

func (s *Slice[S]) reduce(name string, state any, payload any) (any, error) {
	r, ok := s.reducers[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAction, "%s/%s", s.key, name)
	}
	st, ok := state.(S)
	if !ok {
		st = s.initial
	}
	return r(st, payload)
}

// ActionCreator builds actions for one reducer with a typed payload.
type ActionCreator[P any] struct {
	typ string
}

func (a ActionCreator[P]) Type() string {
	return a.typ
}

func (a ActionCreator[P]) With(payload P) Action {
	return Action{Type: a.typ, Payload: payload}
}

// Reduce adds the reducer name to s. fn must be a pure transition from the
// current state and payload to the next state. It panics if name is already
// taken, since slices are assembled at init time.
func Reduce[S, P any](s *Slice[S], name string, fn func(S, P) S) ActionCreator[P] {
	if _, ok := s.reducers[name]; ok {
		panic("store: duplicate reducer " + s.key + "/" + name)
	}
	typ := s.key + "/" + name
	s.reducers[name] = func(state S, payload any) (S, error) {
		p, ok := payload.(P)
		if !ok {
			var zero P
			return state, errors.Wrapf(ErrPayloadType, "%s: want %T, got %T", typ, zero, payload)
		}
		return fn(state, p), nil
	}
	s.order = append(s.order, name)
	return ActionCreator[P]{typ: typ}
}

// Select is the function form of Slice.Select.
func Select[S any](root RootState, s *Slice[S]) S {
	return s.Select(root)
}
