package events

import (
	stderrors "errors"
	"reflect"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TopicEvents is the pub/sub topic every emitted event is mirrored to.
const TopicEvents = "screenctl.events"

var (
	ErrUndeclaredEvent = errors.New("event not declared")
	ErrPayloadConflict = errors.New("event declared with a different payload type")
)

type handlerFunc func(payload any) error

type subscription struct {
	id int
	fn handlerFunc
}

// Bus is a synchronous publish/subscribe registry keyed by event name.
//
// Emit runs every subscriber of an event on the caller's goroutine, in
// subscription order. A failing subscriber does not stop the ones after it;
// their errors are joined and returned.
type Bus struct {
	mu       sync.RWMutex
	declared map[string]reflect.Type
	subs     map[string][]subscription
	nextID   int

	pub    message.Publisher
	logger zerolog.Logger
}

type Option func(*Bus)

// WithPublisher mirrors every emitted event onto pub as a JSON envelope.
func WithPublisher(pub message.Publisher) Option {
	return func(b *Bus) {
		b.pub = pub
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(b *Bus) {
		b.logger = l
	}
}

func NewBus(opts ...Option) *Bus {
	b := &Bus{
		declared: map[string]reflect.Type{},
		subs:     map[string][]subscription{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Declare registers the payload type of topic. Declaring the same name twice
// with the same type is a no-op.
func Declare[P any](b *Bus, t Topic[P]) error {
	return b.declare(t.Name(), t.payloadType())
}

// On subscribes fn to topic. The returned function removes the subscription.
func On[P any](b *Bus, t Topic[P], fn func(P) error) (func(), error) {
	if err := b.check(t.Name(), t.payloadType()); err != nil {
		return nil, err
	}
	return b.subscribe(t.Name(), func(payload any) error {
		return fn(payload.(P))
	}), nil
}

// Emit delivers payload to every current subscriber of topic.
func Emit[P any](b *Bus, t Topic[P], payload P) error {
	if err := b.check(t.Name(), t.payloadType()); err != nil {
		return err
	}
	return b.emit(t.Name(), payload)
}

func (b *Bus) declare(name string, typ reflect.Type) error {
	if name == "" {
		return errors.New("empty event name")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.declared[name]; ok {
		if prev != typ {
			return errors.Wrapf(ErrPayloadConflict, "%s: have %s, got %s", name, prev, typ)
		}
		return nil
	}
	b.declared[name] = typ
	return nil
}

func (b *Bus) check(name string, typ reflect.Type) error {
	b.mu.RLock()
	prev, ok := b.declared[name]
	b.mu.RUnlock()
	if !ok {
		return errors.Wrap(ErrUndeclaredEvent, name)
	}
	if prev != typ {
		return errors.Wrapf(ErrPayloadConflict, "%s: have %s, got %s", name, prev, typ)
	}
	return nil
}

func (b *Bus) subscribe(name string, fn handlerFunc) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[name]
		for i, s := range subs {
			if s.id == id {
				b.subs[name] = append(append([]subscription{}, subs[:i]...), subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) emit(name string, payload any) error {
	b.mu.RLock()
	subs := append([]subscription{}, b.subs[name]...)
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := b.call(name, s.fn, payload); err != nil {
			b.logger.Error().Err(err).Str("event", name).Msg("subscriber failed")
			errs = append(errs, err)
		}
	}

	b.mirror(name, payload)

	if len(errs) > 0 {
		return errors.Wrapf(stderrors.Join(errs...), "emit %s", name)
	}
	return nil
}

func (b *Bus) call(name string, fn handlerFunc, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("subscriber of %s panicked: %v", name, r)
		}
	}()
	return fn(payload)
}

func (b *Bus) mirror(name string, payload any) {
	if b.pub == nil {
		return
	}
	env, err := NewEnvelope(name, payload)
	if err != nil {
		b.logger.Warn().Err(err).Str("event", name).Msg("mirror envelope")
		return
	}
	bs, err := env.MarshalJSONBytes()
	if err != nil {
		b.logger.Warn().Err(err).Str("event", name).Msg("mirror envelope")
		return
	}
	if err := b.pub.Publish(TopicEvents, message.NewMessage(watermill.NewUUID(), bs)); err != nil {
		b.logger.Warn().Err(err).Str("event", name).Msg("mirror publish")
	}
}

// Declared describes one registered event.
type Declared struct {
	Name        string
	PayloadType string
	Subscribers int
}

// Declared lists every registered event sorted by name.
func (b *Bus) Declared() []Declared {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Declared, 0, len(b.declared))
	for name, typ := range b.declared {
		out = append(out, Declared{
			Name:        name,
			PayloadType: typ.String(),
			Subscribers: len(b.subs[name]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
