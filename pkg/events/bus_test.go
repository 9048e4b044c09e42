package events

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type selected struct {
	ID string `json:"id"`
}

var (
	topicSelected = NewTopic[selected]("test/items/selected")
	topicStarted  = NewTopic[Empty]("test/items/started")
)

func newDeclaredBus(t *testing.T, opts ...Option) *Bus {
	t.Helper()
	b := NewBus(opts...)
	require.NoError(t, Declare(b, topicSelected))
	require.NoError(t, Declare(b, topicStarted))
	return b
}

func TestBus_EmitRunsSubscribersInOrder(t *testing.T) {
	b := newDeclaredBus(t)

	var got []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		_, err := On(b, topicSelected, func(p selected) error {
			got = append(got, name+":"+p.ID)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, Emit(b, topicSelected, selected{ID: "m1"}))
	require.Equal(t, []string{"a:m1", "b:m1", "c:m1"}, got)
}

func TestBus_FailingSubscriberDoesNotAbortOthers(t *testing.T) {
	b := newDeclaredBus(t)

	var ran []string
	_, err := On(b, topicStarted, func(Empty) error {
		ran = append(ran, "first")
		return errors.New("boom")
	})
	require.NoError(t, err)
	_, err = On(b, topicStarted, func(Empty) error {
		ran = append(ran, "second")
		panic("kaboom")
	})
	require.NoError(t, err)
	_, err = On(b, topicStarted, func(Empty) error {
		ran = append(ran, "third")
		return nil
	})
	require.NoError(t, err)

	err = Emit(b, topicStarted, Empty{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
	require.Contains(t, err.Error(), "kaboom")
	require.Equal(t, []string{"first", "second", "third"}, ran)
}

func TestBus_UndeclaredEvent(t *testing.T) {
	b := NewBus()

	err := Emit(b, topicSelected, selected{ID: "x"})
	require.True(t, stderrors.Is(err, ErrUndeclaredEvent))

	_, err = On(b, topicSelected, func(selected) error { return nil })
	require.True(t, stderrors.Is(err, ErrUndeclaredEvent))
}

func TestBus_DeclareConflict(t *testing.T) {
	b := newDeclaredBus(t)

	require.NoError(t, Declare(b, topicSelected))
	clash := NewTopic[Empty](topicSelected.Name())
	err := Declare(b, clash)
	require.True(t, stderrors.Is(err, ErrPayloadConflict))

	err = Emit(b, clash, Empty{})
	require.True(t, stderrors.Is(err, ErrPayloadConflict))
}

func TestBus_Unsubscribe(t *testing.T) {
	b := newDeclaredBus(t)

	n := 0
	off, err := On(b, topicStarted, func(Empty) error {
		n++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, Emit(b, topicStarted, Empty{}))
	off()
	require.NoError(t, Emit(b, topicStarted, Empty{}))
	require.Equal(t, 1, n)
}

func TestBus_Declared(t *testing.T) {
	b := newDeclaredBus(t)
	_, err := On(b, topicSelected, func(selected) error { return nil })
	require.NoError(t, err)

	d := b.Declared()
	require.Len(t, d, 2)
	require.Equal(t, "test/items/selected", d[0].Name)
	require.Equal(t, 1, d[0].Subscribers)
	require.Equal(t, "events.selected", d[0].PayloadType)
	require.Equal(t, "test/items/started", d[1].Name)
}

func TestBus_MirrorsToPubSub(t *testing.T) {
	ps := NewPubSub(zerolog.Nop())
	defer func() { _ = ps.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msgs, err := ps.Subscribe(ctx, TopicEvents)
	require.NoError(t, err)

	b := newDeclaredBus(t, WithPublisher(ps))
	require.NoError(t, Emit(b, topicSelected, selected{ID: "m7"}))

	select {
	case msg := <-msgs:
		msg.Ack()
		env, err := ParseEnvelope(msg.Payload)
		require.NoError(t, err)
		require.Equal(t, "test/items/selected", env.Type)
		require.JSONEq(t, `{"id":"m7"}`, string(env.Payload))
	case <-ctx.Done():
		t.Fatal("no mirrored message")
	}
}

func TestParseEnvelope_MissingType(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"payload":{}}`))
	require.Error(t, err)
}
