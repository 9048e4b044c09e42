package tui

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const maxPayloadText = 160

// EventForwarder reads the bus mirror and hands each event to the program as
// an EventLogAppendMsg. It is a passive observer; nothing it does feeds back
// into the bus.
type EventForwarder struct {
	Sub    message.Subscriber
	Send   func(tea.Msg)
	Logger zerolog.Logger
}

// Run subscribes and forwards until ctx is done.
func (f *EventForwarder) Run(ctx context.Context) error {
	msgs, err := f.Subscribe(ctx)
	if err != nil {
		return err
	}
	return f.Forward(ctx, msgs)
}

// Subscribe opens the mirror subscription. Call it before the first event
// that should reach the log is emitted; the pub/sub does not replay.
func (f *EventForwarder) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	if f.Sub == nil {
		return nil, errors.New("missing Subscriber")
	}
	msgs, err := f.Sub.Subscribe(ctx, TopicEvents)
	if err != nil {
		return nil, errors.Wrap(err, "subscribe to events")
	}
	return msgs, nil
}

// Forward hands every message from msgs to the program until ctx is done or
// msgs is closed.
func (f *EventForwarder) Forward(ctx context.Context, msgs <-chan *message.Message) error {
	if f.Send == nil {
		return errors.New("missing Send")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			entry, err := EntryFromPayload(m.Payload)
			m.Ack()
			if err != nil {
				f.Logger.Warn().Err(err).Str("uuid", m.UUID).Msg("dropping malformed event envelope")
				continue
			}
			f.Send(EventLogAppendMsg{Entry: entry})
		}
	}
}

// EntryFromPayload decodes a mirrored envelope into a log line.
func EntryFromPayload(b []byte) (EventLogEntry, error) {
	env, err := events.ParseEnvelope(b)
	if err != nil {
		return EventLogEntry{}, err
	}
	text := env.Type
	if p := compactPayload(env.Payload); p != "" {
		text += " " + p
	}
	return EventLogEntry{
		At:    env.At,
		Type:  env.Type,
		Level: levelFor(env.Type),
		Text:  text,
	}, nil
}

func compactPayload(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	s := buf.String()
	if r := []rune(s); len(r) > maxPayloadText {
		s = string(r[:maxPayloadText-1]) + "…"
	}
	return s
}
