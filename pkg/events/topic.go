package events

import "reflect"

// Topic is an event name bound to its payload type. Feature modules declare
// their topics as package-level values and register them with Declare before
// subscribing or emitting.
type Topic[P any] struct {
	name string
}

func NewTopic[P any](name string) Topic[P] {
	return Topic[P]{name: name}
}

func (t Topic[P]) Name() string {
	return t.name
}

func (t Topic[P]) payloadType() reflect.Type {
	return reflect.TypeOf((*P)(nil)).Elem()
}

// Empty is the payload of signal-only events such as "fetch started".
type Empty struct{}
