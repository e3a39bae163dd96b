package bus

import "context"

type Keyer interface {
	PartitionKey() string
}

// Router lo implementan los eventos que eligen su topic.
type Router interface {
	Destination() string
}

// La semántica de topic y el formato del payload los deciden los adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
