package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
)

// InMemoryEventBus reparte eventos serializados entre suscriptores locales.
// Un suscriptor lento pierde mensajes en lugar de bloquear al publicador.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	subscribers []chan []byte
	topic       string
}

var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{topic: topic}
}

func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

func (b *InMemoryEventBus) Publish(_ context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

// Subscribe registra un oyente con el buffer indicado.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	ch := make(chan []byte, bufferSize)

	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}
