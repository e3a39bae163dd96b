package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler lo implementa cualquier consumidor de eventos de integración.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// ConsumerAdapter lee de un topic de Kafka y delega cada mensaje en el handler.
type ConsumerAdapter struct {
	reader  *kafka.Reader
	handler MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader *kafka.Reader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{reader: reader, handler: handler, log: log}
}

// Start consume en una goroutine hasta que ctx se cancela.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	topic := c.reader.Config().Topic
	c.log.Info("🎧 Consumidor Kafka iniciado", zap.String("topic", topic), zap.Strings("brokers", c.reader.Config().Brokers))

	go func() {
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.log.Info("Consumidor Kafka detenido", zap.String("topic", topic))
					return
				}
				c.log.Error("Error al leer de Kafka", zap.String("topic", topic), zap.Error(err))
				continue
			}
			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
}

// ConsumeChannel entrega al handler los mensajes del bus en memoria.
func ConsumeChannel(ctx context.Context, ch <-chan []byte, handler MessageHandler, log *zap.Logger) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info("Consumidor en memoria detenido")
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				handler.HandleMessage(ctx, "", payload)
			}
		}
	}()
}
