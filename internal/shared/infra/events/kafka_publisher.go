package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
)

// KafkaPublisher escribe eventos JSON en Kafka. Si el evento implementa bus.Router
// el mensaje va a su topic; si no, al topic por defecto del writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

var _ sharedBus.EventBus = (*KafkaPublisher)(nil)

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	msg, err := toMessage(event, p.writer.Topic)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error al publicar en Kafka", zap.String("topic", msg.Topic), zap.Error(err))
		return err
	}

	p.log.Debug("Evento publicado", zap.String("topic", msg.Topic), zap.ByteString("key", msg.Key))
	return nil
}

// toMessage construye el mensaje. Con topic fijo en el writer, kafka-go exige Topic vacío en el mensaje.
func toMessage(event interface{}, writerTopic string) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{Value: data}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = []byte(keyer.PartitionKey())
	}
	if router, ok := event.(sharedBus.Router); ok && writerTopic == "" {
		msg.Topic = router.Destination()
	}
	return msg, nil
}
