package relayer

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
)

// Worker publica los eventos pendientes de la tabla outbox.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventBus
	eventRegistry map[string]sharedEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventBus,
	registry map[string]sharedEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start hace polling hasta que ctx se cancela. Bloquea: lanzarlo en una goroutine.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica hasta batchSize eventos y devuelve cuántos quedaron marcados.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return 0
	}
	if len(events) > 0 {
		w.log.Debug("📬 Eventos encontrados para procesar", zap.Int("count", len(events)))
	}

	done := 0
	for _, evt := range events {
		if w.publishAndMark(ctx, evt) {
			done++
		}
	}
	return done
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		// Se queda pendiente: un despliegue posterior puede registrar el tipo.
		w.log.Error("Tipo de evento desconocido en registro", zap.String("event_type", evt.EventType))
		return false
	}

	integration, err := w.decode(evt, metadata)
	if err != nil {
		w.log.Error("Error al decodificar payload del evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return false
	}

	if err := w.publisher.Publish(ctx, integration); err != nil {
		w.log.Warn("⚠️ No se pudo publicar evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return false // se reintenta en el siguiente ciclo
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		w.log.Warn("⚠️ No se pudo marcar evento como procesado", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return false
	}

	w.log.Info("✅ Evento publicado y marcado", zap.String("event_id", evt.ID.String()), zap.String("event_type", evt.EventType))
	return true
}

// decode valida el payload contra el tipo registrado y lo envuelve en un IntegrationEvent.
func (w *Worker) decode(evt sharedDomain.OutboxEvent, metadata sharedEvents.EventMetadata) (sharedEvents.IntegrationEvent, error) {
	typed := reflect.New(metadata.Type).Interface()

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}
	if err := json.Unmarshal(raw, typed); err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}
	data, err := json.Marshal(typed)
	if err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}

	return sharedEvents.IntegrationEvent{
		Type:      evt.EventType,
		Timestamp: evt.CreatedAt,
		Data:      data,
		Key:       evt.AggregateID,
		Topic:     metadata.Topic,
	}, nil
}
