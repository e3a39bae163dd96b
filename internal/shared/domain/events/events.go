package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// IntegrationEvent es el sobre que viaja por el bus.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`

	Key   string `json:"-"`
	Topic string `json:"-"`
}

// PartitionKey agrupa los eventos de un mismo agregado en la misma partición.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// Destination devuelve el topic de destino.
func (e IntegrationEvent) Destination() string {
	return e.Topic
}

// EventMetadata asocia un tipo de evento con su payload y su topic.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// MergeRegistries combina los registros de varios agregados.
func MergeRegistries(registries ...map[string]EventMetadata) map[string]EventMetadata {
	out := make(map[string]EventMetadata)
	for _, r := range registries {
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}
