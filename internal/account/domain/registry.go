package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	AdminTopic = "cms.admins"
	UserTopic  = "cms.users"
)

// AccountPayload es lo que se publica de una cuenta. Nunca incluye el hash.
type AccountPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func PayloadOf(a *Account) AccountPayload {
	return AccountPayload{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

// EventType forma "admin.created", "user.deleted"...
func EventType(role Role, action string) string {
	return string(role) + "." + action
}

// Topic devuelve el topic de Kafka de las cuentas del rol.
func Topic(role Role) string {
	if role == RoleAdmin {
		return AdminTopic
	}
	return UserTopic
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	registry := make(map[string]sharedEvents.EventMetadata)
	for _, role := range []Role{RoleAdmin, RoleUser} {
		for _, action := range []string{ActionCreated, ActionUpdated, ActionDeleted} {
			registry[EventType(role, action)] = sharedEvents.EventMetadata{
				Type:  reflect.TypeOf(AccountPayload{}),
				Topic: Topic(role),
			}
		}
	}
	return registry
}
