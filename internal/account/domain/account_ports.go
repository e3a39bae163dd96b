package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already exists")
	ErrInvalidAccount  = errors.New("invalid account")
)

// EmailTakenError indica en qué tabla está repetido el email.
type EmailTakenError struct {
	Role Role
}

func (e *EmailTakenError) Error() string {
	return "Email already exists in " + e.Role.Table()
}

func (e *EmailTakenError) Is(target error) bool {
	return target == ErrEmailTaken
}

// ---------- Interfaces (Ports) ----------

// EventFactory construye el evento outbox una vez conocido el ID asignado por la base.
type EventFactory func(a *Account) sharedDomain.OutboxEvent

// AccountRepository persiste las cuentas de un único rol.
type AccountRepository interface {
	Role() Role

	// Create asigna a.ID y guarda el evento en la misma transacción.
	Create(ctx context.Context, a *Account, event EventFactory) error

	// Debe devolver ErrAccountNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// Debe devolver ErrAccountNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// EmailExists ignora la cuenta exceptID (0 para no excluir ninguna).
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)

	// Debe devolver ErrAccountNotFound si no existe.
	Update(ctx context.Context, a *Account, evt sharedDomain.OutboxEvent) error

	// UpdatePassword cambia solo el hash; no genera evento.
	UpdatePassword(ctx context.Context, id int64, hash string) error

	// Debe devolver ErrAccountNotFound si no existe.
	DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error

	// List aplica el listado declarativo sobre la tabla del rol.
	List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*Account], error)
}
