package domain

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
)

// Role separa administradores y usuarios finales. Cada rol vive en su propia tabla.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Table devuelve la tabla que almacena las cuentas del rol.
func (r Role) Table() string {
	if r == RoleAdmin {
		return "admins"
	}
	return "users"
}

// Other devuelve el rol contrario, usado en la comprobación de emails entre tablas.
func (r Role) Other() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account es un administrador o un usuario. El hash nunca se serializa.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount prepara una cuenta con la contraseña ya hasheada.
func NewAccount(role Role, email, name, password string) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.SetPassword(password); err != nil {
		return nil, err
	}
	return a, nil
}

// SetPassword guarda el hash bcrypt de plain.
func (a *Account) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword compara plain con el hash almacenado.
func (a *Account) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

func (a *Account) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Email, validation.Required, validation.Length(1, 120)),
		validation.Field(&a.Name, validation.Length(0, 120)),
		validation.Field(&a.Role, validation.Required, validation.In(RoleAdmin, RoleUser)),
	)
}

func (a *Account) PartitionKey() string {
	return strconv.FormatInt(a.ID, 10)
}

// Subject es el identificador que viaja en el claim "sub" de los tokens.
func (a *Account) Subject() string {
	return a.PartitionKey()
}

var _ sharedBus.Keyer = (*Account)(nil)
