package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/account/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// ErrCredentialsRequired se devuelve cuando falta email o contraseña.
var ErrCredentialsRequired = errors.New("email and password are required")

// AccountService gestiona las cuentas de un rol. other es el repositorio del rol
// contrario: un email no puede repetirse entre tablas al actualizar.
type AccountService struct {
	repo  domain.AccountRepository
	other domain.AccountRepository
	log   *zap.Logger
	opts  []query.Option
}

func NewAccountService(repo, other domain.AccountRepository, log *zap.Logger, opts ...query.Option) *AccountService {
	return &AccountService{repo: repo, other: other, log: log, opts: opts}
}

func (s *AccountService) Role() domain.Role {
	return s.repo.Role()
}

func (s *AccountService) newEvent(a *domain.Account, action string) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(string(a.Role), a.PartitionKey(), domain.EventType(a.Role, action), domain.PayloadOf(a))
}

// Create da de alta una cuenta. Solo comprueba duplicados en su propia tabla.
func (s *AccountService) Create(ctx context.Context, email, password, name string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	taken, err := s.repo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.EmailTakenError{Role: s.repo.Role()}
	}

	account, err := domain.NewAccount(s.repo.Role(), email, name, password)
	if err != nil {
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAccount, err)
	}

	if err := s.repo.Create(ctx, account, func(a *domain.Account) sharedDomain.OutboxEvent {
		return s.newEvent(a, domain.ActionCreated)
	}); err != nil {
		return nil, err
	}

	s.log.Info("👤 Cuenta creada", zap.String("role", string(account.Role)), zap.Int64("id", account.ID))
	return account, nil
}

// Get devuelve ErrAccountNotFound si la cuenta no existe.
func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

// AccountChanges son los campos opcionales de una actualización. Vacío equivale a ausente.
type AccountChanges struct {
	Email    string
	Name     *string
	Password string
}

// Update aplica los cambios. Un email nuevo no puede existir en la misma tabla
// (salvo la propia cuenta) ni en la tabla del otro rol.
func (s *AccountService) Update(ctx context.Context, id int64, changes AccountChanges) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(changes.Email); email != "" {
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		account.Email = email
	}
	if changes.Name != nil {
		account.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Password != "" {
		if err := account.SetPassword(changes.Password); err != nil {
			return nil, err
		}
	}
	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAccount, err)
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, account, s.newEvent(account, domain.ActionUpdated)); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	taken, err := s.repo.EmailExists(ctx, email, selfID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.EmailTakenError{Role: s.repo.Role()}
	}

	if s.other == nil {
		return nil
	}
	taken, err = s.other.EmailExists(ctx, email, 0)
	if err != nil {
		return err
	}
	if taken {
		return &domain.EmailTakenError{Role: s.other.Role()}
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id, s.newEvent(account, domain.ActionDeleted)); err != nil {
		return err
	}

	s.log.Info("🗑️ Cuenta eliminada", zap.String("role", string(account.Role)), zap.Int64("id", id))
	return nil
}

// List pagina las cuentas del rol con filtros y orden de domain.UserListing.
func (s *AccountService) List(ctx context.Context, params query.Params) (query.Page[*domain.Account], error) {
	return s.repo.List(ctx, params, domain.UserListing, s.opts...)
}
