package domain

import "github.com/davicafu/hexacms/internal/shared/infra/platform/query"

var accountFields = []string{"id", "email", "name", "created_at", "updated_at"}

// Admins y Users son los registros de campos consultables de cada tabla.
var (
	Admins = query.NewEntity(RoleAdmin.Table(), accountFields...)
	Users  = query.NewEntity(RoleUser.Table(), accountFields...)
)

// EntityFor devuelve el registro de la tabla del rol.
func EntityFor(role Role) *query.Entity {
	if role == RoleAdmin {
		return Admins
	}
	return Users
}

// UserListing es el listado de usuarios del panel de administración.
var UserListing = query.Listing{
	Filters: query.FilterSpec{
		query.Fuzzy("email"),
		query.Range("created_at", query.CastTime),
	},
	Logic:          query.OpAnd,
	Sortable:       []string{"email", "created_at", "updated_at"},
	DefaultSort:    "-created_at",
	DefaultPerPage: 10,
}
