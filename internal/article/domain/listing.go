package domain

import (
	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// AuthorRelation es el join articles -> admins.
const AuthorRelation = "author"

var Articles = query.NewEntity("articles",
	"id", "title", "content", "status", "tags", "admin_id", "created_at", "updated_at",
).WithRelation(AuthorRelation, accountDomain.Admins, "admins.id = articles.admin_id")

var (
	sortable    = []string{"title", "created_at", "updated_at"}
	defaultSort = "-created_at"
)

// AdminListing es el listado del panel: admite filtrar por el autor.
var AdminListing = query.Listing{
	Filters: query.FilterSpec{
		query.Fuzzy("title"),
		query.Fuzzy("content"),
		query.Range("admin_id", query.CastInt),
		query.Range("created_at", query.CastTime),
		query.RelatedTo("author_email", accountDomain.Admins, "email"),
		query.RelatedTo("author_name", accountDomain.Admins, "name").Via(AuthorRelation),
		query.Enum("status", Statuses...),
		query.Array("tags"),
	},
	Logic:          query.OpAnd,
	Sortable:       sortable,
	DefaultSort:    defaultSort,
	DefaultPerPage: 10,
}

// UserListing es el listado público, sin filtros sobre el autor.
var UserListing = query.Listing{
	Filters: query.FilterSpec{
		query.Fuzzy("title"),
		query.Fuzzy("content"),
		query.Range("admin_id", query.CastInt),
		query.Range("created_at", query.CastTime),
		query.Enum("status", Statuses...),
		query.Array("tags"),
	},
	Logic:          query.OpAnd,
	Sortable:       sortable,
	DefaultSort:    defaultSort,
	DefaultPerPage: 10,
}
