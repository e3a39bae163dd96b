package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
)

const (
	ArticleCreated = "article.created"
	ArticleUpdated = "article.updated"
	ArticleDeleted = "article.deleted"
)

const ArticleTopic = "cms.articles"

// ArticleDeletedPayload es el payload de un borrado.
type ArticleDeletedPayload struct {
	ID      int64 `json:"id"`
	AdminID int64 `json:"admin_id"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		ArticleCreated: {Type: reflect.TypeOf(Article{}), Topic: ArticleTopic},
		ArticleUpdated: {Type: reflect.TypeOf(Article{}), Topic: ArticleTopic},
		ArticleDeleted: {Type: reflect.TypeOf(ArticleDeletedPayload{}), Topic: ArticleTopic},
	}
}
