package domain

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses en el orden en que se documentan en la API.
var Statuses = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

// Article es una publicación escrita por un admin.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	Tags      []string  `json:"tags"`
	AdminID   int64     `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewArticle crea un artículo publicado por defecto.
func NewArticle(adminID int64, title, content string, status Status, tags []string) *Article {
	now := time.Now().UTC()
	if status == "" {
		status = StatusPublished
	}
	return &Article{
		Title:     strings.TrimSpace(title),
		Content:   content,
		Status:    status,
		Tags:      NormalizeTags(tags),
		AdminID:   adminID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *Article) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Content, validation.Required),
		validation.Field(&a.Status, validation.Required, validation.In(StatusDraft, StatusPublished, StatusArchived)),
		validation.Field(&a.AdminID, validation.Required),
	)
}

func (a *Article) PartitionKey() string {
	return strconv.FormatInt(a.ID, 10)
}

var _ sharedBus.Keyer = (*Article)(nil)

// NormalizeTags recorta, descarta vacíos y quita duplicados conservando el orden.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || strings.Contains(t, ",") {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// JoinTags y SplitTags traducen entre la lista y la columna "a,b,c".
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(raw, ","))
}
