package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/article/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	sharedCache "github.com/davicafu/hexacms/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/hexacms/internal/shared/infra/utils"
)

// ArticleService define los casos de uso de Article.
type ArticleService struct {
	repo     domain.ArticleRepository
	cache    sharedCache.Cache
	log      *zap.Logger
	cacheTTL int
	opts     []query.Option
}

func NewArticleService(repo domain.ArticleRepository, cache sharedCache.Cache, log *zap.Logger, cacheTTL time.Duration, opts ...query.Option) *ArticleService {
	return &ArticleService{
		repo:     repo,
		cache:    cache,
		log:      log,
		cacheTTL: int(cacheTTL.Seconds()),
		opts:     opts,
	}
}

// ArticleInput son los campos que llegan del cliente. Un string vacío equivale a ausente.
type ArticleInput struct {
	Title   string
	Content string
	Status  *string
	Tags    []string
}

func (in ArticleInput) status() (domain.Status, error) {
	if in.Status == nil {
		return "", nil
	}
	s := domain.Status(strings.ToLower(strings.TrimSpace(*in.Status)))
	switch s {
	case domain.StatusDraft, domain.StatusPublished, domain.StatusArchived:
		return s, nil
	}
	return "", fmt.Errorf("%w: status must be one of %s", domain.ErrInvalidArticle, strings.Join(domain.Statuses, ", "))
}

func newEvent(eventType string, id int64, payload interface{}) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent("article", fmt.Sprint(id), eventType, payload)
}

// Create publica un artículo a nombre de adminID.
func (s *ArticleService) Create(ctx context.Context, adminID int64, in ArticleInput) (*domain.Article, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrTitleContentRequired
	}
	status, err := in.status()
	if err != nil {
		return nil, err
	}

	article := domain.NewArticle(adminID, in.Title, in.Content, status, in.Tags)
	if err := article.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArticle, err)
	}

	if err := s.repo.Create(ctx, article, func(a *domain.Article) sharedDomain.OutboxEvent {
		return newEvent(domain.ArticleCreated, a.ID, a)
	}); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, domain.CacheKeyByID(article.ID), article, s.cacheTTL, s.log)
	s.log.Info("📝 Artículo creado", zap.Int64("id", article.ID), zap.Int64("admin_id", adminID))
	return article, nil
}

// Get obtiene un artículo, primero desde caché.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	// 1. Intentar cache
	if s.cache != nil {
		var cached domain.Article
		if ok, _ := s.cache.Get(ctx, domain.CacheKeyByID(id), &cached); ok {
			return &cached, nil
		}
	}

	// 2. Ir al repo con reintentos; un "no existe" no se reintenta
	var article *domain.Article
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		article, err = s.repo.GetByID(ctx, id)
		if errors.Is(err, domain.ErrArticleNotFound) {
			return backoff.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Actualizar cache en background sin bloquear la respuesta
	sharedCache.AsyncCacheSet(s.cache, domain.CacheKeyByID(id), article, s.cacheTTL, s.log)
	return article, nil
}

// Update aplica los campos no vacíos.
func (s *ArticleService) Update(ctx context.Context, id int64, in ArticleInput) (*domain.Article, error) {
	status, err := in.status()
	if err != nil {
		return nil, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		article.Title = title
	}
	if strings.TrimSpace(in.Content) != "" {
		article.Content = in.Content
	}
	if status != "" {
		article.Status = status
	}
	if in.Tags != nil {
		article.Tags = domain.NormalizeTags(in.Tags)
	}
	if err := article.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArticle, err)
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, article, newEvent(domain.ArticleUpdated, id, article)); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, domain.CacheKeyByID(id), article, s.cacheTTL, s.log)
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	payload := domain.ArticleDeletedPayload{ID: id, AdminID: article.AdminID}
	if err := s.repo.DeleteByID(ctx, id, newEvent(domain.ArticleDeleted, id, payload)); err != nil {
		return err
	}

	s.Invalidate(ctx, id)
	s.log.Info("🗑️ Artículo eliminado", zap.Int64("id", id))
	return nil
}

// Invalidate descarta la copia en caché. Lo usan el borrado y el consumidor de eventos.
func (s *ArticleService) Invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, domain.CacheKeyByID(id)); err != nil {
		s.log.Warn("Fallo al borrar de la caché", zap.Int64("id", id), zap.Error(err))
	}
}

// List pagina los artículos según la declaración de listado (panel o pública).
func (s *ArticleService) List(ctx context.Context, params query.Params, l query.Listing) (query.Page[*domain.Article], error) {
	return s.repo.List(ctx, params, l, s.opts...)
}
