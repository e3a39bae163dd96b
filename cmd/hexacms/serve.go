package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	articleEvents "github.com/davicafu/hexacms/internal/article/infra/inbound/events"
	"github.com/davicafu/hexacms/internal/server"
	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
	infraEvents "github.com/davicafu/hexacms/internal/shared/infra/events"
	sharedBus "github.com/davicafu/hexacms/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexacms/internal/shared/infra/platform/cache"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	infraRelayer "github.com/davicafu/hexacms/internal/shared/infra/relayer"
)

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	log := a.log
	cfg := a.cfg

	// ---------------- DB ----------------
	if err := sharedDB.Migrate(a.dialect(), cfg.DatabaseURL, sharedDB.Up); err != nil {
		return err
	}

	// ---------------- Cache ----------------
	cache, closeCache := a.newCache(ctx)
	defer closeCache()

	svc, err := a.connect(ctx, cache)
	if err != nil {
		return err
	}
	defer svc.close(log)

	// ---------------- Events ---------------
	consumer := articleEvents.NewArticleConsumer(svc.articles, log)
	publisher, closeBus := a.newEventBus(ctx, consumer)
	defer closeBus()

	// ------------ Outbox Worker ------------
	registry := sharedEvents.MergeRegistries(
		accountDomain.NewEventRegistry(),
		articleDomain.NewEventRegistry(),
	)
	worker := infraRelayer.NewOutboxWorker(sharedDB.NewOutboxRepo(svc.db, a.dialect()), publisher, registry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go worker.Start(ctx)

	// ---------------- HTTP ----------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Services{
		Auth:     svc.auth,
		Users:    svc.users,
		Articles: svc.articles,
	}, server.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
		LoginRateBurst: cfg.LoginRateBurst,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Servidor escuchando", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Apagando el servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCache usa Redis si responde y si no cae a la caché en memoria.
func (a *app) newCache(ctx context.Context) (sharedCache.Cache, func()) {
	rdb := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		a.log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		_ = rdb.Close()
		mem := sharedCache.NewInMemoryCache(a.cfg.CacheTTL, 3*a.cfg.CacheTTL)
		return mem, mem.Stop
	}

	a.log.Info("✅ Redis conectado, cache habilitado", zap.String("addr", a.cfg.RedisAddr))
	return sharedCache.NewRedisCache(rdb, "hexacms:", a.cfg.CacheTTL), func() { _ = rdb.Close() }
}

// newEventBus arranca el consumidor de artículos sobre Kafka o sobre el bus en memoria.
func (a *app) newEventBus(ctx context.Context, consumer infraEvents.MessageHandler) (sharedBus.EventBus, func()) {
	if !a.cfg.UseKafka {
		a.log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")
		bus := infraEvents.NewInMemoryEventBus(articleDomain.ArticleTopic)
		infraEvents.ConsumeChannel(ctx, bus.Subscribe(64), consumer, a.log)
		return bus, func() {}
	}

	a.log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", a.cfg.KafkaBrokers))

	// Sin topic fijo: cada evento elige el suyo.
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(a.cfg.KafkaBrokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	// Un grupo por instancia: todas deben invalidar su caché.
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  a.cfg.KafkaBrokers,
		Topic:    articleDomain.ArticleTopic,
		GroupID:  "hexacms-article-cache-" + uuid.NewString(),
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	infraEvents.NewConsumerAdapter(reader, consumer, a.log).Start(ctx)

	return infraEvents.NewKafkaPublisher(writer, a.log), func() {
		_ = writer.Close()
		_ = reader.Close()
	}
}
