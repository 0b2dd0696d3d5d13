package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/config"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/database"
	"github.com/xavierca1/tillit-parceiros/internal/infra/http/handlers"
	"github.com/xavierca1/tillit-parceiros/internal/infra/http/middleware"
	"github.com/xavierca1/tillit-parceiros/internal/infra/integration/kommo"
	"github.com/xavierca1/tillit-parceiros/internal/infra/mail"
	"github.com/xavierca1/tillit-parceiros/internal/infra/memory"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
	"github.com/xavierca1/tillit-parceiros/internal/infra/worker"
	"github.com/xavierca1/tillit-parceiros/internal/logger"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Repositórios
	var (
		db           *sql.DB
		referralRepo entity.ReferralRepositoryInterface
		partnerRepo  entity.PartnerRepositoryInterface
		pixRepo      entity.PixRepositoryInterface
	)
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("falha ao conectar no banco", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal("falha ao migrar banco", zap.Error(err))
		}
		referralRepo = database.NewReferralRepository(db)
		partnerRepo = database.NewPartnerRepository(db)
		pixRepo = database.NewPixRepository(db)
	} else {
		log.Warn("DATABASE_URL vazio: usando armazenamento em memória")
		store := memory.NewStore()
		referralRepo = store.Referrals()
		partnerRepo = store.Partners()
		pixRepo = store.Pix()
	}

	// 2. Fila + worker de notificações
	var (
		producer usecase.QueueProducerInterface = &queue.NoopProducer{Logger: log}
		amqpConn *amqp091.Connection
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal("falha ao conectar no RabbitMQ", zap.Error(err))
		}
		defer rabbitMQ.Close()
		amqpConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Ch)

		var notifier queue.Notifier
		if cfg.Mail.Enabled() {
			notifier = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
		}
		var crm queue.CRMClient
		if cfg.Kommo.Enabled() {
			crm = kommo.NewClient(cfg.Kommo.BaseURL, cfg.Kommo.Token, cfg.Kommo.StatusID, log)
		}

		w := queue.NewWorker(rabbitMQ.Ch, notifier, crm, log)
		w.OnIntegrationError = middleware.RecordIntegrationError
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				log.Error("worker de notificações parou", zap.Error(err))
			}
		}()
	} else {
		log.Warn("RABBITMQ_URL vazio: eventos serão descartados")
	}

	// 3. Rate limit de autenticação
	var (
		rdb     *redis.Client
		limiter middleware.Limiter
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.AuthRateLimit, time.Minute, "parceiros:auth")
	} else {
		memLimiter := middleware.NewMemoryLimiter(cfg.AuthRateLimit, time.Minute)
		go memLimiter.Cleanup(ctx, 10*time.Minute)
		limiter = memLimiter
	}

	// 4. Worker da janela de repasse
	payoutWorker := worker.NewPayoutWindowWorker(referralRepo, log, cfg.PayoutCheckInterval)
	payoutWorker.OnOverdue = middleware.SetPayoutsOverdue
	go payoutWorker.Start(ctx)

	// 5. UseCases
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH vazio: login de admin desativado")
	}

	createReferralUC := usecase.NewCreateReferralUseCase(referralRepo, partnerRepo, producer, log)
	updateStatusUC := usecase.NewUpdateReferralStatusUseCase(referralRepo, partnerRepo, producer, log)
	queryUC := usecase.NewReferralQueryUseCase(referralRepo)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo, producer, log)
	authUC := usecase.NewAuthUseCase(partnerRepo, tokens, cfg.AdminEmail, cfg.AdminPasswordHash, log)
	pixUC := usecase.NewPixUseCase(pixRepo)

	// 6. Handlers + Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Health:      handlers.NewHealthHandler(db, amqpConn, rdb),
		Auth:        handlers.NewAuthHandler(authUC, partnerUC, log),
		Referral:    handlers.NewReferralHandler(createReferralUC, queryUC, log),
		Admin:       handlers.NewAdminHandler(queryUC, updateStatusUC, partnerUC, log),
		Pix:         handlers.NewPixHandler(pixUC, log),
		Tokens:      tokens,
		AuthLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API de parceiros no ar", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("falha no servidor HTTP", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("desligando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown HTTP com erro", zap.Error(err))
	}
}
