package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sparksupport/helpdesk/internal/api/http"
	"github.com/sparksupport/helpdesk/internal/api/http/handlers"
	"github.com/sparksupport/helpdesk/internal/attachments"
	"github.com/sparksupport/helpdesk/internal/auth"
	"github.com/sparksupport/helpdesk/internal/config"
	"github.com/sparksupport/helpdesk/internal/directory"
	"github.com/sparksupport/helpdesk/internal/events"
	"github.com/sparksupport/helpdesk/internal/observability"
	"github.com/sparksupport/helpdesk/internal/persistence"
	"github.com/sparksupport/helpdesk/internal/repository"
	"github.com/sparksupport/helpdesk/internal/service"
	"github.com/sparksupport/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	priorityRepo := repository.NewPriorityRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	faqRepo := repository.NewFAQRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	dir := directory.New(userRepo, categoryRepo, priorityRepo)
	eventBus := events.NewInMemoryDispatcher()
	worker.StartEventRelay(eventBus, logger, cfg.Notification)

	locks := service.NewTicketLocks()
	ticketService := service.NewTicketService(service.TicketDependencies{
		Directory:   dir,
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		Tx:          txRunner,
		Locks:       locks,
		Dispatcher:  eventBus,
	})
	csatService := service.NewCSATService(ticketRepo, txRunner, locks, eventBus)
	faqService := service.NewFAQService(faqRepo, redis.Client, cfg.Cache.FAQTTL, logger)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	fileStore := attachments.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, csatService),
		Messages:       handlers.NewMessagesHandler(ticketService, fileStore),
		StaffTickets:   handlers.NewStaffTicketsHandler(ticketService),
		Admin:          handlers.NewAdminHandler(dir, categoryRepo, priorityRepo, faqService),
		FAQ:            handlers.NewFAQPublicHandler(faqService),
		Notifications:  handlers.NewNotificationsHandler(notificationRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
