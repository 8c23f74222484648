package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	eventUsecases "vigil/internal/application/event/usecases"
	frUsecases "vigil/internal/application/fieldreport/usecases"
	incUsecases "vigil/internal/application/incident/usecases"
	typeUsecases "vigil/internal/application/incidenttype/usecases"
	"vigil/internal/domain/access"
	"vigil/internal/infrastructure/auth"
	"vigil/internal/infrastructure/config"
	"vigil/internal/infrastructure/directory"
	"vigil/internal/infrastructure/permission"
	"vigil/internal/infrastructure/pubsub"
	"vigil/internal/infrastructure/repository"
	"vigil/internal/interfaces/http/handlers"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/interfaces/http/routes"
	"vigil/internal/shared/db"
	"vigil/internal/shared/logger"
)

// Container wires repositories, use cases, handlers and middleware into a
// runnable HTTP server, and owns the lifecycle of the background pieces
// (change notifier, Redis relay).
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	notifier    *pubsub.Notifier
	redisClient *redis.Client

	enforcer *permission.Enforcer
	server   *http.Server
}

func NewContainer(database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
	}

	c.engine.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	c.engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	c.engine.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	// Infrastructure
	eventRepo := repository.NewEventRepository(database)
	incidentRepo := repository.NewIncidentRepository(database)
	fieldReportRepo := repository.NewFieldReportRepository(database)
	entryRepo := repository.NewReportEntryRepository(database)
	typeRepo := repository.NewIncidentTypeRepository(database)
	accessRepo := repository.NewAccessEntryRepository(database)

	txManager := db.NewTransactionManager(database)
	evaluator := access.NewEvaluator(accessRepo, log)

	streets, err := directory.Load(cfg.Directory.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load street directory: %w", err)
	}

	enforcer, err := permission.NewEnforcer(database, cfg.Admin.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize admin enforcer: %w", err)
	}
	c.enforcer = enforcer

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	c.notifier = pubsub.NewNotifier(&cfg.Stream, log)
	if cfg.Redis.Enabled {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		// SetRelay owns both directions: it forwards local publishes to
		// Redis and folds foreign changes into the local stream without
		// republishing them, so instances never echo each other's changes.
		c.notifier.SetRelay(pubsub.NewRedisRelay(c.redisClient, log))
	}

	// Use cases
	createEvent := eventUsecases.NewCreateEventUseCase(eventRepo, log)
	listEvents := eventUsecases.NewListEventsUseCase(eventRepo, log)
	setAccessEntry := eventUsecases.NewSetAccessEntryUseCase(accessRepo, log)
	removeAccessEntry := eventUsecases.NewRemoveAccessEntryUseCase(accessRepo, log)
	listAccessEntries := eventUsecases.NewListAccessEntriesUseCase(accessRepo, log)

	createIncident := incUsecases.NewCreateIncidentUseCase(incidentRepo, entryRepo, txManager, c.notifier, streets, log)
	updateIncident := incUsecases.NewUpdateIncidentUseCase(incidentRepo, entryRepo, txManager, c.notifier, streets, log)
	getIncident := incUsecases.NewGetIncidentUseCase(incidentRepo, fieldReportRepo, log)
	listIncidents := incUsecases.NewListIncidentsUseCase(incidentRepo, log)
	appendEntry := incUsecases.NewAppendEntryUseCase(incidentRepo, fieldReportRepo, entryRepo, txManager, c.notifier, log)
	setStricken := incUsecases.NewSetStrickenUseCase(entryRepo, txManager, c.notifier, log)

	createFieldReport := frUsecases.NewCreateFieldReportUseCase(fieldReportRepo, entryRepo, txManager, c.notifier, log)
	updateFieldReport := frUsecases.NewUpdateFieldReportUseCase(fieldReportRepo, entryRepo, txManager, c.notifier, log)
	getFieldReport := frUsecases.NewGetFieldReportUseCase(fieldReportRepo, log)
	listFieldReports := frUsecases.NewListFieldReportsUseCase(fieldReportRepo, log)
	attachFieldReport := frUsecases.NewAttachFieldReportUseCase(fieldReportRepo, incidentRepo, entryRepo, txManager, c.notifier, log)
	detachFieldReport := frUsecases.NewDetachFieldReportUseCase(fieldReportRepo, incidentRepo, entryRepo, txManager, c.notifier, log)

	createType := typeUsecases.NewCreateIncidentTypeUseCase(typeRepo, log)
	setTypeHidden := typeUsecases.NewSetIncidentTypeHiddenUseCase(typeRepo, log)
	listTypes := typeUsecases.NewListIncidentTypesUseCase(typeRepo, log)

	// Handlers and middleware
	eventHandler := handlers.NewEventHandler(createEvent, listEvents, setAccessEntry, removeAccessEntry, listAccessEntries, log)
	incidentHandler := handlers.NewIncidentHandler(createIncident, updateIncident, getIncident, listIncidents, appendEntry, setStricken, log)
	fieldReportHandler := handlers.NewFieldReportHandler(createFieldReport, updateFieldReport, getFieldReport, listFieldReports, attachFieldReport, detachFieldReport, appendEntry, log)
	typeHandler := handlers.NewIncidentTypeHandler(createType, setTypeHidden, listTypes, log)
	streamHandler := handlers.NewStreamHandler(c.notifier, time.Duration(cfg.Stream.KeepaliveSeconds)*time.Second, log)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, enforcer, log)
	accessMiddleware := middleware.NewAccessMiddleware(eventRepo, evaluator, log)

	routes.SetupEventRoutes(c.engine, &routes.EventRouteConfig{
		EventHandler:        eventHandler,
		IncidentTypeHandler: typeHandler,
		AuthMiddleware:      authMiddleware,
		AccessMiddleware:    accessMiddleware,
	})
	routes.SetupIncidentRoutes(c.engine, &routes.IncidentRouteConfig{
		IncidentHandler:  incidentHandler,
		AuthMiddleware:   authMiddleware,
		AccessMiddleware: accessMiddleware,
	})
	routes.SetupFieldReportRoutes(c.engine, &routes.FieldReportRouteConfig{
		FieldReportHandler: fieldReportHandler,
		AuthMiddleware:     authMiddleware,
		AccessMiddleware:   accessMiddleware,
	})
	routes.SetupStreamRoutes(c.engine, &routes.StreamRouteConfig{
		StreamHandler:    streamHandler,
		AuthMiddleware:   authMiddleware,
		AccessMiddleware: accessMiddleware,
	})

	return c, nil
}

// Engine exposes the underlying gin engine, mainly for tests.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Run starts the HTTP server and blocks until it stops.
func (c *Container) Run() error {
	c.server = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", c.cfg.Server.Host, c.cfg.Server.Port),
		Handler:     c.engine,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the SSE stream endpoint holds its response
		// open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	c.log.Infow("server starting", "address", c.server.Addr, "mode", c.cfg.Server.Mode)
	if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and background components gracefully.
func (c *Container) Shutdown(ctx context.Context) error {
	var firstErr error

	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}

	c.notifier.Close()

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
