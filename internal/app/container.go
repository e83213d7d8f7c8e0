// Package app wires configuration, storage, events, and handlers together.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	identityApp "github.com/voxplan/voxplan/internal/identity/application"
	identityPersistence "github.com/voxplan/voxplan/internal/identity/infrastructure/persistence"
	"github.com/voxplan/voxplan/internal/planner/application/commands"
	"github.com/voxplan/voxplan/internal/planner/application/queries"
	"github.com/voxplan/voxplan/internal/planner/domain"
	plannerPersistence "github.com/voxplan/voxplan/internal/planner/infrastructure/persistence"
	"github.com/voxplan/voxplan/internal/planner/services"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/database"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/migrations"
	"github.com/voxplan/voxplan/pkg/config"
	"github.com/voxplan/voxplan/pkg/observability"
)

// ErrServerNeedsPostgres is returned when the HTTP API is requested without a
// PostgreSQL backend. Accounts and the sync endpoints live in Postgres only.
var ErrServerNeedsPostgres = errors.New("the API server requires the postgres storage driver")

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage backends. Exactly one of DB, SQLiteDB, RedisClient is set,
	// chosen by config.Driver().
	DB          *pgxpool.Pool
	SQLiteDB    *sql.DB
	RedisClient *redis.Client

	// Store is the snapshot persistence contract every handler runs against.
	// Remote backends are wrapped in a circuit breaker.
	Store domain.Store

	// RowStore is the per-item surface for the REST adapter. Postgres only.
	RowStore *plannerPersistence.PostgresStore

	// Events
	Bus       *eventbus.InProcessBus
	RabbitMQ  *eventbus.RabbitMQPublisher
	Health    *observability.HealthRegistry
	Identity  *identityApp.Service
	Purger    *services.PurgeWorker
	Engine    *services.ScoreEngine

	// Task command handlers
	CreateTask         *commands.CreateTaskHandler
	CreateTaskFromNote *commands.CreateTaskFromNoteHandler
	ArchiveTask        *commands.ArchiveTaskHandler
	DeleteTask         *commands.DeleteTaskHandler
	RestoreTask        *commands.RestoreTaskHandler

	// Note command handlers
	CaptureNote *commands.CaptureNoteHandler
	ArchiveNote *commands.ArchiveNoteHandler
	DeleteNote  *commands.DeleteNoteHandler
	RestoreNote *commands.RestoreNoteHandler

	// Query handlers
	ListTasks *queries.ListTasksHandler
	ListNotes *queries.ListNotesHandler
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormat(cfg.LogFormat),
		ServiceName: "voxplan",
	})

	c := &Container{
		Config: cfg,
		Logger: logger,
		Health: observability.NewHealthRegistry(),
		Bus:    eventbus.NewInProcessBus(logger),
		Engine: services.NewScoreEngine(services.DefaultScoreConfig()),
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	if err := c.initEvents(); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	logger.Info("container initialized", "driver", cfg.Driver())
	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch driver := c.Config.Driver(); driver {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, c.Config.DatabaseURL, c.Config.DBMaxConns)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := migrations.ApplyPostgres(ctx, pool); err != nil {
			pool.Close()
			return err
		}
		c.DB = pool
		c.RowStore = plannerPersistence.NewPostgresStore(pool)
		c.Store = plannerPersistence.NewBreakerStore(c.RowStore, c.Logger)
		c.Health.Register("postgres", observability.DatabaseHealthChecker(pool.Ping))

		c.Identity = identityApp.NewService(
			identityPersistence.NewPostgresUserRepository(pool),
			[]byte(c.Config.JWTSecret),
			c.Config.TokenTTL,
		)
		c.Purger = services.NewPurgeWorker(c.RowStore, c.Bus, c.Config.PurgeInterval, c.Logger)

	case "redis":
		client, err := database.NewRedisClient(ctx, c.Config.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = client
		c.Store = plannerPersistence.NewBreakerStore(plannerPersistence.NewRedisStore(client), c.Logger)
		c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))

	case "sqlite":
		path := c.Config.SQLitePath
		if path == "" {
			path = database.DefaultSQLitePath()
		}
		db, err := database.OpenSQLite(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to open sqlite at %s: %w", path, err)
		}
		store, err := plannerPersistence.NewSQLiteStore(ctx, db)
		if err != nil {
			db.Close()
			return err
		}
		c.SQLiteDB = db
		c.Store = store
		c.Health.Register("sqlite", observability.DatabaseHealthChecker(db.PingContext))

	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}
	return nil
}

func (c *Container) initEvents() error {
	if c.Config.RabbitMQURL == "" {
		return nil
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	c.RabbitMQ = publisher
	c.Bus.AttachPublisher(publisher)
	return nil
}

func (c *Container) initHandlers() {
	c.CreateTask = commands.NewCreateTaskHandler(c.Store, c.Engine, c.Bus)
	c.CreateTaskFromNote = commands.NewCreateTaskFromNoteHandler(c.Store, c.Engine, c.Bus)
	c.ArchiveTask = commands.NewArchiveTaskHandler(c.Store, c.Engine, c.Bus)
	c.DeleteTask = commands.NewDeleteTaskHandler(c.Store, c.Engine, c.Bus)
	c.RestoreTask = commands.NewRestoreTaskHandler(c.Store, c.Engine, c.Bus)

	c.CaptureNote = commands.NewCaptureNoteHandler(c.Store, c.Bus)
	c.ArchiveNote = commands.NewArchiveNoteHandler(c.Store, c.Bus)
	c.DeleteNote = commands.NewDeleteNoteHandler(c.Store, c.Bus)
	c.RestoreNote = commands.NewRestoreNoteHandler(c.Store, c.Bus)

	c.ListTasks = queries.NewListTasksHandler(c.Store, c.Engine)
	c.ListNotes = queries.NewListNotesHandler(c.Store)
}

// RequireServer validates that the container can back the HTTP API.
func (c *Container) RequireServer() error {
	if c.DB == nil {
		return ErrServerNeedsPostgres
	}
	if c.Config.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set to run the API server")
	}
	return nil
}

// Close releases all container resources.
func (c *Container) Close() {
	if c.RabbitMQ != nil {
		if err := c.RabbitMQ.Close(); err != nil {
			c.Logger.Warn("failed to close rabbitmq publisher", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
}
