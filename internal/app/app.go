package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mauriciosoaresd/todo-study-spring/internal/config"
	"github.com/mauriciosoaresd/todo-study-spring/internal/repo"
	"github.com/mauriciosoaresd/todo-study-spring/migrations"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	cfg    config.Config
	log    *log.Logger
	db     *pgxpool.Pool
	todos  repo.TodoRepo
	router *gin.Engine
}

// New connects the configured store, runs migrations when enabled and builds the router.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		a.todos = repo.NewMemTodoRepo()
	default:
		if cfg.Store.AutoMigrate {
			if err := RunMigrations(cfg.PG.DSN, logger); err != nil {
				return nil, err
			}
		}
		db, err := newPostgres(cfg.PG)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.todos = repo.NewPGTodoRepo(db)
	}

	a.router = newRouter(cfg, logger, a.todos)
	return a, nil
}

// NewWithRepo builds an App around an existing store. Used by tests.
func NewWithRepo(cfg config.Config, logger *log.Logger, todos repo.TodoRepo) *App {
	return &App{cfg: cfg, log: logger, todos: todos, router: newRouter(cfg, logger, todos)}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.db != nil {
		a.db.Close()
	}
	return nil
}

func newPostgres(pg config.PGConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = pg.MaxConns
	cfg.MinConns = pg.MinConns
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(dsn string, logger *log.Logger) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logger})
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger adapts log.Logger to goose.Logger.
type gooseLogger struct{ l *log.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.l.Infof(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.l.Fatalf(format, v...) }

func newRouter(cfg config.Config, logger *log.Logger, todos repo.TodoRepo) *gin.Engine {
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", headerRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Location", headerRequestID},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, logger, todos)
	return r
}
