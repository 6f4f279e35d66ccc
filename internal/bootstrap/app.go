package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/applications"
	"scholarship-intake/internal/notify"
	"scholarship-intake/internal/services/health"
	"scholarship-intake/internal/shared/config"
	"scholarship-intake/internal/shared/server"
	"scholarship-intake/internal/shared/server/middleware"
	"scholarship-intake/internal/shared/storage/db"
	"scholarship-intake/internal/shared/storage/object"
	localstore "scholarship-intake/internal/shared/storage/object/local"
	s3store "scholarship-intake/internal/shared/storage/object/s3"
	"scholarship-intake/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Repo      applications.Repo
	Snapshots object.Store
	Notifier  *notify.Dispatcher
	Service   *applications.Service
	Health    *health.Service
}

// Build validates cfg and wires the record store, notifier, snapshot store
// and router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	telemetry.SetLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{Config: cfg}

	repo, sqlDB, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Repo = repo
	app.DB = sqlDB

	dispatcher, err := buildNotifier(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Notifier = dispatcher

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Snapshots = store

	app.Service = &applications.Service{
		Repo:      app.Repo,
		Notifier:  app.Notifier,
		Snapshots: app.Snapshots,
	}

	checks := map[string]health.Pinger{}
	if p, ok := app.Repo.(applications.Pinger); ok {
		checks["store"] = p
	}
	app.Health = health.NewService(checks)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Applications: applications.NewHandler(app.Service),
		Form:         applications.NewFormHandler(app.Service),
		Health:       app.Health,
		RateLimiter:  middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"record_store": cfg.RecordStore,
		"notifier":     cfg.Notifier,
		"object_store": cfg.ObjectStoreType,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// SQLTarget returns the driver and DSN for a SQL record store.
func SQLTarget(cfg config.Config) (driverName, dsn string, err error) {
	driverName, err = db.DriverFor(cfg.RecordStore)
	if err != nil {
		return "", "", err
	}
	switch driverName {
	case db.DriverSQLite:
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			return "", "", fmt.Errorf("RECORD_STORE=sqlite requires SQLITE_PATH")
		}
		return driverName, "file:" + filepath.ToSlash(path) + "?_pragma=busy_timeout(5000)", nil
	default:
		return driverName, cfg.DatabaseURL, nil
	}
}

func buildRepo(ctx context.Context, cfg config.Config) (applications.Repo, *sql.DB, error) {
	switch cfg.RecordStore {
	case "memory":
		return applications.NewMemoryRepo(), nil, nil
	case "sqlite", "postgres":
		driverName, dsn, err := SQLTarget(cfg)
		if err != nil {
			return nil, nil, err
		}
		var sqlDB *sql.DB
		if db.IsLambdaRuntime() {
			sqlDB, err = db.GetSingleton(ctx, driverName, dsn, db.OptionsFromEnv(db.DefaultLambdaOptions()))
		} else {
			sqlDB, err = db.Connect(ctx, driverName, dsn, db.OptionsFromEnv(db.DefaultServerOptions()))
		}
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB, driverName); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return applications.NewSQLRepo(sqlDB, driverName), sqlDB, nil
	default:
		return applications.NewCSVRepo(cfg.RecordCSVPath), nil, nil
	}
}

func buildNotifier(ctx context.Context, cfg config.Config) (*notify.Dispatcher, error) {
	d := &notify.Dispatcher{From: cfg.Sender(), Timeout: cfg.NotifyTimeout}
	switch cfg.Notifier {
	case "smtp":
		d.Notifier = &notify.SMTPNotifier{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}
	case "ses":
		ses, err := notify.NewSESNotifier(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		d.Notifier = ses
	default:
		d.Notifier = notify.NoopNotifier{}
	}
	return d, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		if strings.TrimSpace(cfg.LocalStoreDir) == "" {
			return nil, nil
		}
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
