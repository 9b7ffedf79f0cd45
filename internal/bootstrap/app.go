package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/jobs"
	"resume-matcher-backend/internal/resumes"
	"resume-matcher-backend/internal/shared/auth"
	"resume-matcher-backend/internal/shared/config"
	"resume-matcher-backend/internal/shared/server"
	"resume-matcher-backend/internal/shared/storage/db"
	"resume-matcher-backend/internal/shared/storage/piidb"
	"resume-matcher-backend/internal/shared/storage/upload"
	"resume-matcher-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	PII    *piidb.DB

	Uploads *upload.Store
	Tokens  *auth.Tokens
	Matcher *jobs.Matcher

	UsersRepo     users.Repo
	ResumesRepo   resumes.Repo
	SensitiveRepo resumes.SensitiveRepo

	UsersService  *users.Service
	ResumeService *resumes.Service

	UsersHandler  *users.Handler
	ResumeHandler *resumes.Handler
	JobsHandler   *jobs.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Uploads: upload.New(cfg.UploadDir),
		Tokens:  auth.NewTokens(cfg.JWTSecret, 24*time.Hour),
		Matcher: jobs.NewMatcher(jobs.DefaultCatalog()),
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Tokens:        app.Tokens,
		UsersHandler:  app.UsersHandler,
		ResumeHandler: app.ResumeHandler,
		JobsHandler:   app.JobsHandler,
	})

	return app, nil
}

// Close releases held database handles.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.PII != nil {
		_ = a.PII.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(ctx context.Context, app *App) error {
	var userRepo users.Repo
	var resumeRepo resumes.Repo
	var sensitiveRepo resumes.SensitiveRepo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}

		// The sensitive store is a separate database engine on purpose:
		// it can never share a transaction with the operational store.
		pii, err := piidb.Open(ctx, app.Config.PIIDatabasePath)
		if err != nil {
			return fmt.Errorf("open pii store: %w", err)
		}
		app.PII = pii
		sensitiveRepo = &resumes.SQLiteSensitiveRepo{DB: pii}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		sensitiveRepo = resumes.NewMemorySensitiveRepo()
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{
		Repo:      resumeRepo,
		Sensitive: sensitiveRepo,
		Uploads:   app.Uploads,
		Matcher:   app.Matcher,
	}

	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.SensitiveRepo = sensitiveRepo
	app.UsersService = userSvc
	app.ResumeService = resumeSvc
	app.UsersHandler = users.NewHandler(userSvc, app.Tokens)
	app.ResumeHandler = resumes.NewHandler(resumeSvc, app.Uploads)
	app.JobsHandler = jobs.NewHandler(app.Matcher)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
