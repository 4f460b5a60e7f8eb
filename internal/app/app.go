package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khrees2412/takecare-ats/internal/config"
	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/invite"
	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/khrees2412/takecare-ats/internal/visibility"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// App is the dependency container for the CLI application
type App struct {
	DB          *sql.DB
	Store       *database.Store
	Config      *config.Config
	Tracker     *tracker.Service
	SessionFile string
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dir, err := config.Dir()
	if err != nil {
		db.Close()
		return nil, err
	}

	return New(db, cfg, filepath.Join(dir, "session")), nil
}

// New wires an App around an open database
func New(db *sql.DB, cfg *config.Config, sessionFile string) *App {
	store := database.NewStore(db)
	svc := tracker.NewService(store, tracker.Options{
		Policy: visibility.Policy{
			ShortlistDays: cfg.ShortlistWindowDays,
			ExitDays:      cfg.ExitWindowDays,
			PipelineDays:  cfg.PipelineWindowDays,
		},
		Invite: invite.Options{
			AgencyName:    cfg.AgencyName,
			InterviewTime: cfg.InterviewTime,
			CountryCode:   cfg.CountryCode,
		},
		SessionTTL: time.Duration(cfg.SessionHours) * time.Hour,
	})

	return &App{
		DB:          db,
		Store:       store,
		Config:      cfg,
		Tracker:     svc,
		SessionFile: sessionFile,
	}
}

// Close closes all resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// SaveSession remembers the login token for later commands
func (a *App) SaveSession(token string) error {
	return os.WriteFile(a.SessionFile, []byte(token+"\n"), 0600)
}

// ClearSession forgets the stored token and returns it
func (a *App) ClearSession() (string, error) {
	data, err := os.ReadFile(a.SessionFile)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := os.Remove(a.SessionFile); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// CurrentUser resolves the stored session to its user
func (a *App) CurrentUser(ctx context.Context) (*models.User, error) {
	data, err := os.ReadFile(a.SessionFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("not logged in, run 'takecare login': %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	user, err := a.Tracker.CurrentUser(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("%w, run 'takecare login'", err)
	}
	return user, nil
}
