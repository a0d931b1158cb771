package protocal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nativebridge/configs"
	httpAdapter "nativebridge/internal/adapters/input/http"
	"nativebridge/internal/adapters/output/languagetool"
	"nativebridge/internal/adapters/output/memory"
	"nativebridge/internal/adapters/output/postgres"
	"nativebridge/internal/adapters/output/state"
	"nativebridge/internal/adapters/output/supabase"
	"nativebridge/internal/application"
	"nativebridge/internal/ports/output"
	"nativebridge/pkg/database_driver/gorm"

	"github.com/sirupsen/logrus"
)

const defaultStateFile = "./data/push_token.yaml"

// Bridge struct - the wired application services behind the HTTP surface
type Bridge struct {
	Suggestions *application.SuggestionManager
	Push        *application.PushTokenSynchronizer
	Store       httpAdapter.Pinger

	db *gorm.DB
}

// SetupLogging configures logrus from the app section. verbose forces debug
// output regardless of app.debug.
func SetupLogging(app configs.App, verbose bool) {
	logrus.SetLevel(logrus.InfoLevel)
	if app.Debug || verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if app.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// NewSuggestionManager wires the LanguageTool adapter into a session manager
// and opens its session
func NewSuggestionManager(ctx context.Context, cfg configs.SpellCheck) *application.SuggestionManager {
	var service output.SpellCheckerService
	if cfg.BaseURL != "" {
		service = languagetool.NewSpellCheckerAdapter(cfg)
	}

	manager := application.NewSuggestionManager(service, application.SuggestionManagerConfig{
		Locale:     cfg.Locale,
		Timeout:    time.Duration(cfg.TimeoutMs) * time.Millisecond,
		MaxResults: cfg.MaxResults,
		QueueSize:  cfg.QueueSize,
	})
	manager.Initialize(ctx)
	return manager
}

// NewBridge func - builds every service the bridge exposes
func NewBridge(ctx context.Context, cfg *configs.Config) (*Bridge, error) {
	bridge := &Bridge{
		Suggestions: NewSuggestionManager(ctx, cfg.SpellCheck),
	}

	var store output.TokenStore
	switch strings.ToLower(cfg.Push.Store) {
	case "", "none":
		logrus.Info("Push token sync disabled")
		return bridge, nil
	case "rest":
		restStore, err := supabase.NewTokenStoreAdapter(cfg.Push)
		if err != nil {
			bridge.Close()
			return nil, err
		}
		store = restStore
	case "postgres":
		db, err := gorm.ConnectToPostgreSQL(cfg.Postgres)
		if err != nil {
			bridge.Close()
			return nil, err
		}
		bridge.db = db
		repo, err := postgres.NewTokenRepository(db.Postgres)
		if err != nil {
			bridge.Close()
			return nil, err
		}
		store = repo
		bridge.Store = repo
	default:
		bridge.Close()
		return nil, fmt.Errorf("unknown push store %q", cfg.Push.Store)
	}

	stateFile := cfg.Push.StateFile
	if stateFile == "" {
		stateFile = defaultStateFile
	}
	source, err := state.NewTokenFile(stateFile)
	if err != nil {
		bridge.Close()
		return nil, err
	}

	bridge.Push = application.NewPushTokenSynchronizer(source, store, memory.NewMemoryUserStore(cfg.Push.UserID, 0))
	return bridge, nil
}

// Close releases the session, waits for background uploads and closes the database
func (b *Bridge) Close() {
	if err := b.Suggestions.Close(); err != nil {
		logrus.Errorf("Error closing spell checker session: %v", err)
	}
	if b.Push != nil {
		b.Push.Close()
	}
	if b.db != nil {
		gorm.DisconnectPostgres(b.db.Postgres)
	}
}
