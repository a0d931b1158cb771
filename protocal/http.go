package protocal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nativebridge/configs"
	httpAdapter "nativebridge/internal/adapters/input/http"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

// NewApp func - registers the bridge calls on a fiber app
func NewApp(bridge *Bridge) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Input adapter (bridge call gateway)
	var hdl *httpAdapter.HTTPHandler
	if bridge.Push != nil {
		hdl = httpAdapter.New(bridge.Suggestions, bridge.Push, bridge.Store)
	} else {
		hdl = httpAdapter.New(bridge.Suggestions, nil, nil)
	}

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	spellChecker := app.Group("/bridge/SpellChecker")
	{
		spellChecker.Post("/getSuggestions", hdl.GetSuggestions)
		spellChecker.Post("/checkAvailability", hdl.CheckAvailability)
		spellChecker.Get("/checkAvailability", hdl.CheckAvailability)
	}

	push := app.Group("/bridge/PushNotifications")
	{
		push.Post("/register", hdl.RegisterToken)
		push.Post("/tokenRefresh", hdl.TokenRefresh)
		push.Post("/user", hdl.SetCurrentUser)
		push.Post("/sync", hdl.SyncToken)
		push.Get("/tokens/:user_id", hdl.ListTokens)
	}

	return app
}

// ServeHTTP func
func ServeHTTP(configDir, env string, verbose bool) error {
	configs.InitViper(configDir, env)
	cfg := configs.GetViper()
	SetupLogging(cfg.App, verbose)
	logrus.Info(cfg.App.Env)

	ctx := context.Background()
	bridge, err := NewBridge(ctx, cfg)
	if err != nil {
		return err
	}
	defer bridge.Close()

	if bridge.Push != nil {
		go func() {
			if _, err := bridge.Push.SyncToken(ctx); err != nil {
				logrus.Warnf("Initial token sync skipped: %v", err)
			}
		}()
	}

	app := NewApp(bridge)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			logrus.Println("Gracefull shut down ...")
			err := app.Shutdown()
			if err != nil {
				logrus.Println("Error when shutdown server: ", err)
			}
		}
	}()

	logrus.Println("Listerning on port: ", cfg.App.Port)
	return app.Listen(":" + cfg.App.Port)
}
