// internal/cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/shopbot/internal/bot"
	"github.com/javajoker/shopbot/internal/config"
	"github.com/javajoker/shopbot/internal/database"
	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/router"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/session"
	"github.com/javajoker/shopbot/internal/utils"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the HTTP API",
	Long: `Connect to Telegram and handle updates until interrupted. Updates are
read by long polling (BOT_MODE=polling) or received on the HTTP webhook
endpoint (BOT_MODE=webhook). The catalog is seeded on first start.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := messages.Initialize(); err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		return err
	}
	if _, err := seedCatalog(ctx, db, cfg.Catalog.SeedPath); err != nil {
		return err
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	api.Debug = cfg.Bot.Debug
	logrus.WithField("bot", api.Self.UserName).Info("Authorized on Telegram")

	notifier := services.NewNotificationService(bot.NewTelegramMessenger(api), cfg.Bot.AdminID, services.NotificationOptions{
		Timeout:        time.Duration(cfg.Bot.NotifyTimeout) * time.Second,
		BreakerTimeout: time.Duration(cfg.Bot.BreakerTimeout) * time.Second,
	})
	reviews := services.NewReviewService(db)
	catalog := services.NewCatalogService(db, reviews)
	orders := services.NewOrderService(db)

	conversation := bot.New(bot.Deps{
		Catalog:  catalog,
		Carts:    services.NewCartService(db),
		Orders:   orders,
		Reviews:  reviews,
		Notifier: notifier,
		Sessions: sessions,
	})

	dispatcher := bot.NewDispatcher(conversation, bot.DispatcherOptions{
		Workers:       cfg.Bot.Workers,
		RatePerSecond: cfg.Bot.RatePerSecond,
		Burst:         cfg.Bot.RateBurst,
		OnDrop:        conversation.Throttled,
	})
	dispatcher.Start(ctx)

	routerDeps := router.Deps{
		Catalog:   catalog,
		Orders:    orders,
		Reviews:   reviews,
		Deliverer: conversation,
	}
	if cfg.Bot.Mode == config.BotModeWebhook {
		secret, err := registerWebhook(api, cfg.Bot)
		if err != nil {
			dispatcher.Stop()
			return err
		}
		routerDeps.Submitter = dispatcher
		routerDeps.WebhookSecret = secret
	}

	errCh := make(chan error, 2)

	var srv *http.Server
	if cfg.Server.Enabled {
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		srv = &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router.Initialize(ctx, cfg, routerDeps),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		}

		go func() {
			logrus.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server failed: %w", err)
			}
		}()
	}

	if cfg.Bot.Mode == config.BotModePolling {
		go func() {
			errCh <- bot.RunPolling(ctx, api, cfg.Bot.PollTimeout, dispatcher)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logrus.Info("Shutting down...")
	case runErr = <-errCh:
		if runErr != nil {
			logrus.WithError(runErr).Error("Stopping after failure")
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("HTTP server forced to shutdown")
		}
	}

	// in-flight events finish before pending pushes are awaited
	dispatcher.Stop()
	notifier.Wait()

	logrus.Info("Shutdown complete")
	return runErr
}

// newSessionStore selects the conversation state backend. Memory sessions
// do not survive a restart.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		logrus.Warn("Using in-memory sessions, conversations in progress are lost on restart")
		return session.NewMemoryStore(cfg.Session.TTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logrus.WithField("addr", cfg.Redis.Addr()).Info("Using redis sessions")
	closeFn := func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing redis client")
		}
	}
	return session.NewRedisStore(client, cfg.Session.TTL), closeFn, nil
}

// registerWebhook points Telegram at this server and returns the path
// secret. A random secret is generated when WEBHOOK_SECRET is unset.
func registerWebhook(api *tgbotapi.BotAPI, cfg config.BotConfig) (string, error) {
	secret := cfg.WebhookSecret
	if secret == "" {
		generated, err := utils.GenerateWebhookSecret()
		if err != nil {
			return "", fmt.Errorf("failed to generate webhook secret: %w", err)
		}
		secret = generated
	}

	url := strings.TrimRight(cfg.WebhookURL, "/") + "/telegram/webhook/" + secret
	if err := bot.SetWebhook(api, url); err != nil {
		return "", err
	}
	return secret, nil
}
