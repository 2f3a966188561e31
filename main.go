// main.go - Entry point for the Bibliotech storefront server

package main // Declares the package name

import ( // Import required packages
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ebook-store/checkout" // Checkout orchestration
	"go-ebook-store/config"   // Project config management
	"go-ebook-store/database" // Database connection, stores and seeding
	"go-ebook-store/events"   // Purchase events over MQTT
	"go-ebook-store/handlers" // HTTP handlers and routes
	"go-ebook-store/logging"  // Structured logging
	"go-ebook-store/mailer"   // eBook e-mail delivery
	"go-ebook-store/session"  // Session stores and cookie codec

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/sync/errgroup" // Server + shutdown watcher
)

func main() { // Main function, program entry point
	// STEP 1: Load configuration and establish connections
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error: ", err)
	}
	logging.Init(os.Stdout, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	slog.Info("starting", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DBURL
	}
	if err := database.Connect(cfg.DBDriver, dsn); err != nil { // Connect to the database
		log.Fatal("DB connection error: ", err)
	}

	// STEP 2: Seed the catalog once, before any request is accepted
	var seeder database.Seeder
	if _, err := seeder.Seed(ctx, database.DB); err != nil {
		log.Fatal("catalog seeding error: ", err)
	}

	// STEP 3: Session storage (Redis when configured, otherwise in-process)
	var sessions session.Store = session.NewMemoryStore(cfg.SessionTTL)
	if cfg.RedisAddr != "" {
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatal("Redis connection error: ", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	}

	// STEP 4: Optional purchase events
	var publisher events.Publisher = events.Nop{}
	if cfg.MQTTBroker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTTopic)
		if err != nil {
			log.Fatal("MQTT connection error: ", err)
		}
		defer mqttPublisher.Close()
		publisher = mqttPublisher
	}

	sender := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPEmail,
		Password: cfg.SMTPPass,
	})
	if !sender.Configured() {
		slog.Warn("SMTP_EMAIL/SMTP_PASS not set; e-mail delivery disabled")
	}

	catalog := database.NewCatalog(database.DB)
	purchases := database.NewPurchases(database.DB)
	app := &handlers.App{
		Catalog:   catalog,
		Accounts:  database.NewAccounts(database.DB),
		Purchases: purchases,
		Checkout: &checkout.Service{
			Catalog:  catalog,
			Recorder: purchases,
			Notifier: sender,
			Events:   publisher,
			EbookDir: cfg.EbookDir,
		},
	}

	// STEP 5: Create router and start the web server
	router := handlers.NewRouter(app, handlers.RouterConfig{
		Sessions:  sessions,
		Codec:     session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
		StaticDir: cfg.StaticDir,
	})
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // checkout may wait on SMTP
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		slog.Error("server error", "err", err)
	}
}
