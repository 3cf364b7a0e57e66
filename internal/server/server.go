package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/graphlens/lens/internal/queue"
	mid "github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/internal/storage"
	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/remote"
	"github.com/graphlens/lens/pkg/session"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore()
	fetcher := storage.NewArtifactFetcher(storage.NewS3Client(ctx))

	var remoteClient *remote.Client
	if queryURL := util.GetEnv("QUERY_SERVER_URL"); queryURL != "" {
		remoteClient = remote.New(remote.Params{
			BaseURL:    queryURL,
			Timeout:    time.Duration(util.GetEnvNumeric("QUERY_TIMEOUT_SECONDS", 120)) * time.Second,
			MaxRetries: int(util.GetEnvNumeric("QUERY_MAX_RETRIES", 2)),
		})
	}

	app := &mid.App{
		Session: store,
		Remote:  remoteClient,
		Fetcher: fetcher,
	}

	if queue.Configured() {
		conn, err := queue.Init()
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", "err", err)
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch); err != nil {
			logger.Fatal("Failed to declare queues", "err", err)
		}
		app.Queue = ch
		go queue.RunRefreshConsumer(ctx, ch, store, fetcher)
	}

	// Preload a pipeline output so the graph is browsable right after
	// startup, matching how the indexing pipeline lays out its results.
	if dir := util.GetEnv("ARTIFACT_DIR"); dir != "" {
		if _, err := store.LoadDir(ctx, dir); err != nil {
			logger.Error("Failed to preload artifacts", "dir", dir, "err", err)
		}
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1G"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
