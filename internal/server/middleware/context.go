package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/graphlens/lens/internal/storage"
	"github.com/graphlens/lens/pkg/remote"
	"github.com/graphlens/lens/pkg/session"
)

// App bundles the shared application state handlers need: the session
// store with the current snapshot, the optional remote query client, the
// optional S3 artifact fetcher and the optional refresh queue channel.
type App struct {
	Session *session.Store
	Remote  *remote.Client
	Fetcher *storage.ArtifactFetcher
	Queue   *amqp091.Channel
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
