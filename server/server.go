// Package server exposes a small HTTP lookup service over the wdq client:
// entity summaries and sitelink listings, for callers that want resolved
// labels without speaking the Wikibase API themselves.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/dinhhuy2010/wdq-go/client"
	"github.com/dinhhuy2010/wdq-go/internal/helpers"
)

type Server struct {
	httpd  *http.Server
	echo   *echo.Echo
	client *client.Client
	logger *slog.Logger
	args   *ServerArgs
}

type ServerArgs struct {
	Logger   *slog.Logger
	HttpAddr string
	// Client is the upstream transport. A default client against the public
	// API is created when nil.
	Client *client.Client
}

func NewServer(args ServerArgs) (*Server, error) {
	if args.Logger == nil {
		args.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if args.Client == nil {
		args.Client = client.NewClient(client.ClientArgs{Logger: args.Logger})
	}

	e := echo.New()
	e.Use(middleware.RemoveTrailingSlash())
	e.Use(slogecho.New(args.Logger))
	e.Use(middleware.Recover())

	httpd := &http.Server{
		Addr:    args.HttpAddr,
		Handler: e,
	}

	return &Server{
		echo:   e,
		httpd:  httpd,
		client: args.Client,
		logger: args.Logger,
		args:   &args,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.addRoutes()

	go func() {
		if err := s.httpd.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("error starting http server", "error", err)
		}
	}()

	<-ctx.Done()

	s.logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer shutdownCancel()

	return s.httpd.Shutdown(shutdownCtx)
}

func (s *Server) addRoutes() {
	s.echo.GET("/v1/items/:id", s.handleItem)
	s.echo.GET("/v1/items/:id/sitelinks", s.handleItemSitelinks)
	s.echo.GET("/v1/properties/:id", s.handleProperty)
}

// respondFetchError maps an upstream fetch failure onto a response: 404 when
// the entity does not exist, 502 for any other transport failure.
func (s *Server) respondFetchError(e echo.Context, err error) error {
	var se *client.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusNotFound {
			return helpers.NotFoundError(e, "EntityNotFound", "")
		}
		s.logger.Error("upstream fetch failed", "status", se.StatusCode, "url", se.URL)
		return helpers.UpstreamError(e, "UpstreamFailure", "")
	}
	s.logger.Error("entity fetch failed", "error", err)
	return helpers.ServerError(e, "InternalError", "")
}
