package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/docs"
	"taskmanager/internal/adapter/http/handlers"
	appservice "taskmanager/internal/app/service"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		h, err := newHandlers(a)
		if err != nil {
			a.close()
			return err
		}

		router, err := httpadapter.NewRouter(a.logger, httpadapter.RouterOptions{
			TrustedProxies: a.cfg.TrustedProxies,
			AllowedOrigins: a.cfg.CorsAllowedOrigins,
		}, h)
		if err != nil {
			a.close()
			return err
		}

		port := servePort
		if port == "" {
			port = a.cfg.AppPort
		}
		server := &http.Server{Addr: ":" + port, Handler: router}

		go func() {
			a.logger.Info("starting server", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Fatal("could not start server", zap.Error(err))
			}
		}()

		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			a.cfg.ShutdownTimeout,
			map[string]gfshutdown.Operation{
				"http-server": func(ctx context.Context) error {
					a.logger.Info("shutting down server")
					return server.Shutdown(ctx)
				},
			},
		)

		exitCode := <-wait
		a.close()
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port, overrides APP_PORT")
}

func newHandlers(a *app) (httpadapter.Handlers, error) {
	spec, err := docs.OpenAPIJSON()
	if err != nil {
		return httpadapter.Handlers{}, err
	}

	taskRepository := dbadapter.NewTaskRepository(a.store)
	userRepository := dbadapter.NewUserRepository(a.store)

	return httpadapter.Handlers{
		Health: handlers.NewHealthHandler(a.store),
		Tasks: handlers.NewTaskHandler(appservice.NewTaskService(
			taskRepository,
			userRepository,
			appservice.WithStrictConflictCheck(a.cfg.StrictConflictCheck),
		)),
		Users: handlers.NewUserHandler(appservice.NewUserService(userRepository)),
		Docs:  handlers.NewDocsHandler(spec),
	}, nil
}
