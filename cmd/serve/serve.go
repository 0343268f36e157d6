package serve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	api "github.com/surimlab/challenge500/internal/api/v2"
	"github.com/surimlab/challenge500/internal/conf"
	"github.com/surimlab/challenge500/internal/datastore"
	"github.com/surimlab/challenge500/internal/oracle"
)

// Command creates the serve command, which runs the HTTP API server.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the challenge API server",
		Long:  "Start the HTTP server exposing the submission, scoring, and card endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the serve command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port for the web server")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

func runServer(settings *conf.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Printf("Error closing datastore: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	var options []api.Option
	if settings.Oracle.Enabled {
		client, err := oracle.NewClient(oracle.Config{
			APIKey:   settings.Oracle.APIKey,
			BaseURL:  settings.Oracle.BaseURL,
			Model:    settings.Oracle.Model,
			Timeout:  settings.Oracle.Timeout,
			CacheTTL: settings.Oracle.CacheTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize oracle client: %w", err)
		}
		defer client.Close()
		options = append(options, api.WithOracle(client))
	}

	controller, err := api.New(e, ds, settings, options...)
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}
	defer controller.Shutdown()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + settings.WebServer.Port
		log.Printf("Starting server on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
