package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftviz/craftviz/internal/server"
	"github.com/craftviz/craftviz/pkg/cache"
)

// serveCommand creates the serve command exposing rendered trees over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve <databank>",
		Short: "Serve rendered craft trees over HTTP",
		Long: `Serve loads the databank once, builds the crafting graph, and answers
HTTP requests for object listings and rendered craft trees. Artifacts are
cached in redis when CRAFTVIZ_REDIS (or cache.redis in the config file) is
set, in the file cache otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd, args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, dir, addr string, noCache bool) error {
	ctx := cmd.Context()

	bank, g, err := c.loadGraph(ctx, dir)
	if err != nil {
		return err
	}

	viewOpts, err := c.Config.ViewOptions()
	if err != nil {
		return err
	}

	artifacts := c.newCache(cmd, noCache)
	defer artifacts.Close()

	srv := server.New(server.Config{
		Bank:        bank,
		Graph:       g,
		ViewOptions: viewOpts,
		Scale:       c.Config.Render.Scale,
		Cache:       artifacts,
		Keyer:       cache.NewDefaultKeyer(),
		TTL:         time.Duration(c.Config.Cache.TTLHours) * time.Hour,
		Logger:      c.Logger,
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	c.Logger.Infof("Serving %d objects on %s", len(bank.Objects)-1, addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("Server stopped")
		return nil
	}
}
