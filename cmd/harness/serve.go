package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr      string
	serveNoBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog, scenarios and scenario runs over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		c, err := newContainer(ctx, !serveNoBrowser)
		if err != nil {
			return err
		}
		defer c.Close()

		addr := serveAddr
		if addr == "" {
			addr = c.Config.HTTPAddr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           c.HTTPServer().Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			c.Logger.Info("HTTP server listening", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			c.Logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, defaults to HTTP_ADDR")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "serve catalog and scenario listings only")
}
