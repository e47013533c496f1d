package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vugu/qrouter/spaserve"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		base  string
		index string
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a built app with history mode fallback",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			srv := &http.Server{
				Addr: addr,
				Handler: spaserve.New(os.DirFS(dir), spaserve.Options{
					Base:  base,
					Index: index,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				slog.Info("serving", "dir", dir, "addr", addr, "base", base)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			slog.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8844", "Listen address")
	cmd.Flags().StringVar(&base, "base", "/", "Base path of the app, must match the router's Base")
	cmd.Flags().StringVar(&index, "index", "index.html", "Index page served for deep links")

	return cmd
}
