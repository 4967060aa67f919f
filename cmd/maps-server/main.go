package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"maps-assistant-backend/internal/config"
	"maps-assistant-backend/internal/server"
	"maps-assistant-backend/internal/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "maps-server",
		Short:        "Chat assistant that answers with maps",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newAskCmd())
	return root
}

func setup() (config.Config, zerolog.Logger, error) {
	cfg := config.Load()
	log := config.NewLogger(cfg, os.Stderr)
	if err := cfg.Validate(); err != nil {
		return cfg, log, err
	}
	return cfg, log, nil
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			deps, err := server.Wire(cfg, log)
			if err != nil {
				return err
			}
			s := server.NewServer(cfg, log, deps)
			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           s.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("maps assistant listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Run a single chat turn and print the response as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			deps, err := server.Wire(cfg, log)
			if err != nil {
				return err
			}
			resp := deps.Chat.HandleTurn(cmd.Context(), types.ChatRequest{Message: strings.Join(args, " ")})
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			return nil
		},
	}
}
