package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robertmeta/recipe-cli/apitest"
)

func parseSeedUser(s string) (email, password string, err error) {
	email, password, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(email) == "" || password == "" {
		return "", "", fmt.Errorf("invalid --user %q (expected email:password)", s)
	}
	return strings.TrimSpace(email), password, nil
}

func (r *runner) mockServer(c *cli.Context) error {
	fake := apitest.New(apitest.WithLogger(log.Logger.With().Str("component", "mock-server").Logger()))
	for _, u := range c.StringSlice("user") {
		email, password, err := parseSeedUser(u)
		if err != nil {
			return cli.Exit(err.Error(), ExitUsageError)
		}
		id := fake.AddUser(email, password)
		log.Info().Int64("id", id).Str("email", email).Msg("seeded account")
	}

	srv := &http.Server{
		Addr:              c.String("addr"),
		Handler:           fake.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("mock recipe API listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return cli.Exit(fmt.Sprintf("Server failed: %v", err), ExitGeneralError)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return cli.Exit(fmt.Sprintf("Shutdown failed: %v", err), ExitGeneralError)
	}
	log.Info().Msg("mock recipe API stopped")
	return nil
}
