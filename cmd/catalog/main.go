package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/pkg/config"
	"github.com/goliatone/go-catalog/pkg/di"
	"github.com/goliatone/go-catalog/pkg/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "catalog",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(cfg, log)
	case "token":
		err = token(cfg, args)
	default:
		err = fmt.Errorf("unknown command %q (want serve or token)", cmd)
	}

	if err != nil {
		log.Error("catalog exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func serve(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := di.NewContainer(ctx, cfg, di.WithLogger(log))
	if err != nil {
		return err
	}
	defer container.Close()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}

// token prints a signed bearer token, for local use.
func token(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("sub", "local-admin", "token subject")
	username := fs.String("user", "admin", "username claim")
	role := fs.String("role", auth.RoleAdmin, "role claim (admin, editor, viewer)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokens, err := auth.NewJWTService(auth.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		return err
	}

	signed, claims, err := tokens.Issue(*subject, *username, *role)
	if err != nil {
		return err
	}

	fmt.Println(signed)
	fmt.Fprintf(os.Stderr, "expires at %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	return nil
}
