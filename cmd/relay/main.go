// The relay service exposes the ADSMedia toolkit over HTTP: transactional
// send operations, the multi-turn compose dialogue, and an inbound webhook
// endpoint that turns automation events into notification emails.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
	"github.com/adsmedia/adsmedia-go/pkg/command"
	"github.com/adsmedia/adsmedia-go/pkg/compose"
	"github.com/adsmedia/adsmedia-go/pkg/config"
	"github.com/adsmedia/adsmedia-go/pkg/httpserver"
	"github.com/adsmedia/adsmedia-go/pkg/logger"
	"github.com/adsmedia/adsmedia-go/pkg/notify"
)

type appConfig struct {
	API     adsmedia.Config
	Compose compose.Config
	Notify  notify.Config
	Server  httpserver.Config
	Log     logger.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log,
		logger.WithService("adsmedia-relay"),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)

	client := adsmedia.MustNew(cfg.API, adsmedia.WithLogger(log))
	engine := compose.MustNew(client, cfg.Compose, compose.WithLogger(log))
	defer engine.Close()

	router := command.NewRouter(client, engine)

	hook, err := notify.NewHandler(client, cfg.Notify, notify.WithLogger(log))
	if err != nil {
		log.Error("webhook handler init failed", slog.Any("error", err))
		os.Exit(1)
	}

	app := newAPI(client, router, hook, log)

	srv := httpserver.New(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), app.routes()); err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
