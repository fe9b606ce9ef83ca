package main

import (
	"net/http"
	"os"
	"time"

	"paurax-bot/internal/bot"
	"paurax-bot/internal/config"
	"paurax-bot/internal/db"
	"paurax-bot/internal/session"
	"paurax-bot/internal/twilio"
	"paurax-bot/internal/vision"
	"paurax-bot/internal/watsonx"
	"paurax-bot/internal/webhook"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}

	sessions := session.New(cfg.SessionTTL)
	completer := watsonx.New(cfg.WatsonxAPIKey, cfg.WatsonxProjectID)
	sender := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	classifier := vision.NewMock()

	handler := bot.NewHandler(sessions, database, completer, sender, classifier)
	server := webhook.NewServer(handler)

	go func() {
		for range time.Tick(cfg.SessionTTL) {
			sessions.Cleanup()
		}
	}()

	r := chi.NewRouter()
	r.Get("/", server.Home)
	r.Post("/webhook", server.Handler)

	log.Info().Str("port", cfg.Port).Msg("PauraX server is running")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
