package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"paurax-bot/internal/bot"
	"paurax-bot/internal/models"

	"github.com/rs/zerolog/log"
)

// twimlAck is the empty acknowledgment Twilio expects. Returning it with a
// 200 on every path keeps the transport from retrying.
const twimlAck = `<Response></Response>`

// Server binds the dispatcher to the messaging transport's webhook.
type Server struct {
	Bot *bot.Handler
}

func NewServer(handler *bot.Handler) *Server {
	return &Server{Bot: handler}
}

// Handler accepts one inbound message event. The event is processed to
// completion before the acknowledgment is written; internal failures are
// logged and still acknowledged.
func (s *Server) Handler(w http.ResponseWriter, r *http.Request) {
	msg, err := parseInbound(r)
	if err != nil {
		log.Error().Err(err).Msg("webhook: failed to parse inbound event")
		ack(w)
		return
	}

	if msg.From == "" {
		log.Warn().Msg("webhook: inbound event without sender, ignoring")
		ack(w)
		return
	}

	log.Info().Str("from", msg.From).Int("media", msg.NumMedia).Msg("webhook: received message")
	s.Bot.Dispatch(r.Context(), msg)
	ack(w)
}

// Home is a plain status page for smoke-testing in a browser.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, "Hello World! Your PauraX server is running.")
}

func ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(twimlAck))
}

type inboundPayload struct {
	From      string `json:"From"`
	Body      string `json:"Body"`
	NumMedia  any    `json:"NumMedia"`
	MediaURL0 string `json:"MediaUrl0"`
}

// parseInbound reads the event from a form- or JSON-encoded POST. Missing
// Body is the empty string and missing NumMedia is zero.
func parseInbound(r *http.Request) (models.InboundMessage, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var p inboundPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return models.InboundMessage{}, fmt.Errorf("decode json body: %w", err)
		}
		return models.InboundMessage{
			From:     p.From,
			Body:     p.Body,
			NumMedia: coerceCount(p.NumMedia),
			MediaURL: p.MediaURL0,
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.InboundMessage{}, fmt.Errorf("parse form: %w", err)
	}
	return models.InboundMessage{
		From:     r.FormValue("From"),
		Body:     r.FormValue("Body"),
		NumMedia: coerceCount(r.FormValue("NumMedia")),
		MediaURL: r.FormValue("MediaUrl0"),
	}, nil
}

// coerceCount turns NumMedia into an int whether it arrived as a form
// string, a JSON string, or a JSON number. Anything unparsable is zero.
func coerceCount(v any) int {
	switch n := v.(type) {
	case string:
		count, err := strconv.Atoi(n)
		if err != nil || count < 0 {
			return 0
		}
		return count
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}
