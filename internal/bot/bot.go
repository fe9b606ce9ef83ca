package bot

import (
	"context"

	"paurax-bot/internal/models"
	"paurax-bot/internal/vision"

	"github.com/rs/zerolog/log"
)

// Sessions is the conversation-state store, keyed by sender phone number.
type Sessions interface {
	Get(sender string) (*models.Session, bool)
	Put(sender string, sess *models.Session)
	Clear(sender string)
}

// IssueStore persists reported issues and tracks known contacts.
type IssueStore interface {
	AppendIssue(ctx context.Context, issueType, location, reportedBy string) (*models.Issue, error)
	RecentIssues(ctx context.Context, limit int64) ([]models.Issue, error)
	CountIssuesByLocation(ctx context.Context, location string) (int64, error)
	TouchContact(ctx context.Context, phone string) error
}

// Completer answers free-form questions. It never fails; upstream errors
// come back as a fixed apology string.
type Completer interface {
	Generate(ctx context.Context, userMessage string) string
}

// Sender delivers one outbound message to a recipient.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Handler routes each inbound message through the per-sender conversation
// state machine, falling back to the stateless command set when the sender
// has nothing pending.
type Handler struct {
	Sessions   Sessions
	Store      IssueStore
	Completer  Completer
	Sender     Sender
	Classifier vision.Classifier
}

func NewHandler(sessions Sessions, store IssueStore, completer Completer, sender Sender, classifier vision.Classifier) *Handler {
	return &Handler{
		Sessions:   sessions,
		Store:      store,
		Completer:  completer,
		Sender:     sender,
		Classifier: classifier,
	}
}

// Dispatch processes one inbound message to completion. Replies are sent in
// order; a failed send never blocks the state transition, which has already
// happened by the time the send is attempted.
func (h *Handler) Dispatch(ctx context.Context, msg models.InboundMessage) {
	h.trackContact(msg.From)

	text := normalize(msg.Body)

	// Reset wins over everything, pending step or not.
	if text.isReset() {
		h.Sessions.Clear(msg.From)
		h.send(ctx, msg.From, mainMenu)
		return
	}

	if sess, ok := h.Sessions.Get(msg.From); ok && sess.Step != models.StepIdle {
		h.resume(ctx, msg, text, sess)
		return
	}

	h.route(ctx, msg, text)
}

// send delivers one message and swallows delivery failures.
func (h *Handler) send(ctx context.Context, to, body string) {
	if err := h.Sender.Send(ctx, to, body); err != nil {
		log.Error().Err(err).Str("to", to).Msg("bot: failed to send message")
	}
}

func (h *Handler) trackContact(phone string) {
	go func() {
		if err := h.Store.TouchContact(context.Background(), phone); err != nil {
			log.Error().Err(err).Str("phone", phone).Msg("bot: failed to track contact")
		}
	}()
}
