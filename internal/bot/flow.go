package bot

import (
	"context"
	"math"
	"strconv"
	"strings"

	"paurax-bot/internal/catalog"
	"paurax-bot/internal/models"
	"paurax-bot/internal/vision"

	"github.com/rs/zerolog/log"
)

// input is one message body in its matching forms. Trimmed keeps the user's
// casing for values (locations, amounts); lower is for command matching.
type input struct {
	trimmed string
	lower   string
}

func normalize(body string) input {
	trimmed := strings.TrimSpace(body)
	return input{trimmed: trimmed, lower: strings.ToLower(trimmed)}
}

func (t input) isReset() bool {
	return t.lower == "reset"
}

// Greetings are exact-match on the trimmed body so "hiya" or a sentence
// that happens to contain "hello" does not open the menu.
var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
	"menu":  true,
}

func (t input) isGreeting() bool {
	return greetings[t.lower]
}

// The issues and learn triggers deliberately use substring containment, so
// "show me the issues nearby" works; their menu ordinals match exactly.
func (t input) wantsIssues() bool {
	return strings.Contains(t.lower, "issues") || t.trimmed == "2"
}

func (t input) wantsInstructions() bool {
	return strings.Contains(t.lower, "learn") || t.trimmed == "3"
}

func (t input) wantsReportList() bool {
	return t.lower == "list" || t.lower == "reports"
}

// route handles a sender with no pending step.
func (h *Handler) route(ctx context.Context, msg models.InboundMessage, text input) {
	switch {
	case msg.HasMedia():
		h.handlePhoto(ctx, msg)
	case text.isGreeting():
		h.send(ctx, msg.From, mainMenu)
	case text.wantsReportList():
		h.sendReportList(ctx, msg.From)
	case text.wantsIssues():
		h.Sessions.Put(msg.From, &models.Session{Step: models.StepAwaitingLocationForIssues})
		h.send(ctx, msg.From, areaPrompt)
	case text.wantsInstructions():
		h.send(ctx, msg.From, instructions)
	default:
		h.send(ctx, msg.From, h.Completer.Generate(ctx, msg.Body))
	}
}

// resume advances a pending flow with the sender's answer.
func (h *Handler) resume(ctx context.Context, msg models.InboundMessage, text input, sess *models.Session) {
	switch sess.Step {
	case models.StepAwaitingPinCode:
		h.handlePinCode(ctx, msg, text, sess)
	case models.StepAwaitingLocationForIssues:
		h.handleArea(ctx, msg, text, sess)
	case models.StepAwaitingInvestmentConfirmation:
		h.handleInvestmentSelection(ctx, msg, text, sess)
	case models.StepAwaitingContributionAmount:
		h.handleContribution(ctx, msg, text, sess)
	default:
		h.Sessions.Clear(msg.From)
		h.send(ctx, msg.From, mainMenu)
	}
}

// handlePhoto starts a report: classify the image, then ask where it is.
func (h *Handler) handlePhoto(ctx context.Context, msg models.InboundMessage) {
	result, err := h.Classifier.Analyze(ctx, msg.MediaURL)
	if err != nil {
		log.Error().Err(err).Msg("bot: image classification unavailable")
		result = vision.Result{
			Message:   fallbackAnalysis,
			IssueType: vision.FallbackIssueType,
		}
	}

	h.Sessions.Put(msg.From, &models.Session{
		Step:      models.StepAwaitingPinCode,
		IssueType: result.IssueType,
	})

	h.send(ctx, msg.From, result.Message)
	h.send(ctx, msg.From, pinPrompt)
}

// handlePinCode files the report with the supplied location and closes the
// flow. The confirmation is sent even when the store write fails; the
// failure is only logged.
func (h *Handler) handlePinCode(ctx context.Context, msg models.InboundMessage, text input, sess *models.Session) {
	if text.trimmed == "" {
		h.send(ctx, msg.From, pinPrompt)
		return
	}

	issueType := sess.IssueType
	h.Sessions.Clear(msg.From)

	if _, err := h.Store.AppendIssue(ctx, issueType, text.trimmed, msg.From); err != nil {
		log.Error().Err(err).Str("type", issueType).Msg("bot: failed to persist issue")
	}

	h.send(ctx, msg.From, reportConfirmation(issueType, text.trimmed))
	h.send(ctx, msg.From, resetHint)
}

// handleArea lists the top issues and investable projects near the area.
func (h *Handler) handleArea(ctx context.Context, msg models.InboundMessage, text input, sess *models.Session) {
	area := text.trimmed

	var reported int64
	if n, err := h.Store.CountIssuesByLocation(ctx, area); err != nil {
		log.Error().Err(err).Str("area", area).Msg("bot: failed to count issues")
	} else {
		reported = n
	}

	sess.Step = models.StepAwaitingInvestmentConfirmation
	h.Sessions.Put(msg.From, sess)

	h.send(ctx, msg.From, issueListing(area, reported))
}

// handleInvestmentSelection accepts "invest <N>" for a catalog project.
func (h *Handler) handleInvestmentSelection(ctx context.Context, msg models.InboundMessage, text input, sess *models.Session) {
	project, ok := parseInvestment(text.lower)
	if !ok {
		h.send(ctx, msg.From, invalidSelection)
		return
	}

	sess.Project = project
	sess.Step = models.StepAwaitingContributionAmount
	h.Sessions.Put(msg.From, sess)

	h.send(ctx, msg.From, contributionPrompt(project))
}

// parseInvestment strips the leading command token and parses the trailing
// project number, accepting it only within catalog bounds.
func parseInvestment(lower string) (*catalog.Project, bool) {
	fields := strings.Fields(lower)
	if len(fields) != 2 || fields[0] != "invest" {
		return nil, false
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, false
	}

	project, err := catalog.Get(n)
	if err != nil {
		return nil, false
	}
	return project, true
}

// handleContribution computes the Civic Coin reward and closes the flow.
func (h *Handler) handleContribution(ctx context.Context, msg models.InboundMessage, text input, sess *models.Session) {
	amount, err := strconv.ParseFloat(text.trimmed, 64)
	if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		h.send(ctx, msg.From, invalidAmount)
		return
	}

	project := sess.Project
	coins := project.Reward(amount)
	h.Sessions.Clear(msg.From)

	h.send(ctx, msg.From, paymentMessage(project, text.trimmed, coins))
}

// sendReportList answers the stateless "list" command with recent reports.
func (h *Handler) sendReportList(ctx context.Context, to string) {
	issues, err := h.Store.RecentIssues(ctx, 5)
	if err != nil {
		log.Error().Err(err).Msg("bot: failed to list issues")
		h.send(ctx, to, reportListUnavailable)
		return
	}

	h.send(ctx, to, reportList(issues))
}
