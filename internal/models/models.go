package models

import (
	"time"

	"paurax-bot/internal/catalog"
)

// Step is the single outstanding question the bot has asked a sender.
// A sender with no session (or StepIdle) is routed through the stateless
// command handlers instead.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingPinCode
	StepAwaitingLocationForIssues
	StepAwaitingInvestmentConfirmation
	StepAwaitingContributionAmount
)

// Session holds the conversation state for one sender. Exactly one pending
// step at a time; no history is retained.
type Session struct {
	Step      Step
	IssueType string           // set when entering StepAwaitingPinCode
	Project   *catalog.Project // set when entering StepAwaitingContributionAmount
}

// Issue is a reported civic issue, append-only.
type Issue struct {
	ID         int64     `bson:"id" json:"id"` // creation time in ms, monotonic enough
	Type       string    `bson:"type" json:"type"`
	Location   string    `bson:"location" json:"location"`
	ReportedBy string    `bson:"reported_by" json:"reported_by"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Contact tracks a WhatsApp number that has messaged the bot. The phone
// number is the unique ID of a PauraX user.
type Contact struct {
	Phone     string    `bson:"_id" json:"phone"`
	FirstSeen time.Time `bson:"first_seen" json:"first_seen"`
	LastSeen  time.Time `bson:"last_seen" json:"last_seen"`
	Messages  int64     `bson:"messages" json:"messages"`
}

// InboundMessage is the validated form of one webhook event. A missing
// Body parses as the empty string, a missing NumMedia as zero.
type InboundMessage struct {
	From     string
	Body     string
	NumMedia int
	MediaURL string
}

// HasMedia reports whether the event carries at least one attachment,
// which signals a photo report.
func (m InboundMessage) HasMedia() bool {
	return m.NumMedia > 0
}
