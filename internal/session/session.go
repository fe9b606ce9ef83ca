package session

import (
	"sync"
	"time"

	"paurax-bot/internal/models"
)

type entry struct {
	session    *models.Session
	expiration time.Time
}

// Store keeps the pending conversation step for each sender, expiring
// entries that have not been written for the configured TTL so abandoned
// flows do not stay resident forever.
type Store struct {
	ttl     time.Duration
	entries sync.Map
}

// New creates a Store whose entries live for ttl after their last Put.
func New(ttl time.Duration) *Store {
	return &Store{ttl: ttl}
}

// Get retrieves the session for a sender. Returns false if the sender has
// no pending step or the session has expired.
func (s *Store) Get(sender string) (*models.Session, bool) {
	val, ok := s.entries.Load(sender)
	if !ok {
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiration) {
		s.entries.Delete(sender)
		return nil, false
	}

	return e.session, true
}

// Put stores the session for a sender, resetting its TTL.
func (s *Store) Put(sender string, sess *models.Session) {
	s.entries.Store(sender, entry{
		session:    sess,
		expiration: time.Now().Add(s.ttl),
	})
}

// Clear removes a sender's session. Used when a flow completes or the
// sender resets.
func (s *Store) Clear(sender string) {
	s.entries.Delete(sender)
}

// Cleanup removes expired sessions.
func (s *Store) Cleanup() {
	s.entries.Range(func(key, value any) bool {
		e := value.(entry)
		if time.Now().After(e.expiration) {
			s.entries.Delete(key)
		}
		return true
	})
}
