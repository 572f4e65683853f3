package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/salesloop/pagelens/models"
)

// maxExchanges bounds the per-session history.
const maxExchanges = 10

// Exchange is one user message with the reply it received.
type Exchange struct {
	User string
	Bot  string
}

// Session holds a conversation's history and the page record it is
// grounded on, if any. Record and History are guarded by the store
// mutex; read them through Snapshot, never directly.
type Session struct {
	ID      string
	Record  *models.ContentRecord
	History []Exchange
}

// Snapshot is a point-in-time view of a session, safe to read while
// other requests keep mutating the session through the store.
type Snapshot struct {
	ID      string
	Record  *models.ContentRecord
	History []Exchange
}

// Store keeps conversation sessions in memory. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Session returns the session for id, creating one when id is empty or
// unknown. The returned session's ID is always valid for follow-ups.
func (s *Store) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}
	sess := &Session{ID: uuid.NewString()}
	s.sessions[sess.ID] = sess
	return sess
}

// Lookup returns the session for id without creating one.
func (s *Store) Lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Snapshot copies the session's state under the store mutex.
func (s *Store) Snapshot(sess *Session) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Exchange, len(sess.History))
	copy(history, sess.History)
	return Snapshot{ID: sess.ID, Record: sess.Record, History: history}
}

// Append records one exchange, trimming the history to the most recent
// maxExchanges entries.
func (s *Store) Append(sess *Session, user, bot string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.History = append(sess.History, Exchange{User: user, Bot: bot})
	if len(sess.History) > maxExchanges {
		sess.History = sess.History[len(sess.History)-maxExchanges:]
	}
}

// SetRecord grounds the session on an extracted page record.
func (s *Store) SetRecord(sess *Session, rec *models.ContentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Record = rec
}
