package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// Session holds one user's transient state: the current transcript and the
// report derived from it. Nothing survives process shutdown. Writes follow
// a single-writer, read-after-write handoff: the transcription step writes
// the transcript, the summarization step reads it.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.RWMutex
	transcript string
	summary    string
	meta       transcript.MeetingInfo
}

// SetTranscript replaces the session transcript wholesale, dropping any
// summary derived from the previous one.
func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
	s.summary = ""
}

// Transcript returns the current transcript ("" when none yet).
func (s *Session) Transcript() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript
}

// SetSummary stores the generated report and the metadata it was built with.
func (s *Session) SetSummary(text string, meta transcript.MeetingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = text
	s.meta = meta
}

// Summary returns the current report and its metadata.
func (s *Session) Summary() (string, transcript.MeetingInfo) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary, s.meta
}

// Store is the in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session under a fresh id.
func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}
