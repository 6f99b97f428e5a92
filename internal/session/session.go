// Package session keeps per-visitor state: one shortening form and one
// recent list for every browser session. Sessions live in memory only and
// are dropped once idle for longer than the configured TTL.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/internal/service"
)

const idLength = 21

// Session is the state owned by a single visitor.
type Session struct {
	ID     string
	Form   *service.Form
	Recent *service.RecentList

	mu       sync.Mutex
	lastSeen time.Time
}

// Shorten submits input through the session's form and, on success,
// prepends the created record to the session's recent list.
func (s *Session) Shorten(ctx context.Context, input string) (*models.DisplayRecord, error) {
	rec, err := s.Form.Submit(ctx, input)
	if err != nil {
		return nil, err
	}

	s.Recent.Push(*rec)

	return rec, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}

// Options configures a Store.
type Options struct {
	// TTL is how long an untouched session is kept.
	TTL time.Duration
	// SweepInterval is how often Run looks for expired sessions.
	SweepInterval time.Duration
	// RecentLimit caps every session's recent list.
	RecentLimit int
	// ShortURLBase is the origin short codes are resolved against.
	ShortURLBase string
	// MaxSessions caps the number of live sessions. When full, Add evicts
	// the session idle the longest. Zero means no cap.
	MaxSessions int
}

// Store holds the live sessions.
type Store struct {
	creator service.URLCreator
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a Store whose forms submit through creator.
func NewStore(creator service.URLCreator, logger *slog.Logger, opts Options) *Store {
	return &Store{
		creator:  creator,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open creates a fresh session without registering it. The caller
// registers it with Add once it holds something worth keeping.
func (st *Store) Open() (*Session, error) {
	const op = "session.Store.Open"

	id, err := gonanoid.New(idLength)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate session id: %w", op, err)
	}

	return &Session{
		ID:       id,
		Form:     service.NewForm(st.creator, st.opts.ShortURLBase),
		Recent:   service.NewRecentList(st.opts.RecentLimit),
		lastSeen: st.now(),
	}, nil
}

// Add registers s, evicting the longest idle session first when the store
// is full.
func (st *Store) Add(s *Session) {
	now := st.now()
	s.touch(now)

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[s.ID]; !ok && st.opts.MaxSessions > 0 && len(st.sessions) >= st.opts.MaxSessions {
		st.evictOldest(now)
	}

	st.sessions[s.ID] = s
}

// evictOldest must be called with st.mu held.
func (st *Store) evictOldest(now time.Time) {
	oldestID, oldest := "", time.Duration(-1)

	for id, s := range st.sessions {
		if idle := s.idleSince(now); idle > oldest {
			oldestID, oldest = id, idle
		}
	}

	if oldestID != "" {
		delete(st.sessions, oldestID)
		st.logger.Debug("session store full, evicted idle session", slog.Duration("idle", oldest))
	}
}

// New creates and registers a fresh session.
func (st *Store) New() (*Session, error) {
	s, err := st.Open()
	if err != nil {
		return nil, err
	}

	st.Add(s)

	return s, nil
}

// Get returns the live session with the given id and marks it as seen.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, false
	}

	s.touch(st.now())

	return s, true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}

// Prune drops sessions idle for longer than the TTL and returns how many
// were dropped.
func (st *Store) Prune() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	var n int
	for id, s := range st.sessions {
		if s.idleSince(now) > st.opts.TTL {
			delete(st.sessions, id)
			n++
		}
	}

	return n
}

// Run prunes expired sessions every sweep interval until ctx is done.
func (st *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(st.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Prune(); n > 0 {
				st.logger.Debug("expired sessions pruned", slog.Int("count", n), slog.Int("live", st.Len()))
			}
		}
	}
}
