package chat

import (
	"sync"
	"time"

	"shophub/internal/models"
	"shophub/internal/util"

	"github.com/google/uuid"
)

// Session is one chat widget conversation: an append-only transcript seeded
// with the assistant greeting. The bot reply to a posted message is appended
// after a fixed delay to mimic a live agent; a scheduled reply always lands,
// even if the caller has moved on.
type Session struct {
	ID string

	mu       sync.Mutex
	messages []models.ChatMessage
}

func newSession() *Session {
	return &Session{
		ID: uuid.New().String(),
		messages: []models.ChatMessage{
			{Text: Greeting, FromBot: true, SentAt: time.Now()},
		},
	}
}

// Post appends the user's message, schedules the bot reply after delay, and
// returns the reply text immediately so callers need not poll.
func (s *Session) Post(text string, m *Matcher, delay time.Duration) string {
	reply, topic := m.Match(text)
	util.ChatRepliesTotal.WithLabelValues(topic).Inc()

	s.append(models.ChatMessage{Text: text, SentAt: time.Now()})
	time.AfterFunc(delay, func() {
		s.append(models.ChatMessage{Text: reply, FromBot: true, SentAt: time.Now()})
	})

	return reply
}

// Messages returns a snapshot copy of the transcript.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) append(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Registry holds the live chat sessions keyed by id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Open creates and registers a new session.
func (r *Registry) Open() *Session {
	s := newSession()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get returns the session by id, or nil if unknown.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Close forgets the session. Replies already scheduled still append to the
// transcript; the session object simply becomes unreachable.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
