// Package conversation holds the client-side state machine for a single chat
// view: selecting a character, loading (or synthesizing) its history, and
// exchanging turns with the backend through the client's background executor.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	client "github.com/chatterbox-ai/chatterbox-client/client"
)

// State of the conversation view.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateActive
	// StateNoCharacter is terminal: the view schedules a redirect home.
	StateNoCharacter
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateNoCharacter:
		return "no-character"
	default:
		return "unknown"
	}
}

// Chatter is the slice of the SDK client the manager depends on.
type Chatter interface {
	FetchConversation(ctx context.Context, characterID string) ([]client.HistoryMessage, error)
	EnqueueChatTurn(ctx context.Context, characterID, message string, onDone func(reply string, err error)) error
}

const defaultRedirectDelay = 2 * time.Second

// Option configures a Manager.
type Option func(*Manager)

// WithRedirectDelay overrides how long the NoCharacter state lingers before
// the redirect callback fires.
func WithRedirectDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.redirectDelay = d
		}
	}
}

// WithRedirectHome installs the callback invoked after the NoCharacter delay.
func WithRedirectHome(fn func()) Option {
	return func(m *Manager) { m.redirectHome = fn }
}

// Manager drives one conversation. All exported methods are safe for
// concurrent use; chat completions arrive from executor goroutines.
type Manager struct {
	chatter  Chatter
	username string

	redirectDelay time.Duration
	redirectHome  func()

	mu            sync.Mutex
	state         State
	characterID   string
	characterName string
	characterImg  string
	messages      []Message
	notice        string
	lastErr       error
	busy          bool
	epoch         uint64
	lastID        int64
	redirectTimer *time.Timer
}

// NewManager builds a manager in the Uninitialized state. The username feeds
// the synthesized greeting and may be empty for an anonymous session.
func NewManager(chatter Chatter, username string, opts ...Option) *Manager {
	if chatter == nil {
		panic("conversation.NewManager: chatter must not be nil")
	}
	m := &Manager{
		chatter:       chatter,
		username:      username,
		redirectDelay: defaultRedirectDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SelectCharacter loads the character's history and activates the
// conversation in a single transition: the branch between "show history" and
// "synthesize greeting" is decided only after the fetch settles, so the two
// can never race. A fetch failure is non-fatal; the conversation starts fresh
// with a greeting and HistoryNotice recorded.
func (m *Manager) SelectCharacter(ctx context.Context, id, name, imageRef string) error {
	if strings.TrimSpace(id) == "" {
		m.EnterWithoutCharacter()
		return nil
	}

	m.mu.Lock()
	m.epoch++
	myEpoch := m.epoch
	m.state = StateLoading
	m.characterID = id
	m.characterName = name
	m.characterImg = imageRef
	m.messages = nil
	m.notice = ""
	m.lastErr = nil
	m.busy = false
	m.stopRedirectLocked()
	m.mu.Unlock()

	history, err := m.chatter.FetchConversation(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != myEpoch {
		// A newer selection superseded this one while the fetch was in
		// flight; its result must not leak into the new conversation.
		log.Debug().Str("characterId", id).Msg("discarding stale history result")
		return nil
	}

	switch {
	case err != nil:
		log.Warn().Err(err).Str("characterId", id).Msg("history fetch failed")
		m.notice = HistoryNotice
		m.appendLocked(SenderBot, Greeting(m.username, name))
	case len(history) == 0:
		m.appendLocked(SenderBot, Greeting(m.username, name))
	default:
		for _, h := range history {
			m.messages = append(m.messages, Message{
				ID:        m.nextIDLocked(),
				Text:      h.Text,
				Sender:    h.Sender,
				Timestamp: h.Timestamp,
			})
		}
	}
	m.state = StateActive
	return nil
}

// SendMessage submits one user turn. It reports false without any side
// effects when the text is whitespace-only, a turn is already in flight, or
// the conversation is not active. Otherwise the user message is appended
// immediately and the backend turn runs in the background; its outcome lands
// as either the bot reply or the fixed apology.
func (m *Manager) SendMessage(ctx context.Context, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	m.mu.Lock()
	if m.state != StateActive || m.busy {
		m.mu.Unlock()
		return false
	}
	m.appendLocked(SenderUser, trimmed)
	m.busy = true
	m.lastErr = nil
	myEpoch := m.epoch
	characterID := m.characterID
	m.mu.Unlock()

	err := m.chatter.EnqueueChatTurn(ctx, characterID, trimmed, func(reply string, err error) {
		m.completeTurn(myEpoch, reply, err)
	})
	if err != nil {
		// The turn never made it onto the queue; settle it here.
		m.completeTurn(myEpoch, "", err)
	}
	return true
}

func (m *Manager) completeTurn(epoch uint64, reply string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return
	}
	m.busy = false
	if err != nil {
		log.Warn().Err(err).Str("characterId", m.characterID).Msg("chat turn failed")
		m.lastErr = err
		m.appendLocked(SenderBot, Apology)
		return
	}
	m.appendLocked(SenderBot, reply)
}

// EnterWithoutCharacter puts the manager in the terminal NoCharacter state
// and schedules the redirect callback after the configured delay.
func (m *Manager) EnterWithoutCharacter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state = StateNoCharacter
	m.notice = NoCharacterNotice
	m.messages = nil
	m.busy = false
	m.stopRedirectLocked()
	if m.redirectHome != nil {
		m.redirectTimer = time.AfterFunc(m.redirectDelay, m.redirectHome)
	}
}

// Reset returns the manager to Uninitialized, cancelling any pending redirect
// and invalidating in-flight results.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state = StateUninitialized
	m.characterID = ""
	m.characterName = ""
	m.characterImg = ""
	m.messages = nil
	m.notice = ""
	m.lastErr = nil
	m.busy = false
	m.stopRedirectLocked()
}

// State reports the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Messages returns a copy of the visible transcript in order.
func (m *Manager) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Notice returns the current non-fatal notice, if any.
func (m *Manager) Notice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice
}

// LastError returns the most recent turn failure for transient display. It is
// cleared by the next successful SendMessage.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Busy reports whether a chat turn is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// CharacterName returns the active character's display name.
func (m *Manager) CharacterName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.characterName
}

// CharacterImage returns the active character's avatar reference, as passed
// to SelectCharacter. Resolve it with the client's CharacterImageURL.
func (m *Manager) CharacterImage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.characterImg
}

func (m *Manager) appendLocked(sender, text string) {
	m.messages = append(m.messages, Message{
		ID:        m.nextIDLocked(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	})
}

// nextIDLocked derives a monotonic id from wall-clock milliseconds; two
// appends within the same millisecond still get distinct, ordered ids.
func (m *Manager) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

func (m *Manager) stopRedirectLocked() {
	if m.redirectTimer != nil {
		m.redirectTimer.Stop()
		m.redirectTimer = nil
	}
}
