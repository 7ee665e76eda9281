package state

import (
	"errors"
	"fmt"
	"time"
)

// SessionState is the in-memory working state of one conversation.
// - Phase drives the top-level loop: locating -> dispatching <-> escalating
// - Context is the order candidate set the user is acting on
type SessionState struct {
	SessionID string `json:"session_id"`

	Phase   Phase        `json:"phase"`
	Context OrderContext `json:"context,omitempty"`

	Turns       int `json:"turns"`
	Escalations int `json:"escalations"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Phase string

const (
	PhaseLocating    Phase = "locating"
	PhaseDispatching Phase = "dispatching"
	PhaseEscalating  Phase = "escalating"
)

var (
	ErrNilSessionState   = errors.New("session state is nil")
	ErrInvalidSession    = errors.New("session id is empty")
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// allowed phase edges; exit is not a phase, the loop just returns.
var transitions = map[Phase][]Phase{
	PhaseLocating:    {PhaseDispatching, PhaseEscalating},
	PhaseDispatching: {PhaseDispatching, PhaseEscalating},
	PhaseEscalating:  {PhaseDispatching},
}

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Phase:     PhaseLocating,
		StartedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

/* ----------------------------- Phase helpers ----------------------------- */

func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the session to the next phase, counting escalations.
func (s *SessionState) Transition(to Phase, now time.Time) error {
	if s == nil {
		return ErrNilSessionState
	}
	if !CanTransition(s.Phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, to)
	}
	if to == PhaseEscalating {
		s.Escalations++
	}
	s.Phase = to
	s.Touch(now)
	return nil
}

/* ---------------------------- Context helpers ---------------------------- */

// SetContext replaces the order context after a completed turn.
func (s *SessionState) SetContext(c OrderContext, now time.Time) {
	if len(c) == 0 {
		c = nil
	}
	s.Context = c
	s.Turns++
	s.Touch(now)
}

func (s *SessionState) ClearContext(now time.Time) {
	s.Context = nil
	s.Touch(now)
}

func (s *SessionState) Validate() error {
	if s == nil {
		return ErrNilSessionState
	}
	if s.SessionID == "" {
		return ErrInvalidSession
	}
	if _, ok := transitions[s.Phase]; !ok {
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	for i, o := range s.Context {
		if o == nil {
			return fmt.Errorf("%w: context[%d]", ErrNilOrder, i)
		}
	}
	return nil
}
