package escalation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	promptx "github.com/tanpawarit/Chative-Order-Assistant/agent/prompt"
)

var _ contractx.Escalator = (*Handler)(nil)

const (
	DefaultCallDelay   = 2 * time.Second
	DefaultHangupDelay = time.Second

	offerPrompt = "Would you like to call for help?  "
)

type Config struct {
	CallDelay   time.Duration
	HangupDelay time.Duration
}

// Handler offers a simulated call to customer support.
type Handler struct {
	prompter contractx.Prompter
	keywords keywordx.Book
	prompts  promptx.PromptSet

	callDelay   time.Duration
	hangupDelay time.Duration

	newTicket func() string
}

func New(prompter contractx.Prompter, keywords keywordx.Book, prompts promptx.PromptSet, cfg Config) (*Handler, error) {
	if prompter == nil {
		return nil, errors.New("prompter is required")
	}
	if err := keywords.Validate(); err != nil {
		return nil, err
	}

	// zero means "use default"; pass a negative value to skip the waits
	callDelay := cfg.CallDelay
	if callDelay == 0 {
		callDelay = DefaultCallDelay
	}
	hangupDelay := cfg.HangupDelay
	if hangupDelay == 0 {
		hangupDelay = DefaultHangupDelay
	}

	return &Handler{
		prompter:    prompter,
		keywords:    keywords,
		prompts:     prompts,
		callDelay:   callDelay,
		hangupDelay: hangupDelay,
		newTicket:   uuid.NewString,
	}, nil
}

// Handle asks whether to call support and plays the call if the user agrees.
// It returns nil unless the user exits or the context ends.
func (h *Handler) Handle(ctx context.Context) error {
	answer, err := h.prompter.Read(ctx, offerPrompt)
	switch {
	case errors.Is(err, contractx.ErrHelpRequested):
		// asking for help at the help prompt is a yes
		answer = h.keywords.Yes[0]
	case err != nil:
		return err
	}

	if !h.keywords.Accepts(answer) {
		log.Debug().Str("component", "escalation").Str("answer", answer).Msg("support call declined")
		return nil
	}
	return h.call(ctx)
}

func (h *Handler) call(ctx context.Context) error {
	ticket := h.newTicket()
	log.Info().Str("component", "escalation").Str("ticket", ticket).Msg("support call started")

	steps := []struct {
		segment string
		wait    time.Duration
	}{
		{segment: promptx.CallDial, wait: h.callDelay},
		{segment: promptx.CallHold, wait: h.callDelay},
		{segment: promptx.CallClose, wait: h.hangupDelay},
	}

	h.prompter.Say("\n\n")
	for _, step := range steps {
		text, err := h.prompts.SupportCall(step.segment, promptx.CallData{Ticket: ticket})
		if err != nil {
			return err
		}
		h.prompter.Say("%s\n", text)
		if err := sleep(ctx, step.wait); err != nil {
			return err
		}
	}
	h.prompter.Say("\n\n")
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
