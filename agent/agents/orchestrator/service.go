package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

// Orchestrator drives one console session through the locate, dispatch and
// escalate phases until the user leaves.
type Orchestrator struct {
	console    contractx.Console
	locator    contractx.Locator
	dispatcher contractx.Dispatcher
	escalator  contractx.Escalator

	now          func() time.Time
	newSessionID func() string
}

func New(
	console contractx.Console,
	locator contractx.Locator,
	dispatcher contractx.Dispatcher,
	escalator contractx.Escalator,
) (*Orchestrator, error) {
	if console == nil {
		return nil, errors.New("console is required")
	}
	if locator == nil {
		return nil, errors.New("locator is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if escalator == nil {
		return nil, errors.New("escalator is required")
	}

	return &Orchestrator{
		console:      console,
		locator:      locator,
		dispatcher:   dispatcher,
		escalator:    escalator,
		now:          time.Now,
		newSessionID: uuid.NewString,
	}, nil
}

// Run greets the user and loops until exit, which returns nil. Any other error
// ends the session and is returned.
func (o *Orchestrator) Run(ctx context.Context) error {
	st := statex.NewSessionState(o.newSessionID(), o.now())
	logger := log.With().Str("session_id", st.SessionID).Logger()

	if err := o.console.Greet(); err != nil {
		return fmt.Errorf("greet: %w", err)
	}
	logger.Info().Msg("session started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		next := statex.PhaseDispatching
		err := o.step(ctx, st)
		switch {
		case err == nil:
		case contractx.IsExit(err):
			logger.Info().
				Int("turns", st.Turns).
				Int("escalations", st.Escalations).
				Msg("session ended")
			return nil
		case contractx.NeedsHelp(err):
			logger.Debug().Str("phase", string(st.Phase)).Str("reason", err.Error()).Msg("help requested")
			next = statex.PhaseEscalating
		default:
			logger.Error().Err(err).Str("phase", string(st.Phase)).Msg("session aborted")
			return err
		}

		from := st.Phase
		if err := st.Transition(next, o.now()); err != nil {
			return err
		}
		logger.Debug().
			Str("from", string(from)).
			Str("phase", string(st.Phase)).
			Ints("order_ids", st.Context.IDs()).
			Msg("phase transition")
	}
}

// step runs the component owning the current phase. On error the session
// context is left as it was.
func (o *Orchestrator) step(ctx context.Context, st *statex.SessionState) error {
	switch st.Phase {
	case statex.PhaseLocating:
		found, err := o.locator.Locate(ctx)
		if err != nil {
			return err
		}
		st.SetContext(found, o.now())
		return nil

	case statex.PhaseDispatching:
		next, err := o.dispatcher.OfferActions(ctx, st.Context)
		if err != nil {
			return err
		}
		st.SetContext(next, o.now())
		return nil

	case statex.PhaseEscalating:
		return o.escalator.Handle(ctx)
	}
	return fmt.Errorf("%w: unknown phase %q", contractx.ErrValidation, st.Phase)
}
