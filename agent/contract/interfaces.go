package contract

import (
	"context"

	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

// Prompter is the only way components talk to the user.
type Prompter interface {
	// Read shows prompt and returns the normalized reply, or ErrHelpRequested /
	// ErrExitRequested when the reply is a control keyword.
	Read(ctx context.Context, prompt string) (string, error)
	Say(format string, args ...any)
	ShowOrders(orders []*statex.Order)
	// Farewell prints the closing banner before the session ends.
	Farewell()
}

// Console is the Prompter plus the session-level banners.
type Console interface {
	Prompter
	Greet() error
}

type OrderReader interface {
	FindByID(id int) (*statex.Order, bool)
	FindByEmail(email string) ([]*statex.Order, bool)
}

type OrderCanceller interface {
	Cancel(o *statex.Order) error
}

type Locator interface {
	Locate(ctx context.Context) (statex.OrderContext, error)
}

type Dispatcher interface {
	OfferActions(ctx context.Context, current statex.OrderContext) (statex.OrderContext, error)
}

type Escalator interface {
	Handle(ctx context.Context) error
}
