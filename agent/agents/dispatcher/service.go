package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	menux "github.com/tanpawarit/Chative-Order-Assistant/agent/menu"
	promptx "github.com/tanpawarit/Chative-Order-Assistant/agent/prompt"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

var _ contractx.Dispatcher = (*Dispatcher)(nil)

const (
	DefaultShoppingLink = "amazon.com"
	refundDays          = 5
	separator           = "---------------------------------------------------------------------------\n"
)

type Config struct {
	ShoppingLink string
}

// Dispatcher offers the next-step menu and carries out the chosen action.
type Dispatcher struct {
	prompter contractx.Prompter
	locator  contractx.Locator
	orders   contractx.OrderCanceller
	prompts  promptx.PromptSet

	shoppingLink string
}

func New(
	prompter contractx.Prompter,
	locator contractx.Locator,
	orders contractx.OrderCanceller,
	prompts promptx.PromptSet,
	cfg Config,
) (*Dispatcher, error) {
	if prompter == nil {
		return nil, errors.New("prompter is required")
	}
	if locator == nil {
		return nil, errors.New("locator is required")
	}
	if orders == nil {
		return nil, errors.New("order canceller is required")
	}

	link := strings.TrimSpace(cfg.ShoppingLink)
	if link == "" {
		link = DefaultShoppingLink
	}

	return &Dispatcher{
		prompter:     prompter,
		locator:      locator,
		orders:       orders,
		prompts:      prompts,
		shoppingLink: link,
	}, nil
}

// OfferActions shows the menu for current and returns the new order context.
// Any error leaves the caller's context untouched.
func (d *Dispatcher) OfferActions(ctx context.Context, current statex.OrderContext) (statex.OrderContext, error) {
	d.prompter.Say(separator)

	m := menux.ForContext(!current.Empty())
	answer, err := d.prompter.Read(ctx, m.Prompt())
	if err != nil {
		return nil, err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil {
		d.prompter.Say("I'm sorry. I cannot understand your input. \n")
		return nil, fmt.Errorf("%w: non-numeric menu choice %q", contractx.ErrHelpRequested, answer)
	}

	action, ok := m.Resolve(choice)
	if !ok {
		d.prompter.Say("Sorry, I can only assist you with those %d options :( \n", len(m))
		return nil, fmt.Errorf("%w: menu choice %d out of range", contractx.ErrHelpRequested, choice)
	}

	log.Debug().Str("component", "dispatcher").Str("action", string(action)).Ints("order_ids", current.IDs()).Msg("action selected")

	switch action {
	case contractx.ActionView:
		d.prompter.ShowOrders(current)
		return current, nil
	case contractx.ActionTrack:
		return d.locator.Locate(ctx)
	case contractx.ActionCancel:
		return d.cancel(ctx, current)
	case contractx.ActionEscalate:
		return nil, fmt.Errorf("%w: live agent requested", contractx.ErrHelpRequested)
	case contractx.ActionShop:
		d.prompter.Say("I've sent a link below.  Happy shopping!\nShopping Link:  %s\n", d.shoppingLink)
		d.prompter.Farewell()
		return nil, fmt.Errorf("%w: shopping link sent", contractx.ErrExitRequested)
	}
	return nil, fmt.Errorf("%w: unhandled action %q", contractx.ErrValidation, action)
}

// cancel narrows a multi-order context to the one the user picks, then cancels it.
func (d *Dispatcher) cancel(ctx context.Context, current statex.OrderContext) (statex.OrderContext, error) {
	target := current
	if len(current) > 1 {
		answer, err := d.prompter.Read(ctx, fmt.Sprintf(
			"Which order would you like to cancel? (Enter 1-%d):  ", len(current),
		))
		if err != nil {
			return nil, err
		}
		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(current) {
			d.prompter.Say("Sorry, that is not one of the listed orders. \n")
			return nil, fmt.Errorf("%w: invalid order index %q", contractx.ErrHelpRequested, answer)
		}
		target = statex.OrderContext{current[idx-1]}
	}

	if err := d.cancelOrder(target); err != nil {
		return nil, err
	}
	return nil, nil
}

func (d *Dispatcher) cancelOrder(target statex.OrderContext) error {
	o, ok := target.Single()
	if !ok {
		panic(fmt.Sprintf("cancel needs exactly one order, got %d", len(target)))
	}

	if err := d.orders.Cancel(o); err != nil {
		return fmt.Errorf("cancel order %d: %w", o.ID, err)
	}
	log.Info().Str("component", "dispatcher").Int("order_id", o.ID).Msg("order cancelled")

	receipt, err := d.prompts.CancelReceipt(promptx.ReceiptData{
		ID:          o.ID,
		ProductName: o.ProductName,
		Seller:      o.Seller,
		RefundDays:  refundDays,
	})
	if err != nil {
		return err
	}
	d.prompter.Say("%s\n\n", receipt)
	return nil
}
