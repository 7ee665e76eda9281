package nodes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

const emailFallbackPrompt = "Sorry. I cannot find your order in our system. Would you like to try locating it by email?\n" +
	"(Enter 'yes' or 'no'):  "

// LookupTracking resolves the query as a tracking number. When nothing matches
// the user may fall back to the email lookup or give up with no order.
func LookupTracking(ctx context.Context, in *GraphState, d Deps) (*GraphState, error) {
	if err := checkState(in); err != nil {
		return nil, err
	}

	if o, ok := findByTracking(in.Query, d.Orders); ok {
		d.Prompter.Say("Great news! We found your order!\n")
		d.Prompter.ShowOrders([]*statex.Order{o})
		in.Orders = statex.OrderContext{o}
		in.Route = NodeFinalize
		log.Debug().Str("node", NodeLookupTracking).Int("order_id", o.ID).Msg("order found by tracking number")
		return in, nil
	}

	choice, err := d.Prompter.Read(ctx, emailFallbackPrompt)
	if err != nil {
		return nil, err
	}

	// yes wins when an answer mentions both
	switch {
	case d.Keywords.Accepts(choice):
		in.Route = NodeLookupEmail
	case d.Keywords.Declines(choice):
		in.Orders = nil
		in.Route = NodeFinalize
	default:
		d.Prompter.Say("Unknown selection.\n")
		return nil, fmt.Errorf("%w: unrecognized email fallback answer %q", contractx.ErrHelpRequested, choice)
	}

	log.Debug().Str("node", NodeLookupTracking).Str("route", in.Route).Msg("tracking number not found")
	return in, nil
}

func findByTracking(query string, orders contractx.OrderReader) (*statex.Order, bool) {
	id, err := strconv.Atoi(query)
	if err != nil {
		return nil, false
	}
	return orders.FindByID(id)
}
