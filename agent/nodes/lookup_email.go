package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

const (
	emailPrompt      = "What email address did you use to make this order? "
	emailRetryPrompt = "Please enter a valid email address:  "
)

// LookupEmail finds the user's orders by email, narrowing by seller or product
// name when the email owns several.
func LookupEmail(ctx context.Context, in *GraphState, d Deps) (*GraphState, error) {
	if err := checkState(in); err != nil {
		return nil, err
	}

	email, err := readEmail(ctx, d)
	if err != nil {
		return nil, err
	}
	in.Email = email

	orders, known := d.Orders.FindByEmail(email)
	if !known {
		d.Prompter.Say("Hmmm... we can't seem to find this email in our database.\n")
		return nil, fmt.Errorf("%w: %w: unknown email", contractx.ErrHelpRequested, contractx.ErrNotFound)
	}

	switch len(orders) {
	case 0:
		d.Prompter.Say("Hmmm... we can't seem to find any orders under this email address.\n")
		return nil, fmt.Errorf("%w: %w: email has no orders", contractx.ErrHelpRequested, contractx.ErrNotFound)
	case 1:
		d.Prompter.Say("Great! We found your package!\n")
		d.Prompter.ShowOrders(orders)
		in.Orders = statex.OrderContext(orders)
		in.Route = NodeFinalize
		return in, nil
	}

	choice, err := d.Prompter.Read(ctx, fmt.Sprintf(
		"You have %d orders under this email address.  Would you like to search by <seller> or <product name>?  ",
		len(orders),
	))
	if err != nil {
		return nil, err
	}

	primary, ok := chooseAttribute(choice, d)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized search attribute %q", contractx.ErrHelpRequested, choice)
	}

	found, err := Narrow(ctx, d.Prompter, primary, primary.Other(), orders, 0)
	if err != nil {
		return nil, err
	}

	if len(found) == 1 {
		d.Prompter.Say("Great News! We found your package!\n")
	} else {
		d.Prompter.Say("We found %d orders matching your criteria.\n", len(found))
	}
	d.Prompter.ShowOrders(found)

	log.Debug().
		Str("node", NodeLookupEmail).
		Stringer("attribute", primary).
		Int("candidates", len(orders)).
		Int("matches", len(found)).
		Msg("orders narrowed")

	in.Orders = statex.OrderContext(found)
	in.Route = NodeFinalize
	return in, nil
}

// readEmail re-prompts up to the strike limit while the address lacks the
// required domain suffix.
func readEmail(ctx context.Context, d Deps) (string, error) {
	email, err := d.Prompter.Read(ctx, emailPrompt)
	if err != nil {
		return "", err
	}

	for strike := 0; strike < d.Policy.StrikeLimit && !hasDomain(email, d.Policy.EmailDomain); strike++ {
		email, err = d.Prompter.Read(ctx, emailRetryPrompt)
		if err != nil {
			return "", err
		}
	}

	if !hasDomain(email, d.Policy.EmailDomain) {
		d.Prompter.Say("Too many invalid attempts....\n")
		return "", fmt.Errorf("%w: invalid email after %d retries", contractx.ErrHelpRequested, d.Policy.StrikeLimit)
	}
	return email, nil
}

func hasDomain(email, domain string) bool {
	return strings.HasSuffix(email, strings.ToLower(domain))
}

// chooseAttribute maps the user's answer to a search attribute; seller wins
// when both are mentioned.
func chooseAttribute(choice string, d Deps) (statex.Attribute, bool) {
	switch {
	case d.Keywords.MentionsSeller(choice):
		return statex.AttrSeller, true
	case d.Keywords.MentionsProduct(choice):
		return statex.AttrProductName, true
	default:
		return statex.AttrNone, false
	}
}
