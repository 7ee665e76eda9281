package nodes

import (
	"context"

	"github.com/rs/zerolog/log"
)

const trackingPrompt = "Please enter your tracking number (Type 'no' if you forgot): "

// ReadQuery asks for a tracking number and routes a "no" straight to the email
// lookup.
func ReadQuery(ctx context.Context, in *GraphState, d Deps) (*GraphState, error) {
	if err := checkState(in); err != nil {
		return nil, err
	}

	query, err := d.Prompter.Read(ctx, trackingPrompt)
	if err != nil {
		return nil, err
	}
	in.Query = query

	if d.Keywords.Declines(query) {
		d.Prompter.Say("No problem! Let's try to locate it by email. \n")
		in.Route = NodeLookupEmail
	} else {
		in.Route = NodeLookupTracking
	}

	log.Debug().Str("node", NodeReadQuery).Str("route", in.Route).Msg("tracking query read")
	return in, nil
}
