package nodes

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

// Narrow asks for a value of primary and keeps the matching candidates. When
// several remain on the first round and a secondary attribute is given, it asks
// once more by secondary. It never runs more than two rounds and may return
// several orders.
func Narrow(
	ctx context.Context,
	p contractx.Prompter,
	primary statex.Attribute,
	secondary statex.Attribute,
	candidates []*statex.Order,
	depth int,
) ([]*statex.Order, error) {
	value, err := p.Read(ctx, fmt.Sprintf("What's the %s? ", primary))
	if err != nil {
		return nil, err
	}

	matched := primary.Filter(candidates, value)
	switch len(matched) {
	case 0:
		p.Say("Hmmm... we can't seem to find any orders under this %s.\n", primary)
		return nil, fmt.Errorf("%w: %w: %s=%q", contractx.ErrHelpRequested, contractx.ErrNotFound, primary, value)
	case 1:
		return matched, nil
	}

	p.Say("We found %d products under this %s\n", len(matched), primary)
	if depth == 0 && secondary != statex.AttrNone {
		return Narrow(ctx, p, secondary, statex.AttrNone, matched, depth+1)
	}
	return matched, nil
}
