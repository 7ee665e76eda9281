package locator

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Order-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

var _ contractx.Locator = (*Locator)(nil)

// Locator runs the tracking-number / email lookup dialogue.
type Locator struct {
	deps   nodex.Deps
	runner compose.Runnable[*nodex.GraphState, statex.OrderContext]
}

func New(deps nodex.Deps) (*Locator, error) {
	deps.Policy = deps.Policy.WithDefaults()
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	l := &Locator{deps: deps}
	runner, err := l.compileLocateGraph(context.Background())
	if err != nil {
		return nil, err
	}
	l.runner = runner
	return l, nil
}

// Locate returns the orders the user identified. An empty context with a nil
// error means the user declined every lookup.
func (l *Locator) Locate(ctx context.Context) (statex.OrderContext, error) {
	out, err := l.runner.Invoke(ctx, &nodex.GraphState{})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("component", "locator").Ints("order_ids", out.IDs()).Msg("locate finished")
	return out, nil
}
