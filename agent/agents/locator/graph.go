package locator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Order-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

func (l *Locator) compileLocateGraph(
	ctx context.Context,
) (compose.Runnable[*nodex.GraphState, statex.OrderContext], error) {
	graph := compose.NewGraph[*nodex.GraphState, statex.OrderContext]()

	if err := graph.AddLambdaNode(nodex.NodeReadQuery,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ReadQuery(ctx, in, l.deps)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeReadQuery, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeLookupTracking,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LookupTracking(ctx, in, l.deps)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeLookupTracking, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeLookupEmail,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LookupEmail(ctx, in, l.deps)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeLookupEmail, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFinalize,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (statex.OrderContext, error) {
			return nodex.Finalize(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeFinalize, err)
	}

	if err := graph.AddEdge(compose.START, nodex.NodeReadQuery); err != nil {
		return nil, fmt.Errorf("add edge start->%s: %w", nodex.NodeReadQuery, err)
	}

	branches := []struct {
		from string
		to   []string
	}{
		{from: nodex.NodeReadQuery, to: []string{nodex.NodeLookupTracking, nodex.NodeLookupEmail}},
		{from: nodex.NodeLookupTracking, to: []string{nodex.NodeLookupEmail, nodex.NodeFinalize}},
	}
	for _, b := range branches {
		if err := graph.AddBranch(b.from, routeBranch(b.to...)); err != nil {
			return nil, fmt.Errorf("add branch from %s: %w", b.from, err)
		}
	}

	edges := [][2]string{
		{nodex.NodeLookupEmail, nodex.NodeFinalize},
		{nodex.NodeFinalize, compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("locator.locate"))
	if err != nil {
		return nil, fmt.Errorf("compile locator graph: %w", err)
	}
	return runner, nil
}

// routeBranch follows GraphState.Route, restricted to the given targets.
func routeBranch(targets ...string) *compose.GraphBranch {
	ends := make(map[string]bool, len(targets))
	for _, t := range targets {
		ends[t] = true
	}
	return compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: locator graph state is nil", contractx.ErrValidation)
			}
			if !ends[in.Route] {
				return "", fmt.Errorf("%w: unexpected route %q", contractx.ErrValidation, in.Route)
			}
			return in.Route, nil
		},
		ends,
	)
}
