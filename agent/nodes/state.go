package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

// Graph node names. Route holds the name of the node to run next.
const (
	NodeReadQuery      = "read_query"
	NodeLookupTracking = "lookup_tracking"
	NodeLookupEmail    = "lookup_email"
	NodeFinalize       = "finalize"
)

// GraphState flows through every node of the locate graph.
type GraphState struct {
	Query  string
	Route  string
	Email  string
	Orders statex.OrderContext
}

// Deps are the collaborators shared by the locate nodes.
type Deps struct {
	Prompter contractx.Prompter
	Orders   contractx.OrderReader
	Keywords keywordx.Book
	Policy   contractx.LookupPolicy
}

func (d Deps) Validate() error {
	if d.Prompter == nil {
		return fmt.Errorf("%w: prompter is required", contractx.ErrValidation)
	}
	if d.Orders == nil {
		return fmt.Errorf("%w: order reader is required", contractx.ErrValidation)
	}
	if err := d.Keywords.Validate(); err != nil {
		return fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	if strings.TrimSpace(d.Policy.EmailDomain) == "" {
		return fmt.Errorf("%w: email domain is required", contractx.ErrValidation)
	}
	return nil
}

func checkState(in *GraphState) error {
	if in == nil {
		return fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	return nil
}
